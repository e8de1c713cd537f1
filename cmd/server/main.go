package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dgallion1/pdfreader/internal/config"
	"github.com/dgallion1/pdfreader/internal/dispatch"
	"github.com/dgallion1/pdfreader/internal/document"
	"github.com/dgallion1/pdfreader/internal/loader"
	"github.com/dgallion1/pdfreader/internal/mcpserver"
	"github.com/dgallion1/pdfreader/internal/parser"
	"github.com/dgallion1/pdfreader/internal/stats"
	"github.com/joho/godotenv"
)

// statsWindow bounds the call latencies reported at shutdown.
const statsWindow = 24 * time.Hour

func main() {
	// A missing .env is normal; real environment variables still apply.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line flags. Flags left empty fall back to the
// environment.
type CLI struct {
	PDFPath    string `name:"pdf-path" help:"Document to serve (PDF; .txt, .md, .csv, .html and .docx also accepted)"`
	LogLevel   string `name:"log-level" help:"Log level: debug, info, warn or error"`
	LogFormat  string `name:"log-format" help:"Log format: json or text"`
	NoticeMode string `name:"notice-mode" help:"How not-loaded and out-of-range notices are returned: text or error"`
}

func (c *CLI) apply(cfg *config.Config) {
	if c.PDFPath != "" {
		cfg.PDFPath = c.PDFPath
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.LogFormat != "" {
		cfg.LogFormat = c.LogFormat
	}
	if c.NoticeMode != "" {
		cfg.NoticeMode = c.NoticeMode
	}
}

// Run parses flags, loads the document once and serves MCP on stdin/stdout
// until the input ends or ctx is cancelled. Logs go to stderr.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	p, err := kong.New(cli,
		kong.Name("pdf-reader-server"),
		kong.Description("Serve the text of a single PDF document over MCP on stdio"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	for _, a := range args {
		if a == "--help" || a == "-h" {
			_, _ = p.Parse([]string{"--help"})
			return nil
		}
	}
	if _, err := p.Parse(args); err != nil {
		return err
	}

	cfg := config.Load()
	cli.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := cfg.Logger(stderr)

	ld := &loader.Loader{
		ParserOptions: parser.Options{FallbackPdftotext: cfg.PDFFallbackPdftotext},
		MaxBytes:      cfg.MaxDocumentBytes,
		Logger:        log,
	}
	doc, err := ld.Load(cfg.PDFPath)
	if err != nil {
		log.Warn("document not loaded, serving without it",
			"path", cfg.PDFPath,
			"code", document.ErrorCode(err),
			"error", err,
		)
		doc = nil
	}

	d := dispatch.New(doc, dispatch.Options{
		NoticeMode: dispatch.NoticeMode(cfg.NoticeMode),
		Logger:     log,
	})
	calls := stats.NewCalls(statsWindow)

	srv, err := mcpserver.NewServer(d, calls, log, cfg.ServerName, cfg.ServerVersion)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	log.Info("starting pdf-reader-server",
		"name", cfg.ServerName,
		"version", cfg.ServerVersion,
		"loaded", doc != nil,
		"notice_mode", cfg.NoticeMode,
	)
	err = srv.Serve(ctx, stdin, stdout)
	logStats(log, calls.Snapshot())

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serve: %w", err)
	}
	log.Info("shutting down")
	return nil
}

func logStats(log *slog.Logger, s stats.Snapshot) {
	log.Info("tool call stats",
		"count", s.Count,
		"errors", s.Errors,
		"min_ms", s.MinMs,
		"max_ms", s.MaxMs,
		"avg_ms", s.AvgMs,
		"p50_ms", s.P50Ms,
		"p95_ms", s.P95Ms,
		"p99_ms", s.P99Ms,
	)
}
