package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const defaultMaxDocumentBytes = 104857600 // 100MB

type Config struct {
	// Document
	PDFPath              string
	PDFFallbackPdftotext bool
	MaxDocumentBytes     int64

	// Logging
	LogLevel  string
	LogFormat string

	// Tool responses
	NoticeMode string

	// Server identity
	ServerName    string
	ServerVersion string
}

func Load() Config {
	cfg := Config{
		PDFPath:              envOr("PDF_PATH", "./pdf/document.pdf"),
		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
		MaxDocumentBytes:     envInt64("MAX_DOCUMENT_BYTES", defaultMaxDocumentBytes),

		LogLevel:  envOr("LOG_LEVEL", "info"),
		LogFormat: envOr("LOG_FORMAT", "json"),

		NoticeMode: envOr("NOTICE_MODE", "text"),

		ServerName:    envOr("SERVER_NAME", "pdf-reader-server"),
		ServerVersion: envOr("SERVER_VERSION", "1.0.0"),
	}

	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = defaultMaxDocumentBytes
	}

	return cfg
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.PDFPath) == "" {
		return fmt.Errorf("PDF_PATH must not be empty")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	switch c.NoticeMode {
	case "text", "error":
	default:
		return fmt.Errorf("NOTICE_MODE must be text or error, got %q", c.NoticeMode)
	}
	return nil
}

// Logger builds the process logger writing to w. Callers pass stderr since
// stdout carries protocol traffic.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", s)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
