package query

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatSearch renders search results as the markdown payload returned to
// clients.
func FormatSearch(q string, matches []Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Search Results for \"%s\"\n\nFound %d matches:\n\n", q, len(matches))
	for i, m := range matches {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "**Match %d** (position %d):\n...%s...\n", i+1, m.Position, m.Preview)
	}
	return b.String()
}

// FormatInfo renders a document summary. Metadata is emitted as indented
// JSON with sorted keys.
func FormatInfo(s Summary) (string, error) {
	meta, err := json.MarshalIndent(s.Info, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}
	return fmt.Sprintf("# PDF Information\n\n**Filename:** %s\n**Pages:** %d\n**Characters:** %d\n**Words:** %d\n\n**PDF Metadata:**\n%s",
		s.Filename, s.Pages, s.Characters, s.Words, meta), nil
}

// FormatExcerpt renders an excerpt under a header with its offsets.
func FormatExcerpt(e Excerpt) string {
	return fmt.Sprintf("# PDF Excerpt (%d-%d)\n\n%s", e.Start, e.End, e.Text)
}
