// package formatter renders summaries and bookmark listings as plain text, Markdown and CSV
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/desertthunder/recipes/internal/models"
	"github.com/desertthunder/recipes/internal/nav"
)

// Format names an output format accepted by the CLI.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	CSV      Format = "csv"
	JSON     Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case Text, Markdown, CSV, JSON:
		return f, nil
	case "":
		return Text, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, markdown, csv or json)", s)
	}
}

// SummaryToText renders s as plain text under a heading naming the source.
func SummaryToText(url string, s *models.Summary) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n%s\n", s.Title, nav.Hostname(url))

	buf.WriteString("\nIngredients\n")
	for _, ing := range s.Ingredients {
		fmt.Fprintf(&buf, "  • %s\n", ing)
	}

	buf.WriteString("\nMethod\n")
	for i, step := range s.Method {
		fmt.Fprintf(&buf, "  %d. %s\n", i+1, step)
	}
	return buf.Bytes()
}

// SummaryToMarkdown renders s as a Markdown document linking back to url.
func SummaryToMarkdown(url string, s *models.Summary) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", s.Title)
	fmt.Fprintf(&buf, "[%s](%s)\n\n", nav.Hostname(url), url)

	buf.WriteString("## Ingredients\n\n")
	for _, ing := range s.Ingredients {
		fmt.Fprintf(&buf, "- %s\n", ing)
	}

	buf.WriteString("\n## Method\n\n")
	for i, step := range s.Method {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, step)
	}
	return buf.Bytes()
}

// IngredientsToText joins the ingredients one per line, as copied to the clipboard.
func IngredientsToText(s *models.Summary) string {
	return strings.Join(s.Ingredients, "\n")
}

// EntriesToText renders a numbered listing with each entry's host.
func EntriesToText(entries []models.BookmarkEntry) []byte {
	var buf bytes.Buffer
	for i, e := range entries {
		marker := ""
		if !e.Summarized() {
			marker = " ↗"
		}
		fmt.Fprintf(&buf, "%2d. %s%s\n    %s\n", i+1, e.DisplayTitle(), marker, e.URL)
	}
	return buf.Bytes()
}

// EntriesToCSV converts a listing to CSV with columns: Title, URL, Summarized
func EntriesToCSV(entries []models.BookmarkEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Title", "URL", "Summarized"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range entries {
		record := []string{e.Title, e.URL, fmt.Sprintf("%t", e.Summarized())}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

var unsafeName = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a title into a file name stem.
func Slug(title string) string {
	slug := strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		return "recipe"
	}
	return slug
}

// WriteMarkdownExport writes s to dir/<slug>.md and returns the path.
//
// An existing file is overwritten.
func WriteMarkdownExport(url string, s *models.Summary, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, Slug(s.Title)+".md")
	if err := os.WriteFile(path, SummaryToMarkdown(url, s), 0o644); err != nil {
		return "", fmt.Errorf("failed to write markdown file: %w", err)
	}
	return path, nil
}
