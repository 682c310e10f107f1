package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/recipes/internal/models"
)

var pancakes = &models.Summary{
	Title:       "Pancakes",
	Ingredients: []string{"flour", "milk", "egg"},
	Method:      []string{"mix", "fry"},
}

func TestSummaryFormats(t *testing.T) {
	t.Run("SummaryToText", func(t *testing.T) {
		out := string(SummaryToText("https://www.example.com/recipe", pancakes))

		for _, want := range []string{"Pancakes\nwww.example.com\n", "  • flour\n", "  • egg\n", "  1. mix\n", "  2. fry\n"} {
			if !strings.Contains(out, want) {
				t.Errorf("text output missing %q:\n%s", want, out)
			}
		}
		if strings.Index(out, "flour") > strings.Index(out, "milk") {
			t.Error("ingredients out of order")
		}
	})

	t.Run("SummaryToMarkdown", func(t *testing.T) {
		out := string(SummaryToMarkdown("https://example.com/recipe", pancakes))

		for _, want := range []string{"# Pancakes\n", "[example.com](https://example.com/recipe)", "## Ingredients\n\n- flour\n- milk\n- egg\n", "## Method\n\n1. mix\n2. fry\n"} {
			if !strings.Contains(out, want) {
				t.Errorf("markdown output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("IngredientsToText", func(t *testing.T) {
		if got := IngredientsToText(pancakes); got != "flour\nmilk\negg" {
			t.Errorf("unexpected ingredients %q", got)
		}
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		path, err := WriteMarkdownExport("https://example.com/recipe", pancakes, dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if filepath.Base(path) != "pancakes.md" {
			t.Errorf("unexpected file name %s", path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read export: %v", err)
		}
		if !strings.HasPrefix(string(data), "# Pancakes") {
			t.Errorf("unexpected contents %s", data)
		}
	})
}

func TestEntryFormats(t *testing.T) {
	no := false
	entries := []models.BookmarkEntry{
		{Title: "Pie, Apple", URL: "https://a.com/pie"},
		{Title: "", URL: "https://v.com/watch", HasSummary: &no},
	}

	t.Run("EntriesToText", func(t *testing.T) {
		out := string(EntriesToText(entries))
		if !strings.Contains(out, " 1. Pie, Apple\n    https://a.com/pie\n") {
			t.Errorf("unexpected first entry:\n%s", out)
		}
		if !strings.Contains(out, " 2. https://v.com/watch ↗\n") {
			t.Errorf("untitled external entry should fall back to URL:\n%s", out)
		}
	})

	t.Run("EntriesToCSV", func(t *testing.T) {
		data, err := EntriesToCSV(entries)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := string(data)
		if !strings.HasPrefix(out, "Title,URL,Summarized\n") {
			t.Errorf("CSV missing headers: %s", out)
		}
		if !strings.Contains(out, `"Pie, Apple",https://a.com/pie,true`) {
			t.Errorf("CSV should quote commas: %s", out)
		}
		if !strings.Contains(out, ",https://v.com/watch,false") {
			t.Errorf("CSV missing external entry: %s", out)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tc := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", Text, false},
		{"TEXT", Text, false},
		{"markdown", Markdown, false},
		{"csv", CSV, false},
		{"json", JSON, false},
		{"yaml", "", true},
	}

	for _, tt := range tc {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	t.Run("Slug", func(t *testing.T) {
		if got := Slug("Mom's Best Pancakes!"); got != "mom-s-best-pancakes" {
			t.Errorf("unexpected slug %q", got)
		}
		if got := Slug("!!!"); got != "recipe" {
			t.Errorf("expected fallback slug, got %q", got)
		}
	})
}
