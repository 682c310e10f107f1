package models

import (
	"testing"
	"time"
)

func TestBookmarkEntry(t *testing.T) {
	yes, no := true, false

	tc := []struct {
		name  string
		entry BookmarkEntry
		want  bool
	}{
		{"absent flag counts as summarized", BookmarkEntry{URL: "https://a"}, true},
		{"true", BookmarkEntry{URL: "https://a", HasSummary: &yes}, true},
		{"false", BookmarkEntry{URL: "https://a", HasSummary: &no}, false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Summarized(); got != tt.want {
				t.Errorf("Summarized() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("DisplayTitle", func(t *testing.T) {
		if got := (BookmarkEntry{Title: "  ", URL: "https://a"}).DisplayTitle(); got != "https://a" {
			t.Errorf("expected URL fallback, got %q", got)
		}
	})
}

func TestDecodeSummaryResult(t *testing.T) {
	t.Run("valid recipe", func(t *testing.T) {
		body := `{"title":"Pancakes","ingredients":["flour","milk","egg"],"method":["mix","fry"]}`
		res := DecodeSummaryResult([]byte(body))
		if res.Summary == nil || res.Summary.Title != "Pancakes" {
			t.Fatalf("expected Pancakes summary, got %+v", res.Summary)
		}
		if len(res.Summary.Ingredients) != 3 || len(res.Summary.Method) != 2 {
			t.Errorf("unexpected sequence lengths %+v", res.Summary)
		}
		if string(res.Raw) != body {
			t.Errorf("raw body not preserved: %s", res.Raw)
		}
	})

	tc := []struct {
		name string
		body string
	}{
		{"empty string", `""`},
		{"null", `null`},
		{"missing method", `{"title":"x","ingredients":["a"]}`},
		{"ingredients not a list", `{"title":"x","ingredients":"a","method":["b"]}`},
	}

	for _, tt := range tc {
		t.Run(tt.name+" has no summary", func(t *testing.T) {
			res := DecodeSummaryResult([]byte(tt.body))
			if res.Summary != nil {
				t.Errorf("expected no summary, got %+v", res.Summary)
			}
			if string(res.Raw) != tt.body {
				t.Errorf("raw body not preserved: %s", res.Raw)
			}
		})
	}

	t.Run("empty body", func(t *testing.T) {
		res := DecodeSummaryResult(nil)
		if res.Summary != nil || res.Raw != nil {
			t.Errorf("expected empty result, got %+v", res)
		}
	})

	t.Run("non JSON body is kept as a string", func(t *testing.T) {
		res := DecodeSummaryResult([]byte("<html>"))
		if res.Summary != nil {
			t.Error("expected no summary")
		}
		if string(res.Raw) != `"\u003chtml\u003e"` {
			t.Errorf("unexpected raw %s", res.Raw)
		}
	})
}

func TestCredential(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	if (Credential{Token: "t"}).Expired(now) {
		t.Error("credential without expiry should not expire")
	}
	if !(Credential{Token: "t", ExpiresAt: now}).Expired(now) {
		t.Error("credential expiring now should be expired")
	}
	if (Credential{Token: "t", ExpiresAt: now.Add(time.Minute)}).Expired(now) {
		t.Error("future expiry should not be expired")
	}
	if err := (Credential{}).Validate(); err == nil {
		t.Error("empty token should not validate")
	}
}
