package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// BookmarkEntry is a previously summarized or visited URL as returned by the
// list endpoints. Entries are displayed in the order the server returns them.
type BookmarkEntry struct {
	Title string `json:"title"`
	URL   string `json:"url"`

	// HasSummary is absent on some endpoints; absence means the entry is
	// treated as summarized.
	HasSummary *bool `json:"hasSummary,omitempty"`
}

// Summarized reports whether selecting the entry should open the in-app summary.
func (e BookmarkEntry) Summarized() bool {
	return e.HasSummary == nil || *e.HasSummary
}

// DisplayTitle falls back to the URL for untitled entries.
func (e BookmarkEntry) DisplayTitle() string {
	if t := strings.TrimSpace(e.Title); t != "" {
		return t
	}
	return e.URL
}

// Summary is a structured recipe. Ingredients and Method keep server order.
type Summary struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Method      []string `json:"method"`
}

// Valid reports whether the summary carries both sequences. A summary that
// decodes without them is treated as no summary.
func (s *Summary) Valid() bool {
	return s != nil && s.Ingredients != nil && s.Method != nil
}

// SummaryResult is the outcome of a summarize call. Summary is nil when the
// server returned an empty string or a malformed recipe. Raw always holds the
// response body for the debug dump.
type SummaryResult struct {
	Summary *Summary        `json:"summary"`
	Raw     json.RawMessage `json:"raw"`
}

// DecodeSummaryResult interprets a summarize response body. An empty body,
// a JSON string or a malformed recipe all decode to a result without a
// summary. Non-JSON bodies are kept in Raw as a JSON string.
func DecodeSummaryResult(body []byte) *SummaryResult {
	trimmed := bytes.TrimSpace(body)
	result := &SummaryResult{}

	switch {
	case len(trimmed) == 0:
		return result
	case !json.Valid(trimmed):
		result.Raw, _ = json.Marshal(string(trimmed))
		return result
	}

	result.Raw = json.RawMessage(append([]byte(nil), trimmed...))
	if trimmed[0] != '{' {
		return result
	}

	var s Summary
	if err := json.Unmarshal(trimmed, &s); err == nil && s.Valid() {
		result.Summary = &s
	}
	return result
}

// SummarizeRequest is the body of POST /api/summarize.
type SummarizeRequest struct {
	URL       string `json:"url"`
	TitleHint string `json:"titleHint,omitempty"`
}

// Credential is the persisted bearer token of the signed-in user.
type Credential struct {
	ID        string
	Token     string
	Email     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the credential has a known expiry before now.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Validate checks the credential before it is stored.
func (c Credential) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("credential token is required")
	}
	return nil
}
