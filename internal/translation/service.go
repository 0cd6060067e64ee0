package translation

import (
	"strings"

	"horse.fit/subplot/internal/metadata"
)

// ProviderSpec configures one OpenAI-compatible translation endpoint. The
// order of the configured list is the priority order; duplicate names are
// allowed since entries are identified by position.
type ProviderSpec struct {
	Name    string `json:"name,omitempty"`
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key,omitempty"`
	Model   string `json:"model"`
}

// Label returns the display name used in logs and progress output.
func (s ProviderSpec) Label() string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return strings.TrimSpace(s.Model)
}

// Request describes one text to translate.
type Request struct {
	Text       string
	TargetLang string
	// ProtectedNames are substituted with opaque tokens before any provider
	// sees the text and restored afterwards.
	ProtectedNames []string
	// Field labels the request in diagnostics only.
	Field string
}

// Result is a successful translation. Sentences is populated only when the
// fallback service segmented its output; compatible providers return a
// single block.
type Result struct {
	Text      string                  `json:"text"`
	Provider  string                  `json:"provider"`
	Sentences []metadata.SentencePair `json:"sentences,omitempty"`
}
