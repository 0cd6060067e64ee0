package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// SentencePair is one original/translated fragment as segmented by the
// fallback translation service. Compatible providers return a single block
// and produce no pairs.
type SentencePair struct {
	Original   string `json:"orig"`
	Translated string `json:"trans"`
}

// Movie is the subset of scraped movie metadata that translation reads and
// writes. The Original* and *Sentences fields stay empty until the
// corresponding field has actually been translated.
type Movie struct {
	ID         string   `json:"id,omitempty"`
	Title      string   `json:"title"`
	Plot       string   `json:"plot,omitempty"`
	Actresses  []string `json:"actresses,omitempty"`
	SourceLang string   `json:"source_lang,omitempty"`

	OriginalTitle  string         `json:"original_title,omitempty"`
	OriginalPlot   string         `json:"original_plot,omitempty"`
	TitleSentences []SentencePair `json:"title_sentences,omitempty"`
	PlotSentences  []SentencePair `json:"plot_sentences,omitempty"`
}

// Load reads one movie metadata JSON file.
func Load(path string) (*Movie, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata file: %w", err)
	}

	var movie Movie
	if err := json.Unmarshal(raw, &movie); err != nil {
		return nil, fmt.Errorf("decode metadata file %s: %w", path, err)
	}
	if strings.TrimSpace(movie.Title) == "" && strings.TrimSpace(movie.Plot) == "" {
		return nil, fmt.Errorf("metadata file %s has no translatable fields", path)
	}
	return &movie, nil
}

// Save writes the movie back as indented JSON.
func (m *Movie) Save(path string) error {
	if m == nil {
		return fmt.Errorf("movie is nil")
	}
	encoded, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(path, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("write metadata file: %w", err)
	}
	return nil
}
