package translation

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"horse.fit/subplot/internal/langdetect"
	"horse.fit/subplot/internal/metadata"
)

// Field status values reported after an orchestrator run.
const (
	FieldTranslated = "translated"
	FieldSkipped    = "skipped"
	FieldFailed     = "failed"
)

const (
	fieldTitle = "title"
	fieldPlot  = "plot"
)

// Options mirrors the translator configuration block.
type Options struct {
	TargetLang     string
	TranslateTitle bool
	TranslatePlot  bool
	// TitleMandatory downgrades a failed title translation to a warning
	// instead of silently ignoring it; processing continues either way.
	TitleMandatory bool
	// AutoSkip enables the already-in-target-language heuristic.
	AutoSkip bool
}

// FieldReport describes what happened to one metadata field.
type FieldReport struct {
	Field    string `json:"field"`
	Status   string `json:"status"`
	Provider string `json:"provider,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ChainTranslator is the orchestrator's view of the provider chain.
type ChainTranslator interface {
	Translate(ctx context.Context, req Request) (*Result, error)
}

// Orchestrator applies the provider chain to the translatable fields of one
// movie's scraped metadata: title first, then plot, each independently. No
// failure here is fatal; a field that cannot be translated keeps its
// original text.
type Orchestrator struct {
	chain  ChainTranslator
	opts   Options
	logger zerolog.Logger
}

func NewOrchestrator(chain ChainTranslator, opts Options, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{chain: chain, opts: opts, logger: logger}
}

// TranslateMovie enriches m in place and reports per-field outcomes.
func (o *Orchestrator) TranslateMovie(ctx context.Context, m *metadata.Movie) []FieldReport {
	if o == nil || m == nil {
		return nil
	}

	if m.SourceLang == "" {
		m.SourceLang = langdetect.DetectCode(strings.TrimSpace(m.Title + " " + m.Plot))
	}

	reports := make([]FieldReport, 0, 2)
	if o.opts.TranslateTitle && strings.TrimSpace(m.Title) != "" && m.OriginalTitle == "" {
		reports = append(reports, o.translateTitle(ctx, m))
	}
	if o.opts.TranslatePlot && strings.TrimSpace(m.Plot) != "" && m.OriginalPlot == "" {
		reports = append(reports, o.translatePlot(ctx, m))
	}
	return reports
}

func (o *Orchestrator) translateTitle(ctx context.Context, m *metadata.Movie) FieldReport {
	if o.opts.AutoSkip && langdetect.ShouldSkip(m.Title, o.opts.TargetLang) {
		return FieldReport{Field: fieldTitle, Status: FieldSkipped}
	}

	result, err := o.chain.Translate(ctx, Request{
		Text:           m.Title,
		TargetLang:     o.opts.TargetLang,
		ProtectedNames: m.Actresses,
		Field:          fieldTitle,
	})
	if err != nil {
		if o.opts.TitleMandatory {
			o.logger.Warn().
				Err(err).
				Str("id", m.ID).
				Msg("mandatory title translation failed, continuing with original")
		}
		return FieldReport{Field: fieldTitle, Status: FieldFailed, Error: err.Error()}
	}

	m.OriginalTitle = m.Title
	m.Title = result.Text
	if len(result.Sentences) > 0 {
		m.TitleSentences = result.Sentences
	}
	return FieldReport{Field: fieldTitle, Status: FieldTranslated, Provider: result.Provider}
}

func (o *Orchestrator) translatePlot(ctx context.Context, m *metadata.Movie) FieldReport {
	if o.opts.AutoSkip && langdetect.ShouldSkip(m.Plot, o.opts.TargetLang) {
		return FieldReport{Field: fieldPlot, Status: FieldSkipped}
	}

	result, err := o.chain.Translate(ctx, Request{
		Text:           m.Plot,
		TargetLang:     o.opts.TargetLang,
		ProtectedNames: m.Actresses,
		Field:          fieldPlot,
	})
	if err != nil {
		return FieldReport{Field: fieldPlot, Status: FieldFailed, Error: err.Error()}
	}

	m.OriginalPlot = m.Plot
	m.Plot = result.Text
	if len(result.Sentences) > 0 {
		m.PlotSentences = result.Sentences
	}
	return FieldReport{Field: fieldPlot, Status: FieldTranslated, Provider: result.Provider}
}
