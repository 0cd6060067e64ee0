package translation

import (
	"context"

	"github.com/rs/zerolog"

	"horse.fit/subplot/internal/metadata"
)

// CompatTranslator is the single-attempt contract of a compatible provider
// client.
type CompatTranslator interface {
	Translate(ctx context.Context, spec ProviderSpec, text, targetLang string) (string, error)
}

// FallbackTranslator is the contract of the public fallback client.
type FallbackTranslator interface {
	Translate(ctx context.Context, text, targetLang string) (*Result, error)
}

// AttemptProgress reports one provider attempt for the operator console.
// Err is nil when the attempt succeeded.
type AttemptProgress struct {
	Index    int
	Total    int
	Provider string
	Fallback bool
	Err      error
}

// Chain tries each configured provider in priority order, strictly one at a
// time, and falls back to the public endpoint once every provider has
// failed. The first success wins; failures are collected, never fatal to the
// chain mid-iteration.
type Chain struct {
	specs    []ProviderSpec
	compat   CompatTranslator
	fallback FallbackTranslator
	logger   zerolog.Logger
	progress func(AttemptProgress)
}

func NewChain(specs []ProviderSpec, compat CompatTranslator, fallback FallbackTranslator, logger zerolog.Logger) *Chain {
	return &Chain{
		specs:    specs,
		compat:   compat,
		fallback: fallback,
		logger:   logger,
	}
}

// SetProgress installs a per-attempt callback.
func (c *Chain) SetProgress(fn func(AttemptProgress)) {
	if c != nil {
		c.progress = fn
	}
}

// Translate runs the chain for one request. On total exhaustion the returned
// error is a *ChainError carrying every per-provider failure plus the
// fallback failure.
func (c *Chain) Translate(ctx context.Context, req Request) (*Result, error) {
	protected := Protect(req.Text, req.ProtectedNames)
	total := len(c.specs)

	attempts := make([]Attempt, 0, total)
	for i, spec := range c.specs {
		label := spec.Label()
		translated, err := c.compat.Translate(ctx, spec, protected, req.TargetLang)
		if err == nil {
			c.report(AttemptProgress{Index: i, Total: total, Provider: label})
			return &Result{
				Text:     Restore(translated, req.ProtectedNames),
				Provider: label,
			}, nil
		}
		c.report(AttemptProgress{Index: i, Total: total, Provider: label, Err: err})
		attempts = append(attempts, Attempt{Provider: label, Err: err})
	}

	if total > 0 {
		c.logger.Warn().
			Int("providers", total).
			Str("field", req.Field).
			Msg("all compatible providers failed, falling back to google")
	}

	result, err := c.fallback.Translate(ctx, protected, req.TargetLang)
	if err != nil {
		c.report(AttemptProgress{Index: total, Total: total, Provider: FallbackProviderName, Fallback: true, Err: err})
		return nil, &ChainError{Attempts: attempts, FallbackErr: err}
	}
	c.report(AttemptProgress{Index: total, Total: total, Provider: FallbackProviderName, Fallback: true})

	result.Text = Restore(result.Text, req.ProtectedNames)
	result.Sentences = restoreSentences(result.Sentences, req.ProtectedNames)
	return result, nil
}

func (c *Chain) report(p AttemptProgress) {
	if c.progress != nil {
		c.progress(p)
	}
}

func restoreSentences(pairs []metadata.SentencePair, names []string) []metadata.SentencePair {
	if len(pairs) == 0 || len(names) == 0 {
		return pairs
	}
	restored := make([]metadata.SentencePair, len(pairs))
	for i, pair := range pairs {
		restored[i] = metadata.SentencePair{
			Original:   Restore(pair.Original, names),
			Translated: Restore(pair.Translated, names),
		}
	}
	return restored
}
