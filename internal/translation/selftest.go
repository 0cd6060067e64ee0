package translation

import (
	"context"

	"github.com/rs/zerolog"
)

// SelfTestPhrase is the fixed sample sent to every provider during the
// startup diagnostic.
const SelfTestPhrase = "こんにちは"

// SelfTestResult reports one provider's diagnostic outcome.
type SelfTestResult struct {
	Provider    string `json:"provider"`
	Status      string `json:"status"`
	Translation string `json:"translation,omitempty"`
	Error       string `json:"error,omitempty"`
}

const (
	selfTestSuccess = "success"
	selfTestFailed  = "failed"
)

// SelfTest exercises every configured provider and then the fallback with
// the fixed sample phrase, reporting per-provider success or failure. It
// never touches real metadata.
func SelfTest(ctx context.Context, specs []ProviderSpec, compat CompatTranslator, fallback FallbackTranslator, targetLang string, logger zerolog.Logger) []SelfTestResult {
	results := make([]SelfTestResult, 0, len(specs)+1)

	for i, spec := range specs {
		label := spec.Label()
		logger.Info().
			Int("index", i+1).
			Int("total", len(specs)).
			Str("provider", label).
			Msg("testing translation provider")

		translated, err := compat.Translate(ctx, spec, SelfTestPhrase, targetLang)
		if err != nil {
			logger.Warn().Err(err).Str("provider", label).Msg("provider self-test failed")
			results = append(results, SelfTestResult{
				Provider: label,
				Status:   selfTestFailed,
				Error:    err.Error(),
			})
			continue
		}
		logger.Info().Str("provider", label).Str("translation", translated).Msg("provider self-test succeeded")
		results = append(results, SelfTestResult{
			Provider:    label,
			Status:      selfTestSuccess,
			Translation: translated,
		})
	}

	logger.Info().Msg("testing google fallback")
	result, err := fallback.Translate(ctx, SelfTestPhrase, targetLang)
	if err != nil {
		logger.Warn().Err(err).Msg("google fallback self-test failed")
		results = append(results, SelfTestResult{
			Provider: FallbackProviderName,
			Status:   selfTestFailed,
			Error:    err.Error(),
		})
		return results
	}
	logger.Info().Str("translation", result.Text).Msg("google fallback self-test succeeded")
	results = append(results, SelfTestResult{
		Provider:    FallbackProviderName,
		Status:      selfTestSuccess,
		Translation: result.Text,
	})
	return results
}
