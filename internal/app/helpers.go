package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"horse.fit/subplot/internal/cli"
	"horse.fit/subplot/internal/config"
	"horse.fit/subplot/internal/httpx"
	"horse.fit/subplot/internal/language"
	"horse.fit/subplot/internal/logging"
	"horse.fit/subplot/internal/translation"
)

// runtime bundles everything a command needs after configuration is loaded.
type runtime struct {
	cfg    *config.Config
	logger zerolog.Logger
	specs  []translation.ProviderSpec
	compat *translation.CompatibleClient
	google *translation.GoogleClient
	chain  *translation.Chain
}

func buildRuntime(envLoader *cli.EnvLoader) (*runtime, error) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	var specs []translation.ProviderSpec
	if path := strings.TrimSpace(cfg.ProvidersFile); path != "" {
		specs, err = config.LoadProviders(path)
		if err != nil {
			return nil, err
		}
	}

	// Only the fallback channel honors the configured proxy.
	proxyClient, err := httpx.NewClient(cfg.ProxyServer, 0)
	if err != nil {
		return nil, fmt.Errorf("build fallback http client: %w", err)
	}

	compat := translation.NewCompatibleClient(nil)
	google := translation.NewGoogleClient(proxyClient, translation.NewBackoff(), logger)
	chain := translation.NewChain(specs, compat, google, logger)

	return &runtime{
		cfg:    cfg,
		logger: logger,
		specs:  specs,
		compat: compat,
		google: google,
		chain:  chain,
	}, nil
}

func (r *runtime) orchestratorOptions() translation.Options {
	return translation.Options{
		TargetLang:     language.NormalizeTag(r.cfg.TargetLanguage),
		TranslateTitle: r.cfg.TranslateTitle,
		TranslatePlot:  r.cfg.TranslatePlot,
		TitleMandatory: r.cfg.TitleMandatory,
		AutoSkip:       r.cfg.AutoDetectLanguage,
	}
}

// consoleProgress prints one line per provider attempt, the way an operator
// watches the chain work through its candidates.
func consoleProgress(out io.Writer) func(translation.AttemptProgress) {
	return func(p translation.AttemptProgress) {
		label := fmt.Sprintf("[%d/%d]", p.Index+1, p.Total)
		if p.Fallback {
			label = "[fallback]"
		}
		if p.Err == nil {
			fmt.Fprintf(out, "  %s %s: ok\n", label, p.Provider)
			return
		}
		fmt.Fprintf(out, "  %s %s: %s\n", label, p.Provider, shorten(p.Err.Error(), 80))
	}
}

func shorten(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
