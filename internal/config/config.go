package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"horse.fit/subplot/internal/language"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	TargetLanguage     string `envconfig:"TARGET_LANGUAGE" default:"zh-cn"`
	TranslateTitle     bool   `envconfig:"TRANSLATE_TITLE" default:"true"`
	TranslatePlot      bool   `envconfig:"TRANSLATE_PLOT" default:"true"`
	TitleMandatory     bool   `envconfig:"TITLE_MANDATORY" default:"true"`
	AutoDetectLanguage bool   `envconfig:"AUTO_DETECT_LANGUAGE" default:"true"`

	// ProvidersFile points at the ordered provider list (JSON). Empty means
	// no compatible providers: every request goes straight to the fallback.
	ProvidersFile string `envconfig:"PROVIDERS_FILE" default:""`

	// ProxyServer routes fallback traffic only; compatible providers use
	// their own client configuration.
	ProxyServer string `envconfig:"PROXY_SERVER" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if language.NormalizeTag(c.TargetLanguage) == "" {
		return fmt.Errorf("TARGET_LANGUAGE %q is not a valid language tag", c.TargetLanguage)
	}
	if proxy := strings.TrimSpace(c.ProxyServer); proxy != "" {
		parsed, err := url.Parse(proxy)
		if err != nil {
			return fmt.Errorf("PROXY_SERVER is not a valid URL: %w", err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("PROXY_SERVER %q must include scheme and host", proxy)
		}
	}
	return nil
}
