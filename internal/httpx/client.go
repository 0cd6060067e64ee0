package httpx

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// NewClient builds an HTTP client for the fallback translation channel,
// routed through proxyURL when one is configured. A zero timeout means no
// client-side deadline; the fallback's own retry loop is bounded by its
// context instead.
func NewClient(proxyURL string, timeout time.Duration) (*http.Client, error) {
	client := &http.Client{Timeout: timeout}

	trimmed := strings.TrimSpace(proxyURL)
	if trimmed == "" {
		return client, nil
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}

	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("default transport is not *http.Transport")
	}
	cloned := transport.Clone()
	cloned.Proxy = http.ProxyURL(parsed)
	client.Transport = cloned
	return client, nil
}
