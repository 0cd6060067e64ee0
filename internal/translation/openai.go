package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"horse.fit/subplot/internal/language"
)

const defaultCompatibleTimeout = 60 * time.Second

// CompatibleClient calls OpenAI-compatible chat completions endpoints. One
// client serves every configured ProviderSpec; a spec carries the endpoint,
// credential and model per call. Retry and fallback are the chain's job, so
// a single invocation makes exactly one attempt.
type CompatibleClient struct {
	client *http.Client
}

// NewCompatibleClient builds a client. Compatible providers use their own
// HTTP client configuration and are not routed through the fallback proxy.
func NewCompatibleClient(client *http.Client) *CompatibleClient {
	if client == nil {
		client = &http.Client{Timeout: defaultCompatibleTimeout}
	}
	return &CompatibleClient{client: client}
}

const instructionTemplate = "Translate the following Japanese paragraph into %s (%s), " +
	"while leaving non-Japanese text, names, or text that does not look like Japanese untranslated. " +
	"Reply with the translated text only, do not add any text that is not in the original content."

// Translate makes one attempt against the given provider. The text must
// already have entity protection applied; this layer is unaware of entity
// semantics.
func (c *CompatibleClient) Translate(ctx context.Context, spec ProviderSpec, text, targetLang string) (string, error) {
	if c == nil || c.client == nil {
		return "", ErrProviderUnavailable
	}
	if strings.TrimSpace(spec.BaseURL) == "" || strings.TrimSpace(spec.Model) == "" {
		return "", fmt.Errorf("%w: base_url and model are required", ErrProviderUnavailable)
	}

	endpoint, err := chatCompletionsURL(spec.BaseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	normalizedTarget := language.NormalizeTag(targetLang)
	instruction := fmt.Sprintf(instructionTemplate, language.Name(targetLang), normalizedTarget)

	body, err := json.Marshal(chatRequest{
		Model: spec.Model,
		Messages: []chatMessage{
			{Role: "system", Content: instruction},
			{Role: "user", Content: text},
		},
		Temperature: 0,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if key := strings.TrimSpace(spec.APIKey); key != "" {
		httpReq.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errPayload chatErrorResponse
		if unmarshalErr := json.Unmarshal(respBody, &errPayload); unmarshalErr == nil {
			if msg := strings.TrimSpace(errPayload.Error.Message); msg != "" {
				return "", &ProviderError{Status: resp.StatusCode, Message: msg}
			}
		}
		return "", &ProviderError{Status: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	translated := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if translated == "" {
		return "", ErrEmptyResponse
	}
	return translated, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func chatCompletionsURL(base string) (string, error) {
	endpoint := strings.TrimSpace(base)
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse base_url %q: %w", base, err)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", fmt.Errorf("base_url %q has no host", base)
	}

	path := strings.TrimRight(parsed.Path, "/")
	switch {
	case strings.HasSuffix(path, "/chat/completions"):
		parsed.Path = path
	case strings.HasSuffix(path, "/v1"):
		parsed.Path = path + "/chat/completions"
	case path == "":
		parsed.Path = "/v1/chat/completions"
	default:
		parsed.Path = path + "/v1/chat/completions"
	}

	return parsed.String(), nil
}
