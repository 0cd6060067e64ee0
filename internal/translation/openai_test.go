package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCompatibleTranslateSuccess(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	var gotBody chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"  变态教师的欲望  "}}]}`))
	}))
	t.Cleanup(server.Close)

	client := NewCompatibleClient(server.Client())
	spec := ProviderSpec{
		Name:    "primary",
		BaseURL: server.URL + "/v1",
		APIKey:  "sk-test",
		Model:   "gpt-4o-mini",
	}

	translated, err := client.Translate(context.Background(), spec, "変態教師の欲望", "zh_CN")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if translated != "变态教师的欲望" {
		t.Fatalf("unexpected translation: %q", translated)
	}

	if gotPath != "/v1/chat/completions" {
		t.Fatalf("unexpected request path: %q", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("unexpected authorization header: %q", gotAuth)
	}
	if gotBody.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %q", gotBody.Model)
	}
	if gotBody.Temperature != 0 {
		t.Fatalf("temperature must be pinned to zero, got %v", gotBody.Temperature)
	}
	if gotBody.MaxTokens != 1024 {
		t.Fatalf("unexpected max_tokens: %d", gotBody.MaxTokens)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", gotBody.Messages)
	}
	if !strings.Contains(gotBody.Messages[0].Content, "simplified Chinese") {
		t.Fatalf("system instruction missing target language name: %q", gotBody.Messages[0].Content)
	}
	if gotBody.Messages[1].Content != "変態教師の欲望" {
		t.Fatalf("unexpected user content: %q", gotBody.Messages[1].Content)
	}
}

func TestCompatibleTranslateEmptyResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	t.Cleanup(server.Close)

	client := NewCompatibleClient(server.Client())
	spec := ProviderSpec{BaseURL: server.URL, Model: "gpt-4o-mini"}

	_, err := client.Translate(context.Background(), spec, "text", "zh-cn")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestCompatibleTranslateProviderError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	t.Cleanup(server.Close)

	client := NewCompatibleClient(server.Client())
	spec := ProviderSpec{BaseURL: server.URL, Model: "gpt-4o-mini"}

	_, err := client.Translate(context.Background(), spec, "text", "zh-cn")
	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected *ProviderError, got %T: %v", err, err)
	}
	if providerErr.Status != http.StatusUnauthorized || providerErr.Message != "invalid api key" {
		t.Fatalf("unexpected provider error: %+v", providerErr)
	}
}

func TestCompatibleTranslateTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewCompatibleClient(&http.Client{})
	spec := ProviderSpec{BaseURL: server.URL, Model: "gpt-4o-mini"}

	_, err := client.Translate(context.Background(), spec, "text", "zh-cn")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
}

func TestCompatibleTranslateUnusableSpec(t *testing.T) {
	t.Parallel()

	client := NewCompatibleClient(&http.Client{})

	_, err := client.Translate(context.Background(), ProviderSpec{Model: "gpt-4o-mini"}, "text", "zh-cn")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable for missing base_url, got %v", err)
	}

	_, err = client.Translate(context.Background(), ProviderSpec{BaseURL: "https://api.example.com"}, "text", "zh-cn")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable for missing model, got %v", err)
	}
}

func TestChatCompletionsURL(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"https://api.example.com":                     "https://api.example.com/v1/chat/completions",
		"https://api.example.com/v1":                  "https://api.example.com/v1/chat/completions",
		"https://api.example.com/v1/":                 "https://api.example.com/v1/chat/completions",
		"https://api.example.com/v1/chat/completions": "https://api.example.com/v1/chat/completions",
		"https://gateway.example.com/openai":          "https://gateway.example.com/openai/v1/chat/completions",
		"api.example.com":                             "https://api.example.com/v1/chat/completions",
	}
	for base, want := range cases {
		got, err := chatCompletionsURL(base)
		if err != nil {
			t.Fatalf("chatCompletionsURL(%q): %v", base, err)
		}
		if got != want {
			t.Fatalf("chatCompletionsURL(%q) = %q, want %q", base, got, want)
		}
	}

	if _, err := chatCompletionsURL(""); err == nil {
		t.Fatalf("expected error for empty base url")
	}
}
