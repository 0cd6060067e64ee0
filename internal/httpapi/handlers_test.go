package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"horse.fit/subplot/internal/translation"
)

type stubChain struct {
	calls  int
	last   translation.Request
	result *translation.Result
	err    error
}

func (s *stubChain) Translate(_ context.Context, req translation.Request) (*translation.Result, error) {
	s.calls++
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestServer(chain *stubChain) *Server {
	return NewServer(chain, nil, "zh-cn", zerolog.Nop(), Options{})
}

func performTranslate(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := server.handleTranslate(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestHandleTranslateSuccess(t *testing.T) {
	t.Parallel()

	chain := &stubChain{result: &translation.Result{Text: "译文", Provider: "primary"}}
	server := newTestServer(chain)

	rec := performTranslate(t, server, `{"text":"原文","target_lang":"zh_CN","names":["桜空もも"]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Result     translation.Result `json:"result"`
			TargetLang string             `json:"target_lang"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "success" || resp.Data.Result.Text != "译文" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Data.TargetLang != "zh-cn" {
		t.Fatalf("target language not normalized: %q", resp.Data.TargetLang)
	}
	if chain.last.ProtectedNames[0] != "桜空もも" {
		t.Fatalf("names not forwarded: %+v", chain.last)
	}
}

func TestHandleTranslateBlankText(t *testing.T) {
	t.Parallel()

	chain := &stubChain{}
	server := newTestServer(chain)

	rec := performTranslate(t, server, `{"text":"   "}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	if chain.calls != 0 {
		t.Fatalf("chain must not run for blank text, got %d calls", chain.calls)
	}
}

func TestHandleTranslateUsesDefaultLanguage(t *testing.T) {
	t.Parallel()

	chain := &stubChain{result: &translation.Result{Text: "译", Provider: "primary"}}
	server := newTestServer(chain)

	performTranslate(t, server, `{"text":"原文"}`)

	if chain.last.TargetLang != "zh-cn" {
		t.Fatalf("expected configured default language, got %q", chain.last.TargetLang)
	}
}

func TestHandleTranslateChainFailure(t *testing.T) {
	t.Parallel()

	chain := &stubChain{err: &translation.ChainError{
		FallbackErr: &translation.ProviderError{Status: 503, Message: "unavailable"},
	}}
	server := newTestServer(chain)

	rec := performTranslate(t, server, `{"text":"原文"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "error" {
		t.Fatalf("unexpected jsend status: %q", resp.Status)
	}
}
