package translation

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestSelfTestReportsEveryProvider(t *testing.T) {
	t.Parallel()

	compat := &stubCompat{answers: []stubAnswer{
		{text: "你好"},
		{err: ErrEmptyResponse},
	}}
	fallback := &stubFallback{result: &Result{Text: "你好", Provider: FallbackProviderName}}

	results := SelfTest(context.Background(), specsOf("first", "second"), compat, fallback, "zh-cn", zerolog.Nop())

	if len(results) != 3 {
		t.Fatalf("expected one result per provider plus fallback, got %d", len(results))
	}
	if results[0].Provider != "first" || results[0].Status != "success" || results[0].Translation != "你好" {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
	if results[1].Provider != "second" || results[1].Status != "failed" || results[1].Error == "" {
		t.Fatalf("unexpected second result: %+v", results[1])
	}
	if results[2].Provider != FallbackProviderName || results[2].Status != "success" {
		t.Fatalf("unexpected fallback result: %+v", results[2])
	}

	if len(compat.texts) != 2 || compat.texts[0] != SelfTestPhrase {
		t.Fatalf("providers must be probed with the fixed phrase: %+v", compat.texts)
	}
	if fallback.calls != 1 {
		t.Fatalf("fallback must always be probed once, got %d", fallback.calls)
	}
}

func TestSelfTestFallbackFailure(t *testing.T) {
	t.Parallel()

	fallback := &stubFallback{err: &ProviderError{Status: 503, Message: "unavailable"}}

	results := SelfTest(context.Background(), nil, &stubCompat{}, fallback, "zh-cn", zerolog.Nop())

	if len(results) != 1 {
		t.Fatalf("expected a single fallback result, got %d", len(results))
	}
	if results[0].Status != "failed" || results[0].Error == "" {
		t.Fatalf("unexpected fallback result: %+v", results[0])
	}
}
