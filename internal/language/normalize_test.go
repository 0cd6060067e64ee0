package language

import "testing"

func TestNormalizeTag(t *testing.T) {
	t.Parallel()

	if got := NormalizeTag(" ZH_cn "); got != "zh-cn" {
		t.Fatalf("unexpected normalized tag: %q", got)
	}
	if got := NormalizeTag("zh-Hant"); got != "zh-hant" {
		t.Fatalf("unexpected normalized tag: %q", got)
	}
	if got := NormalizeTag("zh--CN"); got != "zh-cn" {
		t.Fatalf("unexpected collapsed tag: %q", got)
	}
	if got := NormalizeTag("zh_123"); got != "" {
		t.Fatalf("expected invalid tag to normalize to empty string, got %q", got)
	}
}

func TestNormalizeCode(t *testing.T) {
	t.Parallel()

	if got := NormalizeCode(" ZH-cn "); got != "zh" {
		t.Fatalf("unexpected normalized code: %q", got)
	}
	if got := NormalizeCode("ja"); got != "ja" {
		t.Fatalf("unexpected normalized code: %q", got)
	}
	if got := NormalizeCode(" "); got != "" {
		t.Fatalf("expected empty code for blank input, got %q", got)
	}
}

func TestName(t *testing.T) {
	t.Parallel()

	if got := Name("zh_CN"); got != "simplified Chinese" {
		t.Fatalf("unexpected language name: %q", got)
	}
	if got := Name("zh-Hant"); got != "traditional Chinese" {
		t.Fatalf("unexpected language name: %q", got)
	}
	if got := Name("en"); got != "English" {
		t.Fatalf("unexpected language name: %q", got)
	}
	if got := Name("tlh"); got != "tlh" {
		t.Fatalf("expected unknown tag to pass through, got %q", got)
	}
}
