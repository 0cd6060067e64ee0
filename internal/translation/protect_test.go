package translation

import (
	"strings"
	"testing"
)

func TestProtectRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	text := "桜空もも主演の新作、共演は葵つかさ。"
	names := []string{"桜空もも", "葵つかさ"}

	protected := Protect(text, names)
	if protected == text {
		t.Fatalf("expected names to be tokenized")
	}
	for _, name := range names {
		want := "[NAME:" + name + "]"
		if !strings.Contains(protected, want) {
			t.Fatalf("protected text missing token %q: %q", want, protected)
		}
	}

	if got := Restore(protected, names); got != text {
		t.Fatalf("round trip mismatch: got %q want %q", got, text)
	}
}

func TestProtectLongestNameFirst(t *testing.T) {
	t.Parallel()

	// "三上" is a substring of "三上悠亜"; the longer name must win.
	text := "三上悠亜のデビュー作"
	names := []string{"三上", "三上悠亜"}

	protected := Protect(text, names)
	if !strings.Contains(protected, "[NAME:三上悠亜]") {
		t.Fatalf("expected longest name tokenized first: %q", protected)
	}
	if got := Restore(protected, names); got != text {
		t.Fatalf("round trip mismatch: got %q want %q", got, text)
	}
}

func TestProtectNoNames(t *testing.T) {
	t.Parallel()

	text := "何も保護しない"
	if got := Protect(text, nil); got != text {
		t.Fatalf("expected unchanged text, got %q", got)
	}
	if got := Restore(text, []string{"", "  "}); got != text {
		t.Fatalf("expected unchanged text, got %q", got)
	}
}

func TestRestoreLeavesMissingTokensAlone(t *testing.T) {
	t.Parallel()

	// The provider transliterated the name instead of echoing the token.
	translated := "Momo Sakura stars in the new release."
	if got := Restore(translated, []string{"桜空もも"}); got != translated {
		t.Fatalf("expected best-effort restore to leave text unchanged, got %q", got)
	}
}
