package langdetect

import (
	"strings"
	"unicode"

	"horse.fit/subplot/internal/language"
)

// ShouldSkip reports whether text is presumed to already be in the target
// language, in which case the translation call can be skipped.
//
// Only Chinese targets have a heuristic: text containing Han characters but
// no kana is treated as Chinese. Mixed text with kana is still translated
// since it is presumptively untranslated Japanese. For every other target
// language the answer is always false.
func ShouldSkip(text, targetLang string) bool {
	if strings.TrimSpace(text) == "" {
		return true
	}
	if language.NormalizeCode(targetLang) != "zh" {
		return false
	}
	return ContainsChinese(text) && !ContainsJapanese(text)
}

// ContainsChinese reports whether text contains Han characters.
func ContainsChinese(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// ContainsJapanese reports whether text contains kana. Han characters alone
// do not count; they are shared with Chinese.
func ContainsJapanese(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) {
			return true
		}
	}
	return false
}
