package langdetect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

// Classification below this many letters is guesswork.
const minSampleLetters = 6

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// DetectCode identifies the source language of scraped text and returns its
// ISO 639-1 code, or "" when the sample is too short to classify reliably.
// The result is recorded for auditing only; it never drives the skip
// heuristic.
func DetectCode(text string) string {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return ""
	}

	letterCount := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letterCount++
		}
	}
	if letterCount < minSampleLetters {
		return ""
	}

	lang, exists := getDetector().DetectLanguageOf(sample)
	if !exists {
		return ""
	}

	code := strings.ToLower(lang.IsoCode639_1().String())
	if len(code) != 2 {
		return ""
	}
	return code
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		// Scraped sources in practice are Japanese, with occasional
		// English, Chinese or Korean passages.
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.Japanese,
				lingua.Chinese,
				lingua.Korean,
				lingua.English,
			).
			WithPreloadedLanguageModels().
			Build()
	})
	return detector
}
