package language

import (
	"sort"
	"strings"
)

// Option is one target language the translator can be configured with.
type Option struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Native string `json:"native,omitempty"`
}

type label struct {
	english string
	native  string
}

var targetLanguageLabels = map[string]label{
	"de":    {english: "German", native: "Deutsch"},
	"en":    {english: "English", native: "English"},
	"es":    {english: "Spanish", native: "Español"},
	"fr":    {english: "French", native: "Français"},
	"id":    {english: "Indonesian", native: "Bahasa Indonesia"},
	"ja":    {english: "Japanese", native: "日本語"},
	"ko":    {english: "Korean", native: "한국어"},
	"ru":    {english: "Russian", native: "Русский"},
	"th":    {english: "Thai", native: "ไทย"},
	"vi":    {english: "Vietnamese", native: "Tiếng Việt"},
	"zh-cn": {english: "simplified Chinese", native: "简体中文"},
	"zh-tw": {english: "traditional Chinese", native: "繁體中文"},
}

// Name returns the human-readable English name used when instructing a
// translation provider. Unknown tags are passed through unchanged so the
// provider still gets something to work with.
func Name(tag string) string {
	normalized := NormalizeTag(tag)
	switch normalized {
	case "zh", "zh-hans":
		normalized = "zh-cn"
	case "zh-hant", "zh-hk":
		normalized = "zh-tw"
	}
	if l, ok := targetLanguageLabels[normalized]; ok {
		return l.english
	}
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return "English"
	}
	return trimmed
}

// Options lists the supported target languages in code order.
func Options() []Option {
	codes := make([]string, 0, len(targetLanguageLabels))
	for code := range targetLanguageLabels {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	options := make([]Option, 0, len(codes))
	for _, code := range codes {
		l := targetLanguageLabels[code]
		options = append(options, Option{
			Code:   code,
			Label:  l.english,
			Native: l.native,
		})
	}
	return options
}
