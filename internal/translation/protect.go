package translation

import (
	"sort"
	"strings"
)

// Performer names are shielded from mistranslation by wrapping them in opaque
// tokens before the provider call. The token embeds the original name, so
// restoring is a plain textual substitution with no lookup table.

// Protect replaces every occurrence of each name with its token. Names are
// applied longest-first so a name containing another name is tokenized
// before its substring can corrupt the token. With no names the text is
// returned unchanged.
func Protect(text string, names []string) string {
	for _, name := range orderNames(names) {
		text = strings.ReplaceAll(text, name, protectToken(name))
	}
	return text
}

// Restore reverses Protect. Tokens whose name was transliterated away by the
// provider are simply not found and stay untouched; this is best effort.
func Restore(text string, names []string) string {
	ordered := orderNames(names)
	for i := len(ordered) - 1; i >= 0; i-- {
		text = strings.ReplaceAll(text, protectToken(ordered[i]), ordered[i])
	}
	return text
}

func protectToken(name string) string {
	return "[NAME:" + name + "]"
}

func orderNames(names []string) []string {
	ordered := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		ordered = append(ordered, name)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})
	return ordered
}
