// Package extract recovers person names from search result titles and converts
// between structured profiles and the human-readable result text.
package extract

import (
	"regexp"
	"strings"
)

// NameFunc extracts a person name from a result title. It never fails;
// an empty string means nothing usable was found.
type NameFunc func(title string) string

// wordClass - аналог [\w\s] с поддержкой юникода (имена бывают не только латиницей)
const wordClass = `[\p{L}\p{N}_\s]`

// порядок важен: первое совпадение выигрывает
var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(` + wordClass + `+)\s+\|\s+LinkedIn$`),
	regexp.MustCompile(`^(` + wordClass + `+)\s+-\s+LinkedIn$`),
	regexp.MustCompile(`^(` + wordClass + `+)'s Profile\s+\|\s+LinkedIn$`),
	regexp.MustCompile(`^(` + wordClass + `+)\s+\|\s+Professional Profile\s+\|\s+LinkedIn$`),
}

var fallbackReplacer = strings.NewReplacer("LinkedIn", "", "|", "", "-", "")

// NameFromTitle tries the known LinkedIn title layouts in order and falls back
// to stripping "LinkedIn", "|" and "-" from the whole title.
func NameFromTitle(title string) string {
	for _, re := range titlePatterns {
		if m := re.FindStringSubmatch(title); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return strings.TrimSpace(fallbackReplacer.Replace(title))
}

var suffixes = []string{
	" | LinkedIn",
	" - LinkedIn",
	" | Professional Profile | LinkedIn",
	"'s Profile | LinkedIn",
}

// NameByStrippingSuffix removes the known LinkedIn suffixes one after another.
// The removals are applied in a fixed order, so "Jane's Profile | LinkedIn"
// loses " | LinkedIn" first and keeps "'s Profile".
func NameByStrippingSuffix(title string) string {
	name := title
	for _, s := range suffixes {
		name = strings.ReplaceAll(name, s, "")
	}
	return strings.TrimSpace(name)
}
