// Package slug builds URL identifiers from display names.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is used when a name has no sluggable characters at all.
const Fallback = "item"

// MaxLength mirrors the width of the slug columns.
const MaxLength = 50

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Make lower-cases text, folds accents to ASCII and collapses every run of
// other characters into a single hyphen. The result may be empty.
func Make(text string) string {
	folder := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, text)
	if err != nil {
		folded = text
	}
	s := nonAlnumRe.ReplaceAllString(strings.ToLower(folded), "-")
	s = strings.Trim(s, "-")
	return truncate(s, MaxLength)
}

// MakeOrFallback is Make with Fallback substituted for an empty result.
func MakeOrFallback(text string) string {
	if s := Make(text); s != "" {
		return s
	}
	return Fallback
}

// Unique returns base when it is free, otherwise base-2, base-3, ... until
// exists reports false.
func Unique(base string, exists func(candidate string) (bool, error)) (string, error) {
	if base == "" {
		base = Fallback
	}
	candidate := base
	for i := 2; ; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("checking slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		suffix := fmt.Sprintf("-%d", i)
		candidate = truncate(base, MaxLength-len(suffix)) + suffix
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimRight(s[:n], "-")
}
