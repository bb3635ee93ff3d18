// Package placeholder builds placehold.co image URLs for seeded rows.
package placeholder

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	baseURL    = "https://placehold.co"
	background = "111827"
	foreground = "FFFFFF"
	maxLabel   = 40
	emptyLabel = "image"
)

// URL returns a dark placeholder image of w x h pixels captioned with the
// first 40 characters of label.
func URL(label string, w, h int) string {
	text := []rune(strings.TrimSpace(label))
	if len(text) > maxLabel {
		text = text[:maxLabel]
	}
	caption := string(text)
	if caption == "" {
		caption = emptyLabel
	}
	return fmt.Sprintf("%s/%dx%d/%s/%s.png?text=%s", baseURL, w, h, background, foreground, escape(caption))
}

// escape percent-encodes like a path segment but also encodes '&' and '+' so
// the caption survives as a single query value.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
