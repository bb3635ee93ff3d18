package placeholder

import (
	"strings"
	"testing"
)

func TestURL(t *testing.T) {
	got := URL("Category Beverages", 1200, 600)
	want := "https://placehold.co/1200x600/111827/FFFFFF.png?text=Category%20Beverages"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestURLDefaultsEmptyLabel(t *testing.T) {
	got := URL("", 900, 900)
	if !strings.HasSuffix(got, "?text=image") {
		t.Fatalf("expected default caption, got %q", got)
	}
}

func TestURLTruncatesLabel(t *testing.T) {
	label := "Premium Item A (Home & Kitchen #1) Medium extra words"
	got := URL(label, 900, 900)
	caption := strings.SplitN(got, "?text=", 2)[1]
	if strings.Contains(caption, "extra") {
		t.Fatalf("caption should be cut at 40 characters: %q", caption)
	}
	if !strings.Contains(caption, "%26") {
		t.Fatalf("ampersand should be escaped: %q", caption)
	}
}
