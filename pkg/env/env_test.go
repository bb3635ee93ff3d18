package env

import "testing"

func TestGetPrefersPrefixedValue(t *testing.T) {
	t.Setenv("CATALOG_TEST_FORMAT", "console")
	t.Setenv("TEST_FORMAT", "text")
	if got := Get("TEST_FORMAT", "json"); got != "console" {
		t.Fatalf("expected prefixed value, got %q", got)
	}
}

func TestGetFallsBack(t *testing.T) {
	t.Setenv("CATALOG_TEST_FORMAT", "")
	t.Setenv("TEST_FORMAT", "text")
	if got := Get("TEST_FORMAT", "json"); got != "text" {
		t.Fatalf("expected bare value, got %q", got)
	}

	t.Setenv("TEST_FORMAT", "")
	if got := Get("TEST_FORMAT", "json"); got != "json" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
