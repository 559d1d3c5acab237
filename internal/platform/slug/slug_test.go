package slug_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"lockedin/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"  Learn Go!  ":      "learn-go",
		"Ship v2 -- by June": "ship-v2-by-june",
		"Español B2":         "español-b2",
		"???":                "goal",
	}
	for in, want := range cases {
		if got := slug.Make(in); got != want {
			t.Fatalf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMakeTruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()
	long := slug.Make(strings.Repeat("ñu ", 40))
	if utf8.RuneCountInString(long) > 64 || strings.HasSuffix(long, "-") || !utf8.ValidString(long) {
		t.Fatalf("expected truncated slug without trailing dash, got %q", long)
	}
}
