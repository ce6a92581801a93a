package util

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateSlug(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		slug := GenerateSlug()
		if len(slug) != SlugLength {
			t.Fatalf("slug %q has length %d, want %d", slug, len(slug), SlugLength)
		}
		for _, r := range slug {
			if !strings.ContainsRune(slugChars, r) {
				t.Fatalf("slug %q contains unexpected character %q", slug, r)
			}
		}
		seen[slug] = true
	}
	if len(seen) < 90 {
		t.Fatalf("only %d distinct slugs out of 100", len(seen))
	}
}

func TestStartOfDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	at := time.Date(2025, time.March, 10, 15, 42, 7, 123, loc)

	got := StartOfDay(at)
	want := time.Date(2025, time.March, 10, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("StartOfDay=%v, want %v", got, want)
	}

	next := StartOfDay(at, 1)
	if !next.Equal(time.Date(2025, time.March, 11, 0, 0, 0, 0, loc)) {
		t.Fatalf("StartOfDay(+1)=%v", next)
	}

	// Midnight input is already the window start.
	if got2 := StartOfDay(want); !got2.Equal(want) {
		t.Fatalf("StartOfDay at midnight moved to %v", got2)
	}

	// Month rollover.
	eom := time.Date(2025, time.January, 31, 23, 59, 0, 0, time.UTC)
	if got3 := StartOfDay(eom, 1); !got3.Equal(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("StartOfDay across month=%v", got3)
	}
}
