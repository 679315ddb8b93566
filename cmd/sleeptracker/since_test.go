package main

import (
	"testing"
	"time"
)

func TestParseSinceLayouts(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	cases := map[string]time.Time{
		"2026-03-01":          time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		"2026/03/02":          time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		"03/04/2026":          time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		"2026-03-05T22:30:00": time.Date(2026, 3, 5, 22, 30, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := parseSince(in, now)
		if err != nil {
			t.Fatalf("parseSince(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("parseSince(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseSinceNaturalLanguage(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	got, err := parseSince("3 days ago", now)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !got.Before(now) || now.Sub(got) < 48*time.Hour {
		t.Fatalf("3 days ago resolved to %v", got)
	}
}

func TestParseSinceRejectsGarbage(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "   ", "zzz"} {
		if _, err := parseSince(in, time.Now()); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
