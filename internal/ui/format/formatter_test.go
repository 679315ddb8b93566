package format

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sleeptracker/internal/modules/sleep/dto"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 22, 30, 0, 0, time.UTC)

func newTestFormatter() *Formatter {
	return NewFormatter(DefaultStrings(), time.UTC)
}

func TestDurationPicksLargestUnit(t *testing.T) {
	t.Parallel()
	f := newTestFormatter()
	start := monday.UnixMilli()
	cases := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, "0 seconds on Monday"},
		{59 * time.Second, "59 seconds on Monday"},
		{time.Minute, "1 minutes on Monday"},
		{59*time.Minute + 59*time.Second, "59 minutes on Monday"},
		{time.Hour, "1 hours on Monday"},
		{7*time.Hour + 45*time.Minute, "7 hours on Monday"},
	}
	for _, tc := range cases {
		if got := f.Duration(start, start+tc.elapsed.Milliseconds()); got != tc.want {
			t.Fatalf("Duration(%s) = %q, want %q", tc.elapsed, got, tc.want)
		}
	}
}

func TestQualityLabels(t *testing.T) {
	t.Parallel()
	f := newTestFormatter()
	want := map[int]string{-1: "--", 0: "Very bad", 1: "Poor", 2: "So-so", 3: "OK", 4: "Pretty good", 5: "Excellent", 6: "OK", -7: "OK"}
	for q, label := range want {
		if got := f.QualityLabel(q); got != label {
			t.Fatalf("QualityLabel(%d) = %q, want %q", q, got, label)
		}
	}
}

func TestFormatNights(t *testing.T) {
	t.Parallel()
	f := newTestFormatter()
	start := monday.UnixMilli()
	nights := []dto.NightOutput{
		{ID: 2, StartTimeMilli: start + 10_000, EndTimeMilli: start + 10_000, Quality: -1},
		{ID: 1, StartTimeMilli: start, EndTimeMilli: start + (8*time.Hour + 5*time.Minute + 3*time.Second).Milliseconds(), Quality: 5},
	}
	got := f.FormatNights(nights)
	want := "Here is your sleep data:\n\n" +
		"Start:\n\tMonday Mar-02-2026 Time: 22:30\n" +
		"Start:\n\tMonday Mar-02-2026 Time: 22:30\n" +
		"End:\n\tTuesday Mar-03-2026 Time: 06:35\n" +
		"Quality:\tExcellent\n" +
		"Hours:Minutes:Seconds:\n\t8:05:03\n\n"
	if got != want {
		t.Fatalf("summary mismatch\n got: %q\nwant: %q", got, want)
	}
	if empty := f.FormatNights(nil); empty != "Here is your sleep data:\n\n" {
		t.Fatalf("empty summary = %q", empty)
	}
}

func TestLoadStringsOverlaysDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "strings.yaml")
	content := "summary_title: \"Deine Schlafdaten:\"\nquality_labels:\n  5: Ausgezeichnet\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := LoadStrings(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.SummaryTitle != "Deine Schlafdaten:" || s.QualityLabels[5] != "Ausgezeichnet" {
		t.Fatalf("overrides not applied: %+v", s)
	}
	if s.QualityLabels[0] != "Very bad" || s.Hours != "%d hours on %s" {
		t.Fatalf("defaults lost: %+v", s)
	}
	if _, err := LoadStrings(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !strings.Contains(DefaultStrings().ClearedMessage, "gone") {
		t.Fatalf("unexpected default snackbar text")
	}
}
