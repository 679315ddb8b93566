package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sleeptracker/internal/modules/sleep/dto"
	sleepout "sleeptracker/internal/modules/sleep/port/out"
	"sleeptracker/internal/platform/markdown"
)

var _ sleepout.JournalWriter = (*MarkdownJournal)(nil)

const (
	journalSchemaVersion = 1
	journalBlockStart    = "<!-- sleeptracker:start -->"
	journalBlockEnd      = "<!-- sleeptracker:end -->"
)

// MarkdownJournal writes one note per night under YYYY/MM/DD. Text outside
// the generated block is preserved across exports.
type MarkdownJournal struct {
	loc *time.Location
}

func NewMarkdownJournal(loc *time.Location) *MarkdownJournal {
	if loc == nil {
		loc = time.Local
	}
	return &MarkdownJournal{loc: loc}
}

func (j *MarkdownJournal) NotePath(dir string, night dto.NightOutput) string {
	start := night.Start().In(j.loc)
	return filepath.Join(dir, start.Format("2006"), start.Format("01"), start.Format("02"), fmt.Sprintf("night-%d.md", night.ID))
}

func (j *MarkdownJournal) WriteNight(_ context.Context, dir string, entry dto.JournalEntry) (bool, error) {
	night := entry.Night
	path := j.NotePath(dir, night)

	doc := markdown.Document{Meta: map[string]any{}, Body: fmt.Sprintf("# Night %d\n", night.ID)}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		existing, parseErr := markdown.Parse(string(raw))
		if parseErr != nil {
			return false, fmt.Errorf("parse %s: %w", path, parseErr)
		}
		end, endOK := existing.Int64("end_time_milli")
		quality, qualityOK := existing.Int64("quality")
		if endOK && qualityOK && end == night.EndTimeMilli && int(quality) == night.Quality {
			return false, nil
		}
		doc = existing
	case !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	doc.Meta["schema_version"] = journalSchemaVersion
	doc.Meta["night_id"] = night.ID
	doc.Meta["start_time_milli"] = night.StartTimeMilli
	doc.Meta["end_time_milli"] = night.EndTimeMilli
	doc.Meta["quality"] = night.Quality
	doc.Meta["started_at"] = night.Start().In(j.loc).Format(time.RFC3339)
	doc.Meta["ended_at"] = night.End().In(j.loc).Format(time.RFC3339)

	generated := fmt.Sprintf("- Slept: %s\n- Quality: %s", entry.DurationText, entry.QualityText)
	doc.Body = markdown.ReplaceManagedBlock(doc.Body, journalBlockStart, journalBlockEnd, generated)

	rendered, err := doc.Render()
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create journal dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return false, fmt.Errorf("write journal note: %w", err)
	}
	return true, nil
}
