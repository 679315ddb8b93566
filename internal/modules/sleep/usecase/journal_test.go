package usecase_test

import (
	"context"
	"testing"
	"time"

	sleepout "sleeptracker/internal/modules/sleep/adapter/out"
	"sleeptracker/internal/modules/sleep/domain"
	"sleeptracker/internal/modules/sleep/dto"
	"sleeptracker/internal/modules/sleep/service"
	"sleeptracker/internal/modules/sleep/usecase"
)

func TestJournalExportIsIdempotent(t *testing.T) {
	t.Parallel()
	store := sleepout.NewMemoryNightStore()
	base := time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC)
	seedNights(t, store, base, base.Add(24*time.Hour))
	if _, err := store.Insert(context.Background(), domain.NewNight(base.Add(48*time.Hour).UnixMilli())); err != nil {
		t.Fatalf("seed in-progress: %v", err)
	}
	svc := service.NewNightService(&stepClock{now: base}, store)
	dir := t.TempDir()
	exporter := usecase.NewJournalInteractor(svc, countingFormatter{}, sleepout.NewMarkdownJournal(time.UTC), dir, nopLogger())

	first, err := exporter.Export(context.Background(), dto.ExportInput{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if first.Written != 2 || first.Unchanged != 0 || first.Skipped != 1 || first.Dir != dir {
		t.Fatalf("first export = %+v", first)
	}

	second, err := exporter.Export(context.Background(), dto.ExportInput{Dir: dir})
	if err != nil {
		t.Fatalf("export again: %v", err)
	}
	if second.Written != 0 || second.Unchanged != 2 || second.Skipped != 1 {
		t.Fatalf("second export = %+v", second)
	}

	h := usecase.NewHistoryInteractor(svc)
	if _, err := h.Rate(context.Background(), dto.RateInput{NightID: 1, Quality: 2}); err != nil {
		t.Fatalf("rate: %v", err)
	}
	third, err := exporter.Export(context.Background(), dto.ExportInput{Dir: dir})
	if err != nil {
		t.Fatalf("export after rating: %v", err)
	}
	if third.Written != 1 || third.Unchanged != 1 {
		t.Fatalf("third export = %+v", third)
	}
}

func TestJournalExportRequiresDir(t *testing.T) {
	t.Parallel()
	svc := service.NewNightService(&stepClock{}, sleepout.NewMemoryNightStore())
	exporter := usecase.NewJournalInteractor(svc, countingFormatter{}, sleepout.NewMarkdownJournal(time.UTC), "", nopLogger())
	if _, err := exporter.Export(context.Background(), dto.ExportInput{}); err == nil {
		t.Fatalf("expected error without a directory")
	}
}
