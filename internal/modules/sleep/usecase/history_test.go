package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	sleepout "sleeptracker/internal/modules/sleep/adapter/out"
	"sleeptracker/internal/modules/sleep/domain"
	"sleeptracker/internal/modules/sleep/dto"
	"sleeptracker/internal/modules/sleep/service"
	"sleeptracker/internal/modules/sleep/usecase"
	apperrors "sleeptracker/internal/platform/errors"
)

func seedNights(t *testing.T, store *sleepout.MemoryNightStore, starts ...time.Time) {
	t.Helper()
	for _, s := range starts {
		n := domain.NewNight(s.UnixMilli()).Complete(s.Add(8 * time.Hour).UnixMilli())
		if _, err := store.Insert(context.Background(), n); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestHistoryListFiltersAndLimits(t *testing.T) {
	t.Parallel()
	store := sleepout.NewMemoryNightStore()
	base := time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC)
	seedNights(t, store, base, base.Add(24*time.Hour), base.Add(48*time.Hour))
	h := usecase.NewHistoryInteractor(service.NewNightService(&stepClock{now: base}, store))

	all, err := h.List(context.Background(), dto.ListInput{})
	if err != nil || len(all) != 3 || all[0].ID != 3 {
		t.Fatalf("list all = %+v, %v", all, err)
	}
	recent, err := h.List(context.Background(), dto.ListInput{Since: base.Add(24 * time.Hour)})
	if err != nil || len(recent) != 2 {
		t.Fatalf("since filter = %+v, %v", recent, err)
	}
	limited, err := h.List(context.Background(), dto.ListInput{Limit: 1})
	if err != nil || len(limited) != 1 || limited[0].ID != 3 {
		t.Fatalf("limit = %+v, %v", limited, err)
	}
}

func TestRateDefaultsToLatestAndValidates(t *testing.T) {
	t.Parallel()
	store := sleepout.NewMemoryNightStore()
	base := time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC)
	h := usecase.NewHistoryInteractor(service.NewNightService(&stepClock{now: base}, store))

	if _, err := h.Rate(context.Background(), dto.RateInput{Quality: 3}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("rating with no nights should be not found, got %v", err)
	}
	seedNights(t, store, base, base.Add(24*time.Hour))

	rated, err := h.Rate(context.Background(), dto.RateInput{Quality: 5})
	if err != nil || rated.ID != 2 || rated.Quality != 5 {
		t.Fatalf("rate latest = %+v, %v", rated, err)
	}
	rated, err = h.Rate(context.Background(), dto.RateInput{NightID: 1, Quality: 0})
	if err != nil || rated.ID != 1 || rated.Quality != 0 {
		t.Fatalf("rate by id = %+v, %v", rated, err)
	}
	for _, q := range []int{-1, 6} {
		if _, err := h.Rate(context.Background(), dto.RateInput{NightID: 1, Quality: q}); !errors.Is(err, apperrors.ErrInvalidQuality) {
			t.Fatalf("quality %d should be rejected, got %v", q, err)
		}
	}
	latest, err := h.Latest(context.Background())
	if err != nil || latest.Quality != 5 {
		t.Fatalf("latest = %+v, %v", latest, err)
	}
}
