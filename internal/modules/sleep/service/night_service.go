package service

import (
	"context"
	"errors"
	"fmt"

	"sleeptracker/internal/modules/sleep/domain"
	sleepout "sleeptracker/internal/modules/sleep/port/out"
	"sleeptracker/internal/platform/clock"
	apperrors "sleeptracker/internal/platform/errors"
)

// NightService applies night lifecycle rules on top of the store.
type NightService struct {
	clock clock.Clock
	store sleepout.NightStore
}

func NewNightService(clock clock.Clock, store sleepout.NightStore) *NightService {
	return &NightService{clock: clock, store: store}
}

// Begin persists a new in-progress night starting now.
func (s *NightService) Begin(ctx context.Context) (domain.Night, error) {
	night, err := s.store.Insert(ctx, domain.NewNight(clock.NowMilli(s.clock)))
	if err != nil {
		return domain.Night{}, fmt.Errorf("insert night: %w", err)
	}
	return night, nil
}

// Tonight returns the latest night if it is still in progress.
func (s *NightService) Tonight(ctx context.Context) (domain.Night, bool, error) {
	night, err := s.store.Latest(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.Night{}, false, nil
	}
	if err != nil {
		return domain.Night{}, false, fmt.Errorf("load latest night: %w", err)
	}
	if !night.InProgress() {
		return domain.Night{}, false, nil
	}
	return night, true, nil
}

// Finish ends night now and persists it. The stored record is re-read so
// fields written since night was loaded are kept.
func (s *NightService) Finish(ctx context.Context, night domain.Night) (domain.Night, error) {
	cur, err := s.store.Get(ctx, night.ID)
	if err != nil {
		return domain.Night{}, fmt.Errorf("load night %d: %w", night.ID, err)
	}
	done := cur.Complete(clock.NowMilli(s.clock))
	if err := s.store.Update(ctx, done); err != nil {
		return domain.Night{}, fmt.Errorf("update night %d: %w", night.ID, err)
	}
	return done, nil
}

// Rate sets the quality of a completed night. Nights still in progress are
// rejected with ErrNightInProgress.
func (s *NightService) Rate(ctx context.Context, id int64, quality int) (domain.Night, error) {
	if !domain.ValidQuality(quality) {
		return domain.Night{}, fmt.Errorf("%w: got %d", apperrors.ErrInvalidQuality, quality)
	}
	night, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Night{}, fmt.Errorf("load night %d: %w", id, err)
	}
	if night.InProgress() {
		return domain.Night{}, fmt.Errorf("rate night %d: %w", id, apperrors.ErrNightInProgress)
	}
	rated, err := night.Rate(quality)
	if err != nil {
		return domain.Night{}, err
	}
	if err := s.store.Update(ctx, rated); err != nil {
		return domain.Night{}, fmt.Errorf("update night %d: %w", id, err)
	}
	return rated, nil
}

// LatestCompleted returns the most recent night that has ended.
func (s *NightService) LatestCompleted(ctx context.Context) (domain.Night, error) {
	nights, err := s.History(ctx)
	if err != nil {
		return domain.Night{}, err
	}
	for _, n := range nights {
		if !n.InProgress() {
			return n, nil
		}
	}
	return domain.Night{}, fmt.Errorf("no completed night: %w", apperrors.ErrNotFound)
}

func (s *NightService) Latest(ctx context.Context) (domain.Night, error) {
	night, err := s.store.Latest(ctx)
	if err != nil {
		return domain.Night{}, fmt.Errorf("load latest night: %w", err)
	}
	return night, nil
}

func (s *NightService) History(ctx context.Context) ([]domain.Night, error) {
	nights, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list nights: %w", err)
	}
	return nights, nil
}

func (s *NightService) Clear(ctx context.Context) (int64, error) {
	n, err := s.store.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear nights: %w", err)
	}
	return n, nil
}

func (s *NightService) Watch(fn func()) func() {
	return s.store.Watch(fn)
}
