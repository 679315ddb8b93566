package in

import (
	"context"

	"sleeptracker/internal/modules/sleep/dto"
	sleepin "sleeptracker/internal/modules/sleep/port/in"
)

// TUIHandler exposes the tracker and the rating use case to the terminal UI.
type TUIHandler struct {
	tracker sleepin.Tracker
	rater   sleepin.QualityRater
}

func NewTUIHandler(tracker sleepin.Tracker, rater sleepin.QualityRater) TUIHandler {
	return TUIHandler{tracker: tracker, rater: rater}
}

func (h TUIHandler) StartTracking(ctx context.Context) error { return h.tracker.StartTracking(ctx) }
func (h TUIHandler) StopTracking(ctx context.Context) error  { return h.tracker.StopTracking(ctx) }
func (h TUIHandler) Clear(ctx context.Context) error         { return h.tracker.Clear(ctx) }
func (h TUIHandler) DoneNavigating()                         { h.tracker.DoneNavigating() }
func (h TUIHandler) DoneShowingSnackbar()                    { h.tracker.DoneShowingSnackbar() }
func (h TUIHandler) Snapshot() dto.TrackerState              { return h.tracker.Snapshot() }
func (h TUIHandler) Subscribe(fn func()) func()              { return h.tracker.Subscribe(fn) }

func (h TUIHandler) Rate(ctx context.Context, nightID int64, quality int) (dto.NightOutput, error) {
	return h.rater.Rate(ctx, dto.RateInput{NightID: nightID, Quality: quality})
}
