package in

import (
	"context"
	"time"

	"sleeptracker/internal/modules/sleep/dto"
	sleepin "sleeptracker/internal/modules/sleep/port/in"
	apperrors "sleeptracker/internal/platform/errors"
)

type CLIHandler struct {
	tracker  sleepin.Tracker
	history  sleepin.History
	rater    sleepin.QualityRater
	exporter sleepin.JournalExporter
}

func NewCLIHandler(tracker sleepin.Tracker, history sleepin.History, rater sleepin.QualityRater, exporter sleepin.JournalExporter) CLIHandler {
	return CLIHandler{tracker: tracker, history: history, rater: rater, exporter: exporter}
}

func (h CLIHandler) Start(ctx context.Context) (dto.NightOutput, error) {
	if err := h.tracker.StartTracking(ctx); err != nil {
		return dto.NightOutput{}, err
	}
	state := h.tracker.Snapshot()
	if state.Tonight == nil {
		return dto.NightOutput{}, apperrors.ErrNoNightInProgress
	}
	return *state.Tonight, nil
}

// Stop ends tonight and returns it. Unlike the tracker itself, it reports
// ErrNoNightInProgress when there is nothing to stop.
func (h CLIHandler) Stop(ctx context.Context) (dto.NightOutput, error) {
	if err := h.tracker.Flush(ctx); err != nil {
		return dto.NightOutput{}, err
	}
	if h.tracker.Snapshot().Tonight == nil {
		return dto.NightOutput{}, apperrors.ErrNoNightInProgress
	}
	if err := h.tracker.StopTracking(ctx); err != nil {
		return dto.NightOutput{}, err
	}
	stopped := h.tracker.Snapshot().NavigateToQuality
	h.tracker.DoneNavigating()
	if stopped == nil {
		return dto.NightOutput{}, apperrors.ErrNoNightInProgress
	}
	return *stopped, nil
}

func (h CLIHandler) Rate(ctx context.Context, nightID int64, quality int) (dto.NightOutput, error) {
	return h.rater.Rate(ctx, dto.RateInput{NightID: nightID, Quality: quality})
}

func (h CLIHandler) List(ctx context.Context, since time.Time, limit int) ([]dto.NightOutput, error) {
	return h.history.List(ctx, dto.ListInput{Since: since, Limit: limit})
}

func (h CLIHandler) Summary(ctx context.Context) (string, error) {
	if err := h.tracker.Flush(ctx); err != nil {
		return "", err
	}
	return h.tracker.Snapshot().NightsSummary, nil
}

func (h CLIHandler) Clear(ctx context.Context) (dto.ClearOutput, error) {
	nights, err := h.history.List(ctx, dto.ListInput{})
	if err != nil {
		return dto.ClearOutput{}, err
	}
	if err := h.tracker.Clear(ctx); err != nil {
		return dto.ClearOutput{}, err
	}
	h.tracker.DoneShowingSnackbar()
	return dto.ClearOutput{Deleted: int64(len(nights))}, nil
}

func (h CLIHandler) Export(ctx context.Context, dir string) (dto.ExportOutput, error) {
	return h.exporter.Export(ctx, dto.ExportInput{Dir: dir})
}
