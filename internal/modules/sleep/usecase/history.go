package usecase

import (
	"context"

	"sleeptracker/internal/modules/sleep/dto"
	sleepin "sleeptracker/internal/modules/sleep/port/in"
	"sleeptracker/internal/modules/sleep/service"
)

type HistoryInteractor struct {
	svc *service.NightService
}

func NewHistoryInteractor(svc *service.NightService) *HistoryInteractor {
	return &HistoryInteractor{svc: svc}
}

var (
	_ sleepin.History      = (*HistoryInteractor)(nil)
	_ sleepin.QualityRater = (*HistoryInteractor)(nil)
)

// List returns nights most recent first, keeping those that started at or
// after input.Since, at most input.Limit of them when Limit is positive.
func (h *HistoryInteractor) List(ctx context.Context, input dto.ListInput) ([]dto.NightOutput, error) {
	nights, err := h.svc.History(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NightOutput, 0, len(nights))
	for _, n := range nights {
		if !input.Since.IsZero() && n.Start().Before(input.Since) {
			continue
		}
		out = append(out, toOutput(n))
		if input.Limit > 0 && len(out) == input.Limit {
			break
		}
	}
	return out, nil
}

func (h *HistoryInteractor) Latest(ctx context.Context) (dto.NightOutput, error) {
	night, err := h.svc.Latest(ctx)
	if err != nil {
		return dto.NightOutput{}, err
	}
	return toOutput(night), nil
}

// Rate sets the quality of a night; NightID 0 selects the latest completed
// night.
func (h *HistoryInteractor) Rate(ctx context.Context, input dto.RateInput) (dto.NightOutput, error) {
	id := input.NightID
	if id == 0 {
		latest, err := h.svc.LatestCompleted(ctx)
		if err != nil {
			return dto.NightOutput{}, err
		}
		id = latest.ID
	}
	rated, err := h.svc.Rate(ctx, id, input.Quality)
	if err != nil {
		return dto.NightOutput{}, err
	}
	return toOutput(rated), nil
}
