package usecase

import (
	"sleeptracker/internal/modules/sleep/domain"
	"sleeptracker/internal/modules/sleep/dto"
)

func toOutput(n domain.Night) dto.NightOutput {
	return dto.NightOutput{
		ID:             n.ID,
		StartTimeMilli: n.StartTimeMilli,
		EndTimeMilli:   n.EndTimeMilli,
		Quality:        n.Quality,
		InProgress:     n.InProgress(),
	}
}

func toOutputs(nights []domain.Night) []dto.NightOutput {
	out := make([]dto.NightOutput, 0, len(nights))
	for _, n := range nights {
		out = append(out, toOutput(n))
	}
	return out
}
