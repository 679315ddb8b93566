package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"sleeptracker/internal/modules/sleep/dto"
	sleepin "sleeptracker/internal/modules/sleep/port/in"
	sleepout "sleeptracker/internal/modules/sleep/port/out"
	"sleeptracker/internal/modules/sleep/service"
)

var _ sleepin.JournalExporter = (*JournalInteractor)(nil)

type JournalInteractor struct {
	svc        *service.NightService
	formatter  sleepout.SummaryFormatter
	writer     sleepout.JournalWriter
	defaultDir string
	logger     zerolog.Logger
}

func NewJournalInteractor(svc *service.NightService, formatter sleepout.SummaryFormatter, writer sleepout.JournalWriter, defaultDir string, logger zerolog.Logger) *JournalInteractor {
	return &JournalInteractor{svc: svc, formatter: formatter, writer: writer, defaultDir: defaultDir, logger: logger}
}

// Export writes one note per completed night. Nights still in progress are
// skipped and notes that already match the store are left untouched.
func (j *JournalInteractor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	dir := input.Dir
	if dir == "" {
		dir = j.defaultDir
	}
	if dir == "" {
		return dto.ExportOutput{}, fmt.Errorf("journal directory is required")
	}
	nights, err := j.svc.History(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}

	out := dto.ExportOutput{Dir: dir}
	for _, n := range nights {
		if n.InProgress() {
			out.Skipped++
			continue
		}
		night := toOutput(n)
		entry := dto.JournalEntry{
			Night:        night,
			DurationText: j.formatter.Duration(night.StartTimeMilli, night.EndTimeMilli),
			QualityText:  j.formatter.QualityLabel(night.Quality),
		}
		changed, err := j.writer.WriteNight(ctx, dir, entry)
		if err != nil {
			return out, fmt.Errorf("write night %d: %w", night.ID, err)
		}
		if changed {
			out.Written++
		} else {
			out.Unchanged++
		}
	}
	j.logger.Info().Str("dir", dir).Int("written", out.Written).Int("unchanged", out.Unchanged).Int("skipped", out.Skipped).Msg("journal exported")
	return out, nil
}
