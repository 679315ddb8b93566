package out

import (
	"context"

	"sleeptracker/internal/modules/sleep/domain"
	"sleeptracker/internal/modules/sleep/dto"
)

type NightStore interface {
	Insert(ctx context.Context, night domain.Night) (domain.Night, error)
	Update(ctx context.Context, night domain.Night) error
	Get(ctx context.Context, id int64) (domain.Night, error)
	// Latest returns the most recently created night.
	Latest(ctx context.Context) (domain.Night, error)
	// List returns every night, most recent first.
	List(ctx context.Context) ([]domain.Night, error)
	Clear(ctx context.Context) (int64, error)
	// Watch registers fn to run after every committed write.
	Watch(fn func()) (cancel func())
}

type SummaryFormatter interface {
	FormatNights(nights []dto.NightOutput) string
	Duration(startMilli, endMilli int64) string
	QualityLabel(quality int) string
}

type JournalWriter interface {
	// WriteNight reports whether the note on disk changed.
	WriteNight(ctx context.Context, dir string, entry dto.JournalEntry) (bool, error)
}
