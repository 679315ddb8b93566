package in

import (
	"context"

	"sleeptracker/internal/modules/sleep/dto"
)

// Tracker owns the state of the tracking screen. Operations run one at a
// time in call order.
type Tracker interface {
	StartTracking(ctx context.Context) error
	StopTracking(ctx context.Context) error
	Clear(ctx context.Context) error
	DoneNavigating()
	DoneShowingSnackbar()
	Snapshot() dto.TrackerState
	Subscribe(fn func()) (cancel func())
	// Flush waits until every operation queued so far has finished.
	Flush(ctx context.Context) error
	Close()
}

type History interface {
	List(ctx context.Context, input dto.ListInput) ([]dto.NightOutput, error)
	Latest(ctx context.Context) (dto.NightOutput, error)
}

type QualityRater interface {
	Rate(ctx context.Context, input dto.RateInput) (dto.NightOutput, error)
}

type JournalExporter interface {
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
