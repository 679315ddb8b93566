package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"sleeptracker/internal/modules/sleep/domain"
	"sleeptracker/internal/modules/sleep/dto"
	sleepin "sleeptracker/internal/modules/sleep/port/in"
	sleepout "sleeptracker/internal/modules/sleep/port/out"
	"sleeptracker/internal/modules/sleep/service"
	"sleeptracker/internal/platform/observable"
	"sleeptracker/internal/platform/taskqueue"
)

var _ sleepin.Tracker = (*Tracker)(nil)

// Tracker holds the tracking screen state. Writes and refreshes run on its
// own task queue; reads come from observable values and never block.
type Tracker struct {
	svc    *service.NightService
	logger zerolog.Logger
	queue  *taskqueue.Queue

	tonight  *observable.Value[*domain.Night]
	nights   *observable.Value[[]domain.Night]
	navigate *observable.Event[domain.Night]
	snackbar *observable.Flag

	startVisible  observable.Readable[bool]
	stopVisible   observable.Readable[bool]
	clearVisible  observable.Readable[bool]
	nightsSummary observable.Readable[string]

	mu      sync.Mutex
	subs    map[uint64]func()
	nextSub uint64

	unwatch func()
}

// NewTracker starts the task queue and enqueues the initial load of tonight
// and the history.
func NewTracker(ctx context.Context, svc *service.NightService, formatter sleepout.SummaryFormatter, logger zerolog.Logger) *Tracker {
	t := &Tracker{
		svc:      svc,
		logger:   logger.With().Str("component", "tracker").Logger(),
		queue:    taskqueue.New(ctx),
		tonight:  observable.NewValue[*domain.Night](nil),
		nights:   observable.NewValue[[]domain.Night](nil),
		navigate: observable.NewEvent[domain.Night](),
		snackbar: observable.NewFlag(),
		subs:     map[uint64]func(){},
	}
	t.startVisible = observable.Map[*domain.Night](t.tonight, func(n *domain.Night) bool { return n == nil })
	t.stopVisible = observable.Map[*domain.Night](t.tonight, func(n *domain.Night) bool { return n != nil })
	t.clearVisible = observable.Map[[]domain.Night](t.nights, func(ns []domain.Night) bool { return len(ns) > 0 })
	t.nightsSummary = observable.Map[[]domain.Night](t.nights, func(ns []domain.Night) string {
		return formatter.FormatNights(toOutputs(ns))
	})

	t.unwatch = svc.Watch(func() {
		t.queue.Submit(t.refreshNights)
	})
	t.queue.Submit(func(ctx context.Context) error {
		if err := t.resolveTonight(ctx); err != nil {
			t.logger.Error().Err(err).Msg("resolve tonight")
		}
		return t.refreshNights(ctx)
	})
	return t
}

func (t *Tracker) StartVisible() observable.Readable[bool]    { return t.startVisible }
func (t *Tracker) StopVisible() observable.Readable[bool]     { return t.stopVisible }
func (t *Tracker) ClearVisible() observable.Readable[bool]    { return t.clearVisible }
func (t *Tracker) NightsSummary() observable.Readable[string] { return t.nightsSummary }

func (t *Tracker) StartTracking(ctx context.Context) error {
	return t.run(ctx, "start tracking", func(ctx context.Context) error {
		night, err := t.svc.Begin(ctx)
		if err != nil {
			return err
		}
		t.logger.Debug().Int64("night_id", night.ID).Msg("night started")
		return t.resolveTonight(ctx)
	})
}

// StopTracking ends tonight and publishes it as the navigation target. It
// does nothing when no night is in progress.
func (t *Tracker) StopTracking(ctx context.Context) error {
	return t.run(ctx, "stop tracking", func(ctx context.Context) error {
		cur := t.tonight.Get()
		if cur == nil {
			return nil
		}
		done, err := t.svc.Finish(ctx, *cur)
		if err != nil {
			return err
		}
		t.logger.Debug().Int64("night_id", done.ID).Dur("slept", done.Duration()).Msg("night stopped")
		t.navigate.Raise(done)
		t.tonight.Set(nil)
		t.changed()
		return nil
	})
}

func (t *Tracker) Clear(ctx context.Context) error {
	return t.run(ctx, "clear", func(ctx context.Context) error {
		n, err := t.svc.Clear(ctx)
		if err != nil {
			return err
		}
		t.logger.Info().Int64("deleted", n).Msg("nights cleared")
		t.tonight.Set(nil)
		t.snackbar.Raise()
		t.changed()
		return nil
	})
}

func (t *Tracker) DoneNavigating() {
	if _, ok := t.navigate.Consume(); ok {
		t.changed()
	}
}

func (t *Tracker) DoneShowingSnackbar() {
	if t.snackbar.Get() {
		t.snackbar.Ack()
		t.changed()
	}
}

func (t *Tracker) Snapshot() dto.TrackerState {
	state := dto.TrackerState{
		Nights:        toOutputs(t.nights.Get()),
		NightsVersion: t.nights.Version(),
		NightsSummary: t.nightsSummary.Get(),
		StartVisible:  t.startVisible.Get(),
		StopVisible:   t.stopVisible.Get(),
		ClearVisible:  t.clearVisible.Get(),
		ShowSnackbar:  t.snackbar.Get(),
	}
	if cur := t.tonight.Get(); cur != nil {
		out := toOutput(*cur)
		state.Tonight = &out
	}
	if night, ok := t.navigate.Peek(); ok {
		out := toOutput(night)
		state.NavigateToQuality = &out
	}
	return state
}

// Subscribe registers fn to run after any state change, on the goroutine
// that made the change.
func (t *Tracker) Subscribe(fn func()) func() {
	t.mu.Lock()
	id := t.nextSub
	t.nextSub++
	t.subs[id] = fn
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subs, id)
			t.mu.Unlock()
		})
	}
}

func (t *Tracker) Flush(ctx context.Context) error {
	return t.queue.Do(ctx, func(context.Context) error { return nil })
}

// Close stops observing the store and cancels the task queue. Operations
// still waiting to run fail with taskqueue.ErrClosed.
func (t *Tracker) Close() {
	t.unwatch()
	t.queue.Close()
}

func (t *Tracker) run(ctx context.Context, op string, task taskqueue.Task) error {
	err := t.queue.Do(ctx, task)
	if err != nil {
		t.logger.Error().Err(err).Str("op", op).Msg("tracker operation failed")
	}
	return err
}

func (t *Tracker) resolveTonight(ctx context.Context) error {
	night, ok, err := t.svc.Tonight(ctx)
	if err != nil {
		return err
	}
	if ok {
		t.tonight.Set(&night)
	} else {
		t.tonight.Set(nil)
	}
	t.changed()
	return nil
}

func (t *Tracker) refreshNights(ctx context.Context) error {
	nights, err := t.svc.History(ctx)
	if err != nil {
		t.logger.Error().Err(err).Msg("refresh nights")
		return err
	}
	t.nights.Set(nights)
	t.changed()
	return nil
}

func (t *Tracker) changed() {
	t.mu.Lock()
	subs := make([]func(), 0, len(t.subs))
	for _, fn := range t.subs {
		subs = append(subs, fn)
	}
	t.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}
