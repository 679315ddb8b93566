package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"sleeptracker/internal/modules/sleep/dto"
	"sleeptracker/internal/ui/components"
	qualityview "sleeptracker/internal/ui/views/quality"
	trackerview "sleeptracker/internal/ui/views/tracker"
)

type fakeTracker struct {
	mu          sync.Mutex
	state       dto.TrackerState
	subscriber  func()
	navAcks     int
	snackAcks   int
	started     int
	ratedID     int64
	ratedValue  int
	unsubscribe int
}

func (f *fakeTracker) StartTracking(context.Context) error {
	f.mu.Lock()
	f.started++
	f.mu.Unlock()
	return nil
}
func (f *fakeTracker) StopTracking(context.Context) error { return nil }
func (f *fakeTracker) Clear(context.Context) error        { return fmt.Errorf("disk full") }

func (f *fakeTracker) DoneNavigating() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.navAcks++
	f.state.NavigateToQuality = nil
}

func (f *fakeTracker) DoneShowingSnackbar() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snackAcks++
	f.state.ShowSnackbar = false
}

func (f *fakeTracker) Snapshot() dto.TrackerState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeTracker) Subscribe(fn func()) func() {
	f.subscriber = fn
	return func() { f.unsubscribe++ }
}

func (f *fakeTracker) Rate(_ context.Context, id int64, q int) (dto.NightOutput, error) {
	f.ratedID, f.ratedValue = id, q
	return dto.NightOutput{ID: id, Quality: q}, nil
}

type stubFormatter struct{}

func (stubFormatter) Duration(start, end int64) string { return fmt.Sprintf("%dms", end-start) }
func (stubFormatter) QualityLabel(q int) string         { return fmt.Sprintf("q%d", q) }

func newTestModel(f *fakeTracker) Model {
	m := NewModel(f, nil, stubFormatter{}, Options{ClearedMessage: "All gone"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestNavigationEventOpensRatingScreenOnce(t *testing.T) {
	t.Parallel()
	stopped := dto.NightOutput{ID: 5, StartTimeMilli: 0, EndTimeMilli: 60_000, Quality: -1}
	f := &fakeTracker{state: dto.TrackerState{StartVisible: true, NightsVersion: 2, NavigateToQuality: &stopped}}
	m := newTestModel(f)

	m, _ = update(m, stateChangedMsg{})
	if m.screen != screenQuality || m.qualityView.Night().ID != 5 {
		t.Fatalf("expected rating screen for night 5, got screen %d night %+v", m.screen, m.qualityView.Night())
	}
	if f.navAcks != 1 {
		t.Fatalf("navigation must be acknowledged once, got %d", f.navAcks)
	}

	m, _ = update(m, stateChangedMsg{})
	if f.navAcks != 1 {
		t.Fatalf("acknowledged event must not navigate again")
	}

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("5")})
	if cmd == nil {
		t.Fatalf("digit must submit a rating")
	}
	submit, ok := cmd().(qualityview.SubmitMsg)
	if !ok {
		t.Fatalf("expected submit msg")
	}
	m, cmd = update(m, submit)
	rated := cmd()
	if f.ratedID != 5 || f.ratedValue != 5 {
		t.Fatalf("rate call = %d/%d", f.ratedID, f.ratedValue)
	}
	m, _ = update(m, rated)
	if m.screen != screenTracker || !strings.Contains(m.status, "night 5 rated 5") {
		t.Fatalf("after rating: screen %d status %q", m.screen, m.status)
	}
}

func TestSnackbarShownAndAcknowledged(t *testing.T) {
	t.Parallel()
	f := &fakeTracker{state: dto.TrackerState{StartVisible: true, ShowSnackbar: true, NightsVersion: 3}}
	m := newTestModel(f)

	m, cmd := update(m, stateChangedMsg{})
	if cmd == nil || !m.snackbar.Visible() || m.snackbar.Text() != "All gone" {
		t.Fatalf("snackbar not shown: %+v", m.snackbar)
	}
	if f.snackAcks != 1 {
		t.Fatalf("snackbar must be acknowledged, got %d", f.snackAcks)
	}
	if !strings.Contains(m.View(), "All gone") {
		t.Fatalf("view missing snackbar")
	}
	m, _ = update(m, components.SnackbarExpiredMsg{Seq: 1})
	if m.snackbar.Visible() {
		t.Fatalf("snackbar must hide after expiry")
	}
}

func TestTrackerActionsReportStatus(t *testing.T) {
	t.Parallel()
	f := &fakeTracker{state: dto.TrackerState{StartVisible: true, ClearVisible: true, NightsVersion: 1}}
	m := newTestModel(f)
	m, _ = update(m, stateChangedMsg{})

	m, cmd := update(m, trackerview.StartMsg{})
	m, _ = update(m, cmd())
	if f.started != 1 || m.status != "tracking started" {
		t.Fatalf("start: %d %q", f.started, m.status)
	}

	m, cmd = update(m, trackerview.ClearMsg{})
	m, _ = update(m, cmd())
	if !m.failed || !strings.Contains(m.status, "history cleared failed: disk full") {
		t.Fatalf("clear error not surfaced: %q", m.status)
	}
}

func TestPaletteCommands(t *testing.T) {
	t.Parallel()
	f := &fakeTracker{state: dto.TrackerState{StartVisible: true}}
	m := newTestModel(f)

	m, cmd := update(m, components.PaletteSubmitMsg{Input: "rate 3"})
	m, _ = update(m, cmd())
	if f.ratedID != 0 || f.ratedValue != 3 {
		t.Fatalf("palette rate = %d/%d", f.ratedID, f.ratedValue)
	}

	m, _ = update(m, components.PaletteSubmitMsg{Input: "rate x"})
	if !strings.HasPrefix(m.status, "invalid quality") {
		t.Fatalf("status = %q", m.status)
	}

	m, cmd = update(m, components.PaletteSubmitMsg{Input: "export"})
	m, _ = update(m, cmd())
	if !strings.Contains(m.status, "not configured") {
		t.Fatalf("export without port: %q", m.status)
	}

	_, _ = update(m, components.PaletteSubmitMsg{Input: "dance"})
}

func TestPaletteRateTargetsSelectedNight(t *testing.T) {
	t.Parallel()
	tonight := dto.NightOutput{ID: 8, StartTimeMilli: 9_000, EndTimeMilli: 9_000, Quality: -1, InProgress: true}
	f := &fakeTracker{state: dto.TrackerState{
		StopVisible:   true,
		Tonight:       &tonight,
		NightsVersion: 1,
		Nights: []dto.NightOutput{
			tonight,
			{ID: 7, StartTimeMilli: 5_000, EndTimeMilli: 8_000, Quality: -1},
			{ID: 6, StartTimeMilli: 1_000, EndTimeMilli: 4_000, Quality: 2},
		},
	}}
	m := newTestModel(f)
	m, _ = update(m, stateChangedMsg{})

	m, cmd := update(m, components.PaletteSubmitMsg{Input: "rate 3"})
	m, _ = update(m, cmd())
	if f.ratedID != 0 {
		t.Fatalf("in-progress selection must fall back to the latest completed night, got id %d", f.ratedID)
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd = update(m, components.PaletteSubmitMsg{Input: "rate 4"})
	_, _ = update(m, cmd())
	if f.ratedID != 6 || f.ratedValue != 4 {
		t.Fatalf("palette rate = %d/%d, want night 6", f.ratedID, f.ratedValue)
	}
}

func TestChangeFeedCollapsesAndCloses(t *testing.T) {
	t.Parallel()
	f := &fakeTracker{}
	m := newTestModel(f)

	f.subscriber()
	f.subscriber()
	if msg := m.feed.Wait()(); msg != (changedMsg{}) {
		t.Fatalf("wait = %#v", msg)
	}

	m.Close()
	m.Close()
	if msg := m.feed.Wait()(); msg != nil {
		t.Fatalf("closed feed must return nil, got %#v", msg)
	}
	if f.unsubscribe != 1 {
		t.Fatalf("unsubscribe calls = %d", f.unsubscribe)
	}
}

func TestStateChangesApplyWhilePaletteOpen(t *testing.T) {
	t.Parallel()
	f := &fakeTracker{state: dto.TrackerState{StartVisible: true}}
	m := newTestModel(f)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":")})
	if !m.palette.Visible() {
		t.Fatalf("palette should be open")
	}

	f.mu.Lock()
	f.state.ShowSnackbar = true
	f.state.NightsVersion = 4
	f.mu.Unlock()
	m, cmd := update(m, changedMsg{})
	if cmd == nil {
		t.Fatalf("change must re-arm the feed")
	}
	if f.snackAcks != 1 || !m.snackbar.Visible() {
		t.Fatalf("snackbar not applied under palette: acks=%d", f.snackAcks)
	}
	if !m.palette.Visible() {
		t.Fatalf("palette must stay open")
	}
}
