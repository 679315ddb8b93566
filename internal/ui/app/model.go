package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sleeptracker/internal/modules/sleep/dto"
	"sleeptracker/internal/ui/components"
	"sleeptracker/internal/ui/theme"
	"sleeptracker/internal/ui/views/nights"
	qualityview "sleeptracker/internal/ui/views/quality"
	trackerview "sleeptracker/internal/ui/views/tracker"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type trackerPort interface {
	StartTracking(ctx context.Context) error
	StopTracking(ctx context.Context) error
	Clear(ctx context.Context) error
	DoneNavigating()
	DoneShowingSnackbar()
	Snapshot() dto.TrackerState
	Subscribe(fn func()) func()
	Rate(ctx context.Context, nightID int64, quality int) (dto.NightOutput, error)
}

type exportPort interface {
	Export(ctx context.Context, dir string) (dto.ExportOutput, error)
}

// ─── screens ─────────────────────────────────────────────────────────────────

type screenID int

const (
	screenTracker screenID = iota
	screenQuality
)

// ─── async messages ──────────────────────────────────────────────────────────

type stateChangedMsg struct{}

type opDoneMsg struct {
	op  string
	err error
}

type ratedMsg struct {
	night dto.NightOutput
	err   error
}

type exportedMsg struct {
	out dto.ExportOutput
	err error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	tracker trackerview.KeyMap
	quality qualityview.KeyMap

	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys(tracker trackerview.KeyMap, quality qualityview.KeyMap) keyMap {
	return keyMap{
		tracker: tracker,
		quality: quality,
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.tracker.Start, k.tracker.Stop, k.tracker.Clear, k.Help, k.Quit}
}

func (k keyMap) qualityHelp() []key.Binding {
	return []key.Binding{k.quality.Pick, k.quality.Submit, k.quality.Cancel, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.tracker.Start, k.tracker.Stop, k.tracker.Clear, k.tracker.Rate},
		{k.tracker.Up, k.tracker.PgUp},
		{k.quality.Left, k.quality.Pick, k.quality.Submit, k.quality.Cancel},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

type Options struct {
	ClearedMessage string
	JournalDir     string
}

// Model is the root Bubble Tea model. It routes between the tracker screen
// and the rating screen and turns tracker state changes into messages.
type Model struct {
	tracker trackerPort
	export  exportPort
	feed    *changeFeed
	opts    Options

	trackView   trackerview.Model
	qualityView qualityview.Model

	screen   screenID
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	snackbar components.Snackbar
	status   string
	failed   bool
	width    int
	height   int
}

func NewModel(tracker trackerPort, export exportPort, formatter nights.Formatter, opts Options) Model {
	trackView := trackerview.New(formatter)
	qualityView := qualityview.New(formatter)

	return Model{
		tracker:     tracker,
		export:      export,
		feed:        newChangeFeed(tracker.Subscribe),
		opts:        opts,
		trackView:   trackView,
		qualityView: qualityView,
		screen:      screenTracker,
		keys:        defaultKeys(trackView.Keys(), qualityView.Keys()),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

// Close detaches the model from tracker notifications.
func (m Model) Close() {
	m.feed.Close()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.trackView.Init(),
		func() tea.Msg { return stateChangedMsg{} },
		m.feed.Wait(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// the spinner keeps ticking under the palette and the rating screen
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.trackView, cmd = m.trackView.Update(tick)
		return m, cmd
	}
	if _, isKey := msg.(tea.KeyMsg); isKey && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.palette.SetWidth(min(msg.Width-4, 60))
		m.trackView.SetSize(msg.Width, max(msg.Height-4, 1))
		return m, nil

	case changedMsg:
		cmd := m.applyState()
		return m, tea.Batch(cmd, m.feed.Wait())

	case stateChangedMsg:
		cmd := m.applyState()
		return m, cmd

	case opDoneMsg:
		m.setStatus(msg.op, msg.err)
		return m, nil

	case ratedMsg:
		m.screen = screenTracker
		if msg.err != nil {
			m.setStatus("rating", msg.err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("night %d rated %d", msg.night.ID, msg.night.Quality), nil)
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.setStatus("export", msg.err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("exported %d notes (%d unchanged) to %s", msg.out.Written, msg.out.Unchanged, msg.out.Dir), nil)
		return m, nil

	case components.SnackbarExpiredMsg:
		m.snackbar = m.snackbar.Update(msg)
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		return m, nil

	case trackerview.StartMsg:
		return m, m.opCmd("tracking started", m.tracker.StartTracking)
	case trackerview.StopMsg:
		return m, m.opCmd("tracking stopped", m.tracker.StopTracking)
	case trackerview.ClearMsg:
		return m, m.opCmd("history cleared", m.tracker.Clear)
	case trackerview.RateMsg:
		m.qualityView.Open(msg.Night)
		m.screen = screenQuality
		return m, nil

	case qualityview.SubmitMsg:
		return m, m.rateCmd(msg.NightID, msg.Quality)
	case qualityview.CancelMsg:
		m.screen = screenTracker
		m.setStatus("rating skipped", nil)
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			cmd := m.palette.Open()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch {
	case m.palette.Visible():
		m.palette, cmd = m.palette.Update(msg)
	case m.screen == screenQuality:
		m.qualityView, cmd = m.qualityView.Update(msg)
	default:
		m.trackView, cmd = m.trackView.Update(msg)
	}
	return m, cmd
}

func (m *Model) setStatus(text string, err error) {
	m.failed = err != nil
	if err != nil {
		text += " failed: " + err.Error()
	}
	m.status = text
}

// applyState pulls a snapshot from the tracker and consumes any pending
// one-shot events.
func (m *Model) applyState() tea.Cmd {
	state := m.tracker.Snapshot()
	cmds := []tea.Cmd{m.trackView.SetState(state)}

	if nav := state.NavigateToQuality; nav != nil {
		m.qualityView.Open(*nav)
		m.screen = screenQuality
		m.tracker.DoneNavigating()
	}
	if state.ShowSnackbar {
		cmds = append(cmds, m.snackbar.Show(m.opts.ClearedMessage))
		m.tracker.DoneShowingSnackbar()
	}
	return tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).
		Render(theme.Title.Render("sleeptracker") + theme.Muted.Render("  track my sleep quality"))
	footer := m.renderStatusBar()

	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.FullHelpView(m.keys.FullHelp()))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.screen == screenQuality:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.qualityView.View())
	default:
		content = m.trackView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.failed {
		left = theme.Error.Render(left)
	}
	if m.snackbar.Visible() {
		left = m.snackbar.View() + "  " + left
	}
	bindings := m.keys.ShortHelp()
	if m.screen == screenQuality {
		bindings = m.keys.qualityHelp()
	}
	right := m.help.ShortHelpView(bindings)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "start":
		return m, m.opCmd("tracking started", m.tracker.StartTracking)
	case "stop":
		return m, m.opCmd("tracking stopped", m.tracker.StopTracking)
	case "clear":
		return m, m.opCmd("history cleared", m.tracker.Clear)
	case "rate":
		if len(parts) < 2 {
			m.setStatus("usage: rate <0-5>", nil)
			return m, nil
		}
		q, err := strconv.Atoi(parts[1])
		if err != nil {
			m.setStatus("invalid quality: "+parts[1], nil)
			return m, nil
		}
		return m, m.rateCmd(m.paletteRateTarget(), q)
	case "export":
		return m, m.exportCmd()
	case "quit":
		return m, tea.Quit
	default:
		m.setStatus("unknown command: "+parts[0], nil)
	}
	return m, nil
}

// paletteRateTarget is the highlighted completed night, or 0 to let the
// rater pick the latest completed one.
func (m Model) paletteRateTarget() int64 {
	if night, ok := m.trackView.Selected(); ok && !night.InProgress {
		return night.ID
	}
	return 0
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) opCmd(op string, run func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: op, err: run(context.Background())}
	}
}

func (m Model) rateCmd(nightID int64, quality int) tea.Cmd {
	return func() tea.Msg {
		night, err := m.tracker.Rate(context.Background(), nightID, quality)
		return ratedMsg{night: night, err: err}
	}
}

func (m Model) exportCmd() tea.Cmd {
	return func() tea.Msg {
		if m.export == nil {
			return exportedMsg{err: fmt.Errorf("journal export is not configured")}
		}
		out, err := m.export.Export(context.Background(), m.opts.JournalDir)
		return exportedMsg{out: out, err: err}
	}
}
