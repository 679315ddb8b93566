package tracker

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"sleeptracker/internal/modules/sleep/dto"
	"sleeptracker/internal/ui/theme"
	"sleeptracker/internal/ui/views/nights"
)

// ─── messages ────────────────────────────────────────────────────────────────

type StartMsg struct{}
type StopMsg struct{}
type ClearMsg struct{}

// RateMsg asks to (re)rate a night picked from the history list.
type RateMsg struct{ Night dto.NightOutput }

// ─── keys ────────────────────────────────────────────────────────────────────

type KeyMap struct {
	Start key.Binding
	Stop  key.Binding
	Clear key.Binding
	Rate  key.Binding
	Up    key.Binding
	Down  key.Binding
	PgUp  key.Binding
	PgDn  key.Binding
}

func DefaultKeys() KeyMap {
	return KeyMap{
		Start: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Stop:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "stop")),
		Clear: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Rate:  key.NewBinding(key.WithKeys("r", "enter"), key.WithHelp("r", "rate night")),
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "select")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↑/↓", "select")),
		PgUp:  key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup/pgdn", "scroll summary")),
		PgDn:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgup/pgdn", "scroll summary")),
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	keys    KeyMap
	state   dto.TrackerState
	loaded  bool
	nights  nights.Model
	summary viewport.Model
	spinner spinner.Model
	now     func() time.Time
	width   int
	height  int
}

func New(formatter nights.Formatter) Model {
	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}

	sp := spinner.New()
	sp.Spinner = spinner.Moon

	return Model{
		keys:    DefaultKeys(),
		nights:  nights.New(formatter),
		summary: vp,
		spinner: sp,
		now:     time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) State() dto.TrackerState { return m.state }

// SetState applies a tracker snapshot. The history list and the summary are
// rebuilt only when the tracker reports a new history.
func (m *Model) SetState(state dto.TrackerState) tea.Cmd {
	var cmd tea.Cmd
	if !m.loaded || state.NightsVersion != m.state.NightsVersion {
		cmd = m.nights.SetData(state.Nights)
		m.summary.SetContent(state.NightsSummary)
	}
	m.state = state
	m.loaded = true
	return cmd
}

func (m Model) ItemCount() int { return m.nights.ItemCount() }

// Selected returns the highlighted night in the history list.
func (m Model) Selected() (dto.NightOutput, bool) { return m.nights.Selected() }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	left := width / 2
	m.nights.SetSize(left, max(height-6, 1))
	m.summary.Width = width - left - 4
	m.summary.Height = max(height-2, 1)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Start):
			if m.state.StartVisible {
				return m, emit(StartMsg{})
			}
			return m, nil
		case key.Matches(msg, m.keys.Stop):
			if m.state.StopVisible {
				return m, emit(StopMsg{})
			}
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			if m.state.ClearVisible {
				return m, emit(ClearMsg{})
			}
			return m, nil
		case key.Matches(msg, m.keys.Rate):
			if night, ok := m.nights.Selected(); ok && !night.InProgress {
				return m, emit(RateMsg{Night: night})
			}
			return m, nil
		case key.Matches(msg, m.keys.PgUp, m.keys.PgDn):
			var cmd tea.Cmd
			m.summary, cmd = m.summary.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.nights, cmd = m.nights.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		button("Start", m.state.StartVisible),
		button("Stop", m.state.StopVisible),
		button("Clear", m.state.ClearVisible),
	)

	left := lipgloss.JoinVertical(lipgloss.Left,
		buttons,
		"",
		m.tonightLine(),
		"",
		m.nights.View(),
	)
	leftPane := lipgloss.NewStyle().Width(m.width / 2).Render(left)
	rightPane := theme.Pane.Width(max(m.width-m.width/2-2, 10)).Render(m.summary.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

func (m Model) tonightLine() string {
	if m.state.Tonight == nil {
		return theme.Muted.Render("Not tracking. Press s to start.")
	}
	started := m.state.Tonight.Start()
	var sb strings.Builder
	sb.WriteString(m.spinner.View())
	sb.WriteString(" ")
	sb.WriteString(theme.Hot.Render("Sleeping"))
	sb.WriteString(theme.Muted.Render(" since " + started.Format("15:04") + " (" + humanize.RelTime(started, m.now(), "ago", "from now") + ")"))
	return sb.String()
}

func button(label string, enabled bool) string {
	if enabled {
		return theme.Button.Render(label)
	}
	return theme.ButtonDisabled.Render(label)
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
