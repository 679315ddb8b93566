package quality

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sleeptracker/internal/modules/sleep/dto"
	"sleeptracker/internal/ui/theme"
	"sleeptracker/internal/ui/views/nights"
)

const (
	minQuality = 0
	maxQuality = 5
)

// SubmitMsg carries the rating the user picked for a night.
type SubmitMsg struct {
	NightID int64
	Quality int
}

// CancelMsg leaves the night unrated.
type CancelMsg struct{}

type KeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Pick   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

func DefaultKeys() KeyMap {
	return KeyMap{
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "choose")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("←/→", "choose")),
		Pick:   key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5"), key.WithHelp("0-5", "rate")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "skip")),
	}
}

// Model asks how well the user slept during one night.
type Model struct {
	keys      KeyMap
	formatter nights.Formatter
	night     dto.NightOutput
	cursor    int
}

func New(formatter nights.Formatter) Model {
	return Model{keys: DefaultKeys(), formatter: formatter, cursor: 3}
}

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Night() dto.NightOutput { return m.night }

// Open starts rating night, preselecting its current rating when it has one.
func (m *Model) Open(night dto.NightOutput) {
	m.night = night
	if night.Quality >= minQuality && night.Quality <= maxQuality {
		m.cursor = night.Quality
	} else {
		m.cursor = 3
	}
}

func (m Model) Cursor() int { return m.cursor }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Left):
		if m.cursor > minQuality {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Right):
		if m.cursor < maxQuality {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Pick):
		m.cursor = int(keyMsg.String()[0] - '0')
		return m, m.submit()
	case key.Matches(keyMsg, m.keys.Submit):
		return m, m.submit()
	case key.Matches(keyMsg, m.keys.Cancel):
		return m, func() tea.Msg { return CancelMsg{} }
	}
	return m, nil
}

func (m Model) submit() tea.Cmd {
	out := SubmitMsg{NightID: m.night.ID, Quality: m.cursor}
	return func() tea.Msg { return out }
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("How was your sleep?"))
	sb.WriteString("\n")
	sb.WriteString(theme.Muted.Render(m.formatter.Duration(m.night.StartTimeMilli, m.night.EndTimeMilli)))
	sb.WriteString("\n\n")

	options := make([]string, 0, maxQuality-minQuality+1)
	for q := minQuality; q <= maxQuality; q++ {
		icon := nights.IconFor(q)
		cell := lipgloss.JoinVertical(lipgloss.Center, icon.Render(), m.formatter.QualityLabel(q))
		style := lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.HiddenBorder())
		if q == m.cursor {
			style = style.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(theme.Lavender)
		}
		options = append(options, style.Render(cell))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, options...))
	return sb.String()
}
