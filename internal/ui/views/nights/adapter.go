package nights

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sleeptracker/internal/modules/sleep/dto"
	"sleeptracker/internal/ui/theme"
)

// Icon identifies the picture shown next to a night.
type Icon int

const (
	IconSleep0 Icon = iota
	IconSleep1
	IconSleep2
	IconSleep3
	IconSleep4
	IconSleep5
	IconSleepActive
)

// IconFor maps a rating to its icon. Only the exact values 0 through 5 have
// a numbered icon; everything else, including the unrated -1, is active.
func IconFor(quality int) Icon {
	switch quality {
	case 0:
		return IconSleep0
	case 1:
		return IconSleep1
	case 2:
		return IconSleep2
	case 3:
		return IconSleep3
	case 4:
		return IconSleep4
	case 5:
		return IconSleep5
	default:
		return IconSleepActive
	}
}

func (i Icon) Glyph() string {
	if i < IconSleep0 || i >= IconSleepActive {
		return "z z z"
	}
	filled := int(i)
	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled)
}

func (i Icon) Render() string {
	if i >= IconSleepActive {
		return theme.QualityStyle(-1).Render(i.Glyph())
	}
	return theme.QualityStyle(int(i)).Render(i.Glyph())
}

// Row is what one list position displays.
type Row struct {
	Duration string
	Quality  string
	Icon     Icon
}

type Formatter interface {
	Duration(startMilli, endMilli int64) string
	QualityLabel(quality int) string
}

type rowItem struct {
	night dto.NightOutput
	row   Row
}

func (i rowItem) FilterValue() string { return i.row.Duration + " " + i.row.Quality }

type rowDelegate struct{}

func (rowDelegate) Height() int                         { return 1 }
func (rowDelegate) Spacing() int                        { return 0 }
func (rowDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(rowItem)
	if !ok {
		return
	}
	cursor := "  "
	text := lipgloss.NewStyle().Foreground(theme.Text)
	if index == m.Index() {
		cursor = theme.Hot.Render("> ")
		text = text.Foreground(theme.Lavender).Bold(true)
	}
	fmt.Fprintf(w, "%s%s  %s  %s", cursor, it.row.Icon.Render(), text.Render(it.row.Duration), theme.Muted.Render(it.row.Quality))
}

// Model binds the night history to list rows. Every SetData replaces all
// rows; there is no diffing against the previous sequence.
type Model struct {
	formatter Formatter
	nights    []dto.NightOutput
	list      list.Model
}

func New(formatter Formatter) Model {
	l := list.New(nil, rowDelegate{}, 0, 0)
	l.Title = "Nights"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return Model{formatter: formatter, list: l}
}

func (m *Model) SetData(nights []dto.NightOutput) tea.Cmd {
	m.nights = append([]dto.NightOutput(nil), nights...)
	items := make([]list.Item, len(m.nights))
	for i, n := range m.nights {
		items[i] = rowItem{night: n, row: m.Bind(i)}
	}
	return m.list.SetItems(items)
}

func (m Model) ItemCount() int { return len(m.nights) }

func (m Model) Bind(position int) Row {
	n := m.nights[position]
	return Row{
		Duration: m.formatter.Duration(n.StartTimeMilli, n.EndTimeMilli),
		Quality:  m.formatter.QualityLabel(n.Quality),
		Icon:     IconFor(n.Quality),
	}
}

func (m Model) Selected() (dto.NightOutput, bool) {
	if it, ok := m.list.SelectedItem().(rowItem); ok {
		return it.night, true
	}
	return dto.NightOutput{}, false
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.nights) == 0 {
		return theme.Title.Render("Nights") + "\n\n" + theme.Muted.Render("No nights recorded yet.")
	}
	return m.list.View()
}
