package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sleeptracker/internal/ui/theme"
)

const SnackbarTimeout = 3 * time.Second

// SnackbarExpiredMsg hides the snackbar shown with the matching sequence
// number. Older timers are ignored.
type SnackbarExpiredMsg struct{ Seq int }

// Snackbar is a transient one-line notice at the bottom of the screen.
type Snackbar struct {
	text string
	seq  int
}

func (s Snackbar) Visible() bool { return s.text != "" }
func (s Snackbar) Text() string  { return s.text }

// Show displays text and returns the command that hides it after the
// timeout.
func (s *Snackbar) Show(text string) tea.Cmd {
	s.seq++
	s.text = text
	seq := s.seq
	return tea.Tick(SnackbarTimeout, func(time.Time) tea.Msg {
		return SnackbarExpiredMsg{Seq: seq}
	})
}

func (s Snackbar) Update(msg tea.Msg) Snackbar {
	if msg, ok := msg.(SnackbarExpiredMsg); ok && msg.Seq == s.seq {
		s.text = ""
	}
	return s
}

func (s Snackbar) View() string {
	if s.text == "" {
		return ""
	}
	return theme.Snackbar.Render(s.text)
}
