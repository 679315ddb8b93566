package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSnackbarIgnoresStaleTimers(t *testing.T) {
	t.Parallel()
	var s Snackbar
	if cmd := s.Show("first"); cmd == nil {
		t.Fatalf("show must return a timer command")
	}
	s.Show("second")

	s = s.Update(SnackbarExpiredMsg{Seq: 1})
	if !s.Visible() || s.Text() != "second" {
		t.Fatalf("stale timer hid the snackbar: %q", s.Text())
	}
	s = s.Update(SnackbarExpiredMsg{Seq: 2})
	if s.Visible() || s.View() != "" {
		t.Fatalf("current timer must hide the snackbar")
	}
}

func TestPaletteSubmitAndCancel(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	p.Open()
	for _, r := range "rate 4" {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if got := p.Matching(); len(got) != 1 || got[0] != "rate <0-5>" {
		t.Fatalf("matching = %v", got)
	}
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() || cmd == nil {
		t.Fatalf("enter must close the palette and emit a command")
	}
	if msg, ok := cmd().(PaletteSubmitMsg); !ok || msg.Input != "rate 4" {
		t.Fatalf("submit msg = %#v", cmd())
	}

	p.Open()
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatalf("esc must close the palette")
	}
	if _, ok := cmd().(PaletteCancelMsg); !ok {
		t.Fatalf("esc must emit cancel")
	}
}
