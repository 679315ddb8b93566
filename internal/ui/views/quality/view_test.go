package quality

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"sleeptracker/internal/modules/sleep/dto"
)

type stubFormatter struct{}

func (stubFormatter) Duration(start, end int64) string { return fmt.Sprintf("%dms", end-start) }
func (stubFormatter) QualityLabel(q int) string         { return fmt.Sprintf("label%d", q) }

func TestArrowKeysClampAndEnterSubmits(t *testing.T) {
	t.Parallel()
	m := New(stubFormatter{})
	m.Open(dto.NightOutput{ID: 4, StartTimeMilli: 0, EndTimeMilli: 500, Quality: -1})
	if m.Cursor() != 3 {
		t.Fatalf("unrated night should preselect 3, got %d", m.Cursor())
	}
	for i := 0; i < 10; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	if m.Cursor() != 5 {
		t.Fatalf("cursor must clamp at 5, got %d", m.Cursor())
	}
	for i := 0; i < 10; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	}
	if m.Cursor() != 0 {
		t.Fatalf("cursor must clamp at 0, got %d", m.Cursor())
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if msg := cmd(); msg != (SubmitMsg{NightID: 4, Quality: 0}) {
		t.Fatalf("submit = %#v", msg)
	}
}

func TestDigitSubmitsDirectly(t *testing.T) {
	t.Parallel()
	m := New(stubFormatter{})
	m.Open(dto.NightOutput{ID: 9, Quality: 1})
	if m.Cursor() != 1 {
		t.Fatalf("rated night should preselect its rating")
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	if msg := cmd(); msg != (SubmitMsg{NightID: 9, Quality: 4}) {
		t.Fatalf("digit submit = %#v", msg)
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(CancelMsg); !ok {
		t.Fatalf("esc must cancel")
	}
}

func TestViewListsAllRatings(t *testing.T) {
	t.Parallel()
	m := New(stubFormatter{})
	m.Open(dto.NightOutput{ID: 1, StartTimeMilli: 0, EndTimeMilli: 42})
	view := m.View()
	for q := 0; q <= 5; q++ {
		if !strings.Contains(view, fmt.Sprintf("label%d", q)) {
			t.Fatalf("view missing label%d", q)
		}
	}
	if !strings.Contains(view, "42ms") {
		t.Fatalf("view missing duration")
	}
}
