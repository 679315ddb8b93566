package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#11111b")
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")
	Yellow   = lipgloss.Color("#f9e2af")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 1)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Error = lipgloss.NewStyle().Foreground(Red)

	Button = lipgloss.NewStyle().
		Foreground(Base).
		Background(Lavender).
		Padding(0, 2).
		MarginRight(1)
	ButtonDisabled = Button.
			Foreground(Subtext0).
			Background(Surface1)

	Snackbar = lipgloss.NewStyle().
			Foreground(Base).
			Background(Yellow).
			Padding(0, 1)
)

// QualityColors runs from the worst rating (0) to the best (5).
var QualityColors = [6]lipgloss.Color{
	Red,
	lipgloss.Color("#eba0ac"),
	Peach,
	Yellow,
	lipgloss.Color("#94e2d5"),
	Green,
}

// QualityStyle colours a rating; anything outside 0..5 gets the accent.
func QualityStyle(quality int) lipgloss.Style {
	if quality < 0 || quality >= len(QualityColors) {
		return lipgloss.NewStyle().Foreground(Lavender)
	}
	return lipgloss.NewStyle().Foreground(QualityColors[quality])
}
