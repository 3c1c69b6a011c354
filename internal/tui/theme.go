package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The navigator must remain readable on both light and dark terminal
// backgrounds, so every color is an AdaptiveColor pair.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func init() {
	lipgloss.SetColorProfile(termenv.ColorProfile())
}

var (
	colorMuted      = ac("240", "243")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorAccent     = ac("27", "75")
	colorDone       = ac("28", "40")
	colorError      = ac("124", "203")
	colorOverdue    = ac("124", "203")

	styleHeader = lipgloss.NewStyle().Bold(true)
	styleLevel  = lipgloss.NewStyle().Foreground(colorMuted)
	styleLevelActive = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)
	styleSelected = lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleDone    = lipgloss.NewStyle().Foreground(colorDone)
	styleError   = lipgloss.NewStyle().Foreground(colorError)
	styleOverdue = lipgloss.NewStyle().Foreground(colorOverdue)
	styleModal   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)
	styleButton = lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted)
	styleButtonActive = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(colorSelectedFg).
				Background(colorSelectedBg).
				Bold(true)
)
