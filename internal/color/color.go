package color

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	Success = lipgloss.NewStyle()
	Warning = lipgloss.NewStyle()
	Error   = lipgloss.NewStyle()
	Fatal   = lipgloss.NewStyle()
	Muted   = lipgloss.NewStyle()

	disabled bool
)

func init() {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		Disable()
		return
	}
	applyStyles()
}

// Initialize sets the background mode the adaptive colors resolve against.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
	applyStyles()
}

// Disable turns all styles into plain text.
func Disable() {
	disabled = true
	lipgloss.SetColorProfile(termenv.Ascii)
	applyStyles()
}

func applyStyles() {
	if disabled {
		Success, Warning, Error, Fatal, Muted = lipgloss.NewStyle(), lipgloss.NewStyle(), lipgloss.NewStyle(), lipgloss.NewStyle(), lipgloss.NewStyle()
		return
	}
	Success = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"})
	Warning = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"})
	Error = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}).Bold(true)
	Fatal = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8250DF", Dark: "#BC8CFF"}).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#8B949E"})
}
