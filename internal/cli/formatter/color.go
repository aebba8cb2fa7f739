package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/glucoffee/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#d3869b")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleOrange = lipgloss.NewStyle().Foreground(ColorOrange)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RiskColor returns the style for a FINDRISC tier.
func RiskColor(level domain.RiskLevel) lipgloss.Style {
	switch level {
	case domain.RiskLow:
		return StyleGreen
	case domain.RiskSlightlyElevated:
		return StyleBlue
	case domain.RiskModerate:
		return StyleYellow
	case domain.RiskHigh:
		return StyleOrange
	case domain.RiskVeryHigh:
		return StyleRed
	default:
		return StyleDim
	}
}

// RiskIndicator returns a colored tier label such as "● HIGH".
func RiskIndicator(level domain.RiskLevel) string {
	return RiskColor(level).Render("● " + strings.ToUpper(level.Label()))
}

// BandIndicator returns the colored status for a daily sugar total.
func BandIndicator(band domain.SugarBand) string {
	switch band {
	case domain.BandSafe:
		return StyleGreen.Render("✔ Safe")
	case domain.BandApproaching:
		return StyleYellow.Render("▲ Approaching limit")
	case domain.BandExceeded:
		return StyleRed.Render("✖ Over limit")
	default:
		return StyleDim.Render(string(band))
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
