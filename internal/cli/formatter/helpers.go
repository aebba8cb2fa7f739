package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/sugar"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	content = strings.TrimRight(content, "\n")
	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HumanDate returns "Today", "Yesterday" or a short absolute date.
func HumanDate(day, now time.Time) string {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := day.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return day.Format("Mon, Jan 2 2006")
}

// Grams formats a sugar amount.
func Grams(g float64) string {
	return fmt.Sprintf("%.1f g", g)
}

// SizeLabel is the display name of a serving size.
func SizeLabel(s domain.ServingSize) string {
	switch s {
	case domain.SizeLarge:
		return "Large (≈473ml)"
	default:
		return "Regular (≈350ml)"
	}
}

// AdditiveLabels maps stored additive keys to display labels.
func AdditiveLabels(keys []string) string {
	if len(keys) == 0 {
		return Dim("--")
	}
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		if a, ok := sugar.LookupAdditive(k); ok {
			labels = append(labels, a.Label)
			continue
		}
		labels = append(labels, k)
	}
	return strings.Join(labels, ", ")
}

func warnings(b *strings.Builder, ws []string) {
	if len(ws) == 0 {
		return
	}
	b.WriteString("\n")
	for _, w := range ws {
		b.WriteString(StyleYellow.Render("  WARNING: "+w) + "\n")
	}
}
