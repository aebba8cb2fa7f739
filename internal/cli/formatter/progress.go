package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderQuota renders daily quota usage like [████░░░░]  45%. The bar turns
// yellow from 80% and red once the limit is reached.
func RenderQuota(usedPct float64, width int) string {
	if width < 2 {
		width = 2
	}
	frac := usedPct / 100
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	filled := int(frac * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case usedPct >= 100:
		style = StyleRed
	case usedPct >= 80:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), usedPct)
}
