package advice

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/findrisc"
)

// DeterministicAdvice builds advice directly from the summary without the
// text generator. Used when generation is disabled or fails.
func DeterministicAdvice(s Summary) string {
	var lines []string

	if s.Name != "" {
		lines = append(lines, fmt.Sprintf("Hi %s, here is where you stand.", s.Name))
	}

	if r := s.Risk; r != nil {
		in := findrisc.Interpret(r.Level)
		lines = append(lines, fmt.Sprintf("Your FINDRISC score is %d (%s risk): %s. %s",
			r.Score, r.Level.Label(), in.Incidence, in.Action))
	}

	if c := s.Consumption; c != nil {
		switch c.TodayBand {
		case domain.BandExceeded:
			lines = append(lines, fmt.Sprintf(
				"Today's coffee sugar is %.1f g, %.1f g over the %.0f g limit. Switch to Americano or unsweetened drinks for the rest of the day.",
				c.TodayTotal, c.TodayTotal-c.DailyLimit, c.DailyLimit))
		case domain.BandApproaching:
			lines = append(lines, fmt.Sprintf(
				"You have used %.0f%% of today's quota; only %.1f g remains. Skip toppings and choose a regular size.",
				c.QuotaUsedPct, c.RemainingQuota))
		default:
			lines = append(lines, fmt.Sprintf(
				"Today's coffee sugar is %.1f g, with %.1f g of quota left. Keep it up.",
				c.TodayTotal, c.RemainingQuota))
		}
		if c.WeeklyAverage > c.DailyLimit {
			lines = append(lines, fmt.Sprintf(
				"Your %d-day average of %.1f g/day is above the limit; aim for a few lower-sugar days.",
				c.WindowDays, c.WeeklyAverage))
		}
	}

	if s.Risk == nil {
		lines = append(lines, "Take the FINDRISC test to get a personal risk estimate.")
	}
	if s.Consumption == nil {
		lines = append(lines, "Log your coffee to see how much sugar it adds to your day.")
	}
	return strings.Join(lines, "\n")
}
