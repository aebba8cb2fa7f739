package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/glucoffee/internal/ledger"
)

// FormatHistory renders day groups followed by the period statistics.
func FormatHistory(period ledger.Period, days []ledger.DayGroup, stats ledger.Stats, dailyLimit float64, now time.Time) string {
	var b strings.Builder

	if len(days) == 0 {
		b.WriteString(Dim("No coffee logged in this period.") + "\n")
		return RenderBox("History: "+period.Label(), b.String())
	}

	for i, d := range days {
		if i > 0 {
			b.WriteString("\n")
		}
		label := d.Date
		if t, err := time.ParseInLocation("2006-01-02", d.Date, now.Location()); err == nil {
			label = HumanDate(t, now)
		}
		fmt.Fprintf(&b, "%s  %s  %s\n", Bold(label), Grams(d.Total), BandIndicator(d.Band))

		rows := make([][]string, 0, len(d.Entries))
		for _, e := range d.Entries {
			rows = append(rows, entryRow(e))
		}
		b.WriteString(RenderTable(entryHeaders, rows))
	}

	b.WriteString("\n")
	b.WriteString(FormatStats(stats, dailyLimit))
	return RenderBox("History: "+period.Label(), b.String())
}

// FormatStats renders the period summary lines.
func FormatStats(s ledger.Stats, dailyLimit float64) string {
	var b strings.Builder
	b.WriteString(Header("Summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Entries               %d\n", s.Entries)
	fmt.Fprintf(&b, "Total sugar           %s\n", Grams(s.TotalGrams))
	fmt.Fprintf(&b, "Active days           %d\n", s.ActiveDays)
	fmt.Fprintf(&b, "Average / active day  %s\n", Grams(s.AveragePerActiveDay))
	over := fmt.Sprintf("%d", s.DaysOverLimit)
	if s.DaysOverLimit > 0 {
		over = StyleRed.Render(over)
	}
	fmt.Fprintf(&b, "Days over %.0f g        %s\n", dailyLimit, over)
	if s.Skipped > 0 {
		b.WriteString(Dim(fmt.Sprintf("%d malformed entries skipped", s.Skipped)) + "\n")
	}
	return b.String()
}
