package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/glucoffee/internal/advice"
	"github.com/alexanderramin/glucoffee/internal/app"
)

const disclaimer = "This advice is educational and does not replace a consultation with a doctor."

// FormatAnalysis renders the profile snapshot and the recommendation.
func FormatAnalysis(resp *app.AnalysisResponse) string {
	var b strings.Builder

	b.WriteString(Header("Health snapshot"))
	b.WriteString("\n")
	b.WriteString(formatAssessmentLine(resp.Assessment))
	b.WriteString("\n")
	agg := resp.Aggregates
	fmt.Fprintf(&b, "Today %s / %.0f g  %s\n", Bold(Grams(agg.TodayTotal)), agg.DailyLimit, BandIndicator(agg.TodayBand))
	fmt.Fprintf(&b, "%s  %s left\n", RenderQuota(agg.QuotaUsedPct, quotaBarWidth), Grams(agg.RemainingQuota))
	fmt.Fprintf(&b, "%d-day average %s / day\n", agg.WindowDays, Grams(agg.WeeklyAverage))

	if resp.Guidance != "" {
		b.WriteString("\n")
		b.WriteString(StyleYellow.Render(resp.Guidance) + "\n")
	}

	if rec := resp.Recommendation; rec != nil {
		b.WriteString("\n")
		b.WriteString(Header("Recommendation"))
		if rec.Source == advice.SourceGenerated && rec.Model != "" {
			b.WriteString(Dim("  generated by " + rec.Model))
		}
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(rec.Text) + "\n\n")
		b.WriteString(Dim(disclaimer) + "\n")
	}

	warnings(&b, resp.Warnings)
	return RenderBox("Analysis for "+resp.Profile.Name, b.String())
}
