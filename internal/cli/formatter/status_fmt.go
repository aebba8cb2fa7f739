package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/glucoffee/internal/app"
	"github.com/alexanderramin/glucoffee/internal/domain"
)

const quotaBarWidth = 20

// FormatStatus renders the dashboard: greeting, FINDRISC freshness and
// today's quota.
func FormatStatus(profile domain.UserProfile, assessment app.AssessmentStatus, today app.TodayView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi, %s\n\n", Bold(profile.Name))
	b.WriteString(formatAssessmentLine(assessment))
	b.WriteString("\n\n")
	b.WriteString(formatQuota(today))

	return RenderBox("GluCoffee", b.String())
}

func formatAssessmentLine(st app.AssessmentStatus) string {
	switch st.State {
	case domain.AssessmentNotTaken:
		return StyleYellow.Render("FINDRISC not taken yet.") + Dim(" Run `glucoffee findrisc`.")
	case domain.AssessmentStale:
		return fmt.Sprintf("FINDRISC %d/26 %s  %s",
			*st.Assessment.Score, RiskIndicator(st.Assessment.RiskLevel),
			StyleYellow.Render(fmt.Sprintf("(%d days old, please retake)", st.DaysSince)))
	default:
		return fmt.Sprintf("FINDRISC %d/26 %s  %s",
			*st.Assessment.Score, RiskIndicator(st.Assessment.RiskLevel),
			Dim(fmt.Sprintf("(valid for %d more days)", st.DaysUntilStale())))
	}
}

func formatQuota(t app.TodayView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Today's sugar  %s / %.0f g  %s\n", Bold(Grams(t.Total)), t.DailyLimit, BandIndicator(t.Band))
	fmt.Fprintf(&b, "%s  %s left\n", RenderQuota(t.QuotaUsedPct, quotaBarWidth), Grams(t.RemainingQuota))
	return b.String()
}
