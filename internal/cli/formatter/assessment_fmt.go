package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/glucoffee/internal/app"
	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/findrisc"
)

// FormatAssessment renders a FINDRISC result with its interpretation and the
// recorded answers.
func FormatAssessment(st app.AssessmentStatus) string {
	if st.State == domain.AssessmentNotTaken {
		return RenderBox("FINDRISC", "No assessment yet. Run `glucoffee findrisc` to take the test.")
	}

	a := st.Assessment
	var b strings.Builder
	fmt.Fprintf(&b, "Score  %s  %s\n", Bold(fmt.Sprintf("%d / %d", *a.Score, findrisc.MaxScore())), RiskIndicator(a.RiskLevel))
	fmt.Fprintf(&b, "%s\n", st.Interpretation.Incidence)
	fmt.Fprintf(&b, "%s\n\n", RiskColor(a.RiskLevel).Render(st.Interpretation.Action))

	rows := make([][]string, 0, len(findrisc.Questions))
	for _, q := range findrisc.Questions {
		answer, ok := a.RawAnswers[q.Key]
		if !ok {
			answer = Dim("--")
		}
		rows = append(rows, []string{q.Prompt, answer})
	}
	b.WriteString(RenderTable([]string{"QUESTION", "ANSWER"}, rows))

	b.WriteString("\n")
	if st.State == domain.AssessmentStale {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("Taken %d days ago. Results older than %d days should be retaken.", st.DaysSince, st.StaleAfterDays)))
	} else {
		b.WriteString(Dim(fmt.Sprintf("Taken %s. Retake in %d days.", a.LastUpdated.Local().Format("Jan 2, 2006"), st.DaysUntilStale())))
	}
	b.WriteString("\n")

	return RenderBox("FINDRISC", b.String())
}
