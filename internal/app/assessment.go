package app

import (
	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/findrisc"
)

// AssessmentStatus is the stored assessment plus its freshness.
type AssessmentStatus struct {
	State          domain.AssessmentState
	Assessment     domain.RiskAssessment
	DaysSince      int
	StaleAfterDays int
	Interpretation findrisc.Interpretation
}

// DaysUntilStale is zero once the assessment has gone stale.
func (s AssessmentStatus) DaysUntilStale() int {
	if s.State != domain.AssessmentValid {
		return 0
	}
	return s.StaleAfterDays - s.DaysSince
}
