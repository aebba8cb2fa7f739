package domain

import "time"

// DefaultStaleAfterDays is the FINDRISC re-test interval.
const DefaultStaleAfterDays = 180

// RiskAssessment is the latest FINDRISC result. Score, RiskLevel and
// LastUpdated are either all present or all absent; RawAnswers maps question
// key to the selected option label.
type RiskAssessment struct {
	Score       *int
	RiskLevel   RiskLevel
	LastUpdated *time.Time
	RawAnswers  map[string]string
}

// EmptyAssessment returns an assessment with no result.
func EmptyAssessment() RiskAssessment {
	return RiskAssessment{RawAnswers: map[string]string{}}
}

// IsTaken reports whether a score has been recorded.
func (a RiskAssessment) IsTaken() bool {
	return a.Score != nil && a.RiskLevel != "" && a.LastUpdated != nil
}

// IsStale reports whether more than staleAfterDays have passed since the last
// submission. An assessment that was never taken is not stale.
func (a RiskAssessment) IsStale(now time.Time, staleAfterDays int) bool {
	if !a.IsTaken() {
		return false
	}
	return now.Sub(*a.LastUpdated) > time.Duration(staleAfterDays)*24*time.Hour
}

// DaysSince returns whole days elapsed since the last submission, or -1.
func (a RiskAssessment) DaysSince(now time.Time) int {
	if a.LastUpdated == nil {
		return -1
	}
	return int(now.Sub(*a.LastUpdated).Hours() / 24)
}

// State classifies the assessment for prompting.
func (a RiskAssessment) State(now time.Time, staleAfterDays int) AssessmentState {
	switch {
	case !a.IsTaken():
		return AssessmentNotTaken
	case a.IsStale(now, staleAfterDays):
		return AssessmentStale
	default:
		return AssessmentValid
	}
}
