// Package advice assembles the structured summary handed to the text
// generator and produces a recommendation, with deterministic advice when the
// generator cannot answer.
package advice

import (
	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/findrisc"
	"github.com/alexanderramin/glucoffee/internal/ledger"
)

// RiskSection is present when a FINDRISC score exists.
type RiskSection struct {
	Score     int
	Level     domain.RiskLevel
	Age       string
	BMI       string
	Incidence string
}

// ConsumptionSection is present when at least one valid event exists.
type ConsumptionSection struct {
	TodayTotal     float64
	TodayBand      domain.SugarBand
	RemainingQuota float64
	QuotaUsedPct   float64
	WeeklyAverage  float64
	WindowDays     int
	DailyLimit     float64
}

// Summary has a fixed shape; absent upstream data leaves its section nil.
type Summary struct {
	Name        string
	Risk        *RiskSection
	Consumption *ConsumptionSection
}

// Summarize builds the summary. It fails with ErrNothingToSummarize only when
// both the assessment and the consumption data are missing. An assessment
// without a score and aggregates without events count as missing.
func Summarize(profile domain.UserProfile, assessment *domain.RiskAssessment, agg *ledger.Aggregates) (Summary, error) {
	s := Summary{Name: profile.Name}

	if assessment != nil && assessment.Score != nil {
		s.Risk = &RiskSection{
			Score:     *assessment.Score,
			Level:     assessment.RiskLevel,
			Age:       answer(assessment.RawAnswers, findrisc.QuestionAge),
			BMI:       answer(assessment.RawAnswers, findrisc.QuestionBMI),
			Incidence: findrisc.Interpret(assessment.RiskLevel).Incidence,
		}
	}

	if agg != nil && agg.Events > 0 {
		s.Consumption = &ConsumptionSection{
			TodayTotal:     agg.TodayTotal,
			TodayBand:      agg.TodayBand,
			RemainingQuota: agg.RemainingQuota,
			QuotaUsedPct:   agg.QuotaUsedPct,
			WeeklyAverage:  agg.WeeklyAverage,
			WindowDays:     agg.WindowDays,
			DailyLimit:     agg.DailyLimit,
		}
	}

	if s.Risk == nil && s.Consumption == nil {
		return Summary{}, domain.ErrNothingToSummarize
	}
	return s, nil
}

func answer(raw map[string]string, key string) string {
	if v, ok := raw[key]; ok && v != "" {
		return v
	}
	return "N/A"
}
