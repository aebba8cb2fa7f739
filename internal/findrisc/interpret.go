package findrisc

import "github.com/alexanderramin/glucoffee/internal/domain"

// Interpretation is the published ten-year outlook for a tier.
type Interpretation struct {
	Incidence string
	Action    string
}

var interpretations = map[domain.RiskLevel]Interpretation{
	domain.RiskLow:              {"about 1 in 100 will develop diabetes within 10 years", "Keep up the healthy lifestyle."},
	domain.RiskSlightlyElevated: {"about 1 in 25 will develop diabetes within 10 years", "Pay attention to your diet."},
	domain.RiskModerate:         {"about 1 in 6 will develop diabetes within 10 years", "Consider talking to a doctor."},
	domain.RiskHigh:             {"about 1 in 3 will develop diabetes within 10 years", "A blood glucose test is recommended."},
	domain.RiskVeryHigh:         {"about 1 in 2 will develop diabetes within 10 years", "See a doctor soon."},
}

// Interpret returns the outlook for a tier.
func Interpret(level domain.RiskLevel) Interpretation {
	return interpretations[level]
}
