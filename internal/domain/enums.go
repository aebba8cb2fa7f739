package domain

type RiskLevel string

const (
	RiskLow              RiskLevel = "low"
	RiskSlightlyElevated RiskLevel = "slightly_elevated"
	RiskModerate         RiskLevel = "moderate"
	RiskHigh             RiskLevel = "high"
	RiskVeryHigh         RiskLevel = "very_high"
)

// ValidRiskLevels is the canonical set of accepted risk level strings.
var ValidRiskLevels = map[RiskLevel]bool{
	RiskLow: true, RiskSlightlyElevated: true, RiskModerate: true,
	RiskHigh: true, RiskVeryHigh: true,
}

// Label returns the human-readable tier name.
func (r RiskLevel) Label() string {
	switch r {
	case RiskLow:
		return "Low"
	case RiskSlightlyElevated:
		return "Slightly Elevated"
	case RiskModerate:
		return "Moderate"
	case RiskHigh:
		return "High"
	case RiskVeryHigh:
		return "Very High"
	default:
		return "Unknown"
	}
}

type ServingSize string

const (
	SizeRegular ServingSize = "regular"
	SizeLarge   ServingSize = "large"
)

// ParseServingSize accepts the canonical names case-insensitively.
func ParseServingSize(s string) (ServingSize, error) {
	switch ServingSize(lower(s)) {
	case SizeRegular, "":
		return SizeRegular, nil
	case SizeLarge:
		return SizeLarge, nil
	}
	return "", invalidf("serving size %q must be regular or large", s)
}

// SugarBand classifies a daily sugar total against the configured limits.
type SugarBand string

const (
	BandSafe        SugarBand = "safe"
	BandApproaching SugarBand = "approaching"
	BandExceeded    SugarBand = "exceeded"
)

type AssessmentState string

const (
	AssessmentNotTaken AssessmentState = "not_taken"
	AssessmentStale    AssessmentState = "stale"
	AssessmentValid    AssessmentState = "valid"
)
