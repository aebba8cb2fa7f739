package app

import (
	"time"

	"github.com/alexanderramin/glucoffee/internal/advice"
	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/ledger"
)

type AnalysisRequest struct {
	Now          *time.Time
	Period       ledger.Period
	Sort         ledger.SortOrder
	UseGenerator bool
}

func NewAnalysisRequest() AnalysisRequest {
	return AnalysisRequest{
		Period:       ledger.Last7Days,
		Sort:         ledger.Newest,
		UseGenerator: true,
	}
}

type AnalysisResponse struct {
	Profile    domain.UserProfile
	Assessment AssessmentStatus
	Aggregates ledger.Aggregates
	Period     ledger.Period
	Stats      ledger.Stats
	Days       []ledger.DayGroup

	// Summary and Recommendation are nil when there is nothing to
	// summarize; Guidance then says what to do first.
	Summary        *advice.Summary
	Recommendation *advice.Recommendation
	Guidance       string
	Warnings       []string
}
