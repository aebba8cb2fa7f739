package service

import (
	"time"

	"github.com/alexanderramin/glucoffee/internal/app"
	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/findrisc"
	"github.com/alexanderramin/glucoffee/internal/ledger"
)

// Policy holds the ledger and staleness settings shared by the services.
type Policy struct {
	Limits         ledger.Limits
	StaleAfterDays int
	WindowDays     int
}

func DefaultPolicy() Policy {
	return Policy{
		Limits:         ledger.DefaultLimits(),
		StaleAfterDays: domain.DefaultStaleAfterDays,
		WindowDays:     7,
	}
}

func requireProfile(rec *domain.Record) error {
	if !rec.Profile.IsSetUp() {
		return domain.ErrProfileRequired
	}
	return nil
}

func buildAssessmentStatus(a domain.RiskAssessment, now time.Time, staleAfterDays int) app.AssessmentStatus {
	st := app.AssessmentStatus{
		State:          a.State(now, staleAfterDays),
		Assessment:     a,
		DaysSince:      a.DaysSince(now),
		StaleAfterDays: staleAfterDays,
	}
	if a.IsTaken() {
		st.Interpretation = findrisc.Interpret(a.RiskLevel)
	}
	return st
}

func buildTodayView(events []domain.ConsumptionEvent, now time.Time, limits ledger.Limits) app.TodayView {
	day := ledger.DayKey(now)
	entries, _ := ledger.Scan(events)
	var todays []ledger.Entry
	for _, e := range entries {
		if e.Day() == day {
			todays = append(todays, e)
		}
	}
	total := ledger.DailyTotal(events, now)
	return app.TodayView{
		Date:           day,
		Entries:        todays,
		Total:          total,
		Band:           ledger.Classify(total, limits),
		RemainingQuota: ledger.RemainingQuota(total, limits.DailyGrams),
		QuotaUsedPct:   ledger.QuotaUsedPct(total, limits.DailyGrams),
		DailyLimit:     limits.DailyGrams,
	}
}
