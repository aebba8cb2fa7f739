package ledger

import (
	"time"

	"github.com/alexanderramin/glucoffee/internal/domain"
)

// Stats summarizes one period of the log.
type Stats struct {
	Entries             int
	TotalGrams          float64
	ActiveDays          int
	AveragePerActiveDay float64
	DaysOverLimit       int
	Skipped             int
}

// ComputeStats aggregates the period in a single pass over the log.
func ComputeStats(events []domain.ConsumptionEvent, now time.Time, period Period, limits Limits) Stats {
	all, skipped := Scan(events)
	entries := period.filter(all, now)
	totals := dayTotals(entries)

	s := Stats{Entries: len(entries), ActiveDays: len(totals), Skipped: skipped}
	for _, e := range entries {
		s.TotalGrams += e.SugarGrams
	}
	s.TotalGrams = round(s.TotalGrams)
	if s.ActiveDays > 0 {
		s.AveragePerActiveDay = round(s.TotalGrams / float64(s.ActiveDays))
	}
	s.DaysOverLimit = countOver(totals, limits.DailyGrams)
	return s
}

// Aggregates is the ledger view handed to the recommendation summarizer.
type Aggregates struct {
	Events         int
	TodayTotal     float64
	TodayBand      domain.SugarBand
	RemainingQuota float64
	QuotaUsedPct   float64
	WeeklyAverage  float64
	WindowDays     int
	DailyLimit     float64
	Skipped        int
}

// Summarize computes today's position and the rolling average.
func Summarize(events []domain.ConsumptionEvent, now time.Time, windowDays int, limits Limits) Aggregates {
	entries, skipped := Scan(events)
	today := DailyTotal(events, now)
	return Aggregates{
		Events:         len(entries),
		TodayTotal:     today,
		TodayBand:      Classify(today, limits),
		RemainingQuota: RemainingQuota(today, limits.DailyGrams),
		QuotaUsedPct:   QuotaUsedPct(today, limits.DailyGrams),
		WeeklyAverage:  WindowAverage(events, now, windowDays),
		WindowDays:     windowDays,
		DailyLimit:     limits.DailyGrams,
		Skipped:        skipped,
	}
}
