// Package ledger derives read-only aggregates from the append-only
// consumption log. Apart from Append it never touches a record.
package ledger

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/glucoffee/internal/domain"
)

const dayLayout = "2006-01-02"

// Limits are the daily sugar thresholds used for banding.
type Limits struct {
	DailyGrams       float64
	ApproachingGrams float64
}

// DefaultLimits is the WHO reference: 50g per day, approaching from 40g.
func DefaultLimits() Limits {
	return Limits{DailyGrams: 50, ApproachingGrams: 40}
}

// Entry is a valid event together with its position in the log. Index is the
// tie-breaker for every ordering.
type Entry struct {
	Index int
	domain.ConsumptionEvent
}

// Day returns the event's calendar date in its own location.
func (e Entry) Day() string { return DayKey(e.Timestamp) }

// DayKey formats the calendar date used for day grouping.
func DayKey(t time.Time) string { return t.Format(dayLayout) }

// Append adds ev to the end of the record's log. Existing events, the
// profile and the assessment are left as they are.
func Append(rec *domain.Record, ev domain.ConsumptionEvent) error {
	if !ev.Valid() {
		return fmt.Errorf("%w: consumption event has no timestamp or invalid sugar grams", domain.ErrInvalidInput)
	}
	events := make([]domain.ConsumptionEvent, len(rec.Events), len(rec.Events)+1)
	copy(events, rec.Events)
	rec.Events = append(events, ev)
	return nil
}

// Scan returns the valid events in insertion order and how many were skipped
// as malformed.
func Scan(events []domain.ConsumptionEvent) (entries []Entry, skipped int) {
	entries = make([]Entry, 0, len(events))
	for i, ev := range events {
		if !ev.Valid() {
			skipped++
			continue
		}
		entries = append(entries, Entry{Index: i, ConsumptionEvent: ev})
	}
	return entries, skipped
}

// DailyTotal sums the sugar of events on the same calendar date as day.
func DailyTotal(events []domain.ConsumptionEvent, day time.Time) float64 {
	entries, _ := Scan(events)
	key := DayKey(day)
	total := 0.0
	for _, e := range entries {
		if e.Day() == key {
			total += e.SugarGrams
		}
	}
	return round(total)
}

// WindowAverage is the mean daily total over days that have at least one
// event with timestamp > now - windowDays. Empty days do not count.
func WindowAverage(events []domain.ConsumptionEvent, now time.Time, windowDays int) float64 {
	entries, _ := Scan(events)
	totals := dayTotals(inWindow(entries, now, windowDays))
	if len(totals) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range totals {
		sum += t
	}
	return round(sum / float64(len(totals)))
}

// DaysOverLimit counts distinct days in the period whose total exceeds limit.
func DaysOverLimit(events []domain.ConsumptionEvent, now time.Time, period Period, limit float64) int {
	entries, _ := Scan(events)
	return countOver(dayTotals(period.filter(entries, now)), limit)
}

// Classify bands a daily total.
func Classify(total float64, limits Limits) domain.SugarBand {
	switch {
	case total > limits.DailyGrams:
		return domain.BandExceeded
	case total >= limits.ApproachingGrams:
		return domain.BandApproaching
	default:
		return domain.BandSafe
	}
}

// RemainingQuota is what is left of today's limit, never negative.
func RemainingQuota(total, limit float64) float64 {
	return round(math.Max(0, limit-total))
}

// QuotaUsedPct is total as a percentage of limit. It may exceed 100.
func QuotaUsedPct(total, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return round(total / limit * 100)
}

func inWindow(entries []Entry, now time.Time, days int) []Entry {
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Timestamp.After(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

func dayTotals(entries []Entry) map[string]float64 {
	totals := make(map[string]float64)
	for _, e := range entries {
		totals[e.Day()] += e.SugarGrams
	}
	return totals
}

func countOver(totals map[string]float64, limit float64) int {
	n := 0
	for _, t := range totals {
		if round(t) > limit {
			n++
		}
	}
	return n
}

// round trims float noise to hundredths so that 31.5+0+18.6 reads as 50.1.
func round(v float64) float64 {
	return math.Round(v*100) / 100
}
