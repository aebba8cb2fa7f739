package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/glucoffee/internal/domain"
)

func TestComputeStats(t *testing.T) {
	events := []domain.ConsumptionEvent{
		ev(daysAgo(0, 8), "Caffe Latte", 31.5),
		ev(daysAgo(0, 12), "Caffe Latte", 31.5),
		ev(daysAgo(3, 8), "Kopi Susu", 9.5),
		ev(time.Time{}, "broken", 5),
		ev(daysAgo(45, 8), "Kopi Susu", 9.5),
	}
	s := ComputeStats(events, now, Last30Days, DefaultLimits())
	assert.Equal(t, 3, s.Entries)
	assert.Equal(t, 72.5, s.TotalGrams)
	assert.Equal(t, 2, s.ActiveDays)
	assert.Equal(t, 36.25, s.AveragePerActiveDay)
	assert.Equal(t, 1, s.DaysOverLimit)
	assert.Equal(t, 1, s.Skipped)

	assert.Equal(t, Stats{}, ComputeStats(nil, now, AllTime, DefaultLimits()))
}

func TestSummarize(t *testing.T) {
	events := []domain.ConsumptionEvent{
		ev(daysAgo(0, 8), "Caffe Latte", 31.5),
		ev(daysAgo(2, 8), "Kopi Susu", 9.5),
	}
	a := Summarize(events, now, 7, DefaultLimits())
	assert.Equal(t, 2, a.Events)
	assert.Equal(t, 31.5, a.TodayTotal)
	assert.Equal(t, domain.BandSafe, a.TodayBand)
	assert.Equal(t, 18.5, a.RemainingQuota)
	assert.Equal(t, 63.0, a.QuotaUsedPct)
	assert.Equal(t, 20.5, a.WeeklyAverage)
	assert.Equal(t, 7, a.WindowDays)
	assert.Equal(t, 50.0, a.DailyLimit)
}
