package app

import (
	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/ledger"
)

// TodayView is the current day's consumption against the daily limit.
type TodayView struct {
	Date           string
	Entries        []ledger.Entry
	Total          float64
	Band           domain.SugarBand
	RemainingQuota float64
	QuotaUsedPct   float64
	DailyLimit     float64
}

// LogResult is the appended event and the day's position after it.
type LogResult struct {
	Event domain.ConsumptionEvent
	Today TodayView
}
