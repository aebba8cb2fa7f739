package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/glucoffee/internal/domain"
)

// FixedNow is the reference clock used across package tests.
var FixedNow = time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)

// NewUserKey returns a unique key so tests never share a record.
func NewUserKey() string {
	return "test-" + uuid.New().String()
}

// Record options
type RecordOption func(*domain.Record)

func WithName(name string) RecordOption {
	return func(r *domain.Record) {
		created := FixedNow.AddDate(0, 0, -30)
		r.Profile = domain.UserProfile{Name: name, CreatedAt: &created}
	}
}

// WithAssessment stores a taken assessment updated daysAgo days before FixedNow.
func WithAssessment(score int, level domain.RiskLevel, daysAgo int) RecordOption {
	return func(r *domain.Record) {
		s := score
		updated := FixedNow.AddDate(0, 0, -daysAgo)
		r.Assessment = domain.RiskAssessment{
			Score:       &s,
			RiskLevel:   level,
			LastUpdated: &updated,
			RawAnswers:  map[string]string{"age": "45-54 years", "bmi": "25-30 kg/m²"},
		}
	}
}

func WithEvents(events ...domain.ConsumptionEvent) RecordOption {
	return func(r *domain.Record) {
		r.Events = append(r.Events, events...)
	}
}

func NewTestRecord(opts ...RecordOption) *domain.Record {
	r := domain.NewRecord()
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Event options
type EventOption func(*domain.ConsumptionEvent)

func WithSize(s domain.ServingSize) EventOption {
	return func(e *domain.ConsumptionEvent) {
		e.ServingSize = s
	}
}

func WithQuantity(q int) EventOption {
	return func(e *domain.ConsumptionEvent) {
		e.Quantity = q
	}
}

func WithAdditives(keys ...string) EventOption {
	return func(e *domain.ConsumptionEvent) {
		e.Additives = append([]string{}, keys...)
	}
}

// NewTestEvent builds a regular single-cup event.
func NewTestEvent(at time.Time, beverage string, grams float64, opts ...EventOption) domain.ConsumptionEvent {
	e := domain.ConsumptionEvent{
		Timestamp:   at,
		BeverageID:  beverage,
		ServingSize: domain.SizeRegular,
		Quantity:    1,
		Additives:   []string{},
		SugarGrams:  grams,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// DaysAgo returns FixedNow shifted back by days, at the given hour.
func DaysAgo(days, hour int) time.Time {
	y, m, d := FixedNow.AddDate(0, 0, -days).Date()
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}
