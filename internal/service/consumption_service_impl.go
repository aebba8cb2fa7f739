package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/glucoffee/internal/app"
	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/ledger"
	"github.com/alexanderramin/glucoffee/internal/store"
	"github.com/alexanderramin/glucoffee/internal/sugar"
)

type consumptionService struct {
	records    store.RecordStore
	calculator *sugar.Calculator
	policy     Policy
	observer   UseCaseObserver
}

func NewConsumptionService(
	records store.RecordStore,
	calculator *sugar.Calculator,
	policy Policy,
	observers ...UseCaseObserver,
) ConsumptionService {
	return &consumptionService{
		records:    records,
		calculator: calculator,
		policy:     policy,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// Log prices the order and appends it. Pricing errors leave the record
// untouched.
func (s *consumptionService) Log(ctx context.Context, userKey string, order sugar.Order, now time.Time) (result *app.LogResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user": userKey, "beverage": order.BeverageID}
	defer func() { observe(ctx, s.observer, "log-coffee", startedAt, fields, err) }()

	ev, err := s.calculator.NewEvent(order, now)
	if err != nil {
		return nil, err
	}
	fields["sugar_grams"] = ev.SugarGrams

	var today app.TodayView
	err = s.records.Update(ctx, userKey, func(rec *domain.Record) error {
		if err := requireProfile(rec); err != nil {
			return err
		}
		if err := ledger.Append(rec, ev); err != nil {
			return err
		}
		today = buildTodayView(rec.Events, now, s.policy.Limits)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("logging consumption: %w", err)
	}
	fields["today_grams"] = today.Total

	return &app.LogResult{Event: ev, Today: today}, nil
}

func (s *consumptionService) Today(ctx context.Context, userKey string, now time.Time) (*app.TodayView, error) {
	rec, err := s.records.Load(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("loading consumption: %w", err)
	}
	v := buildTodayView(rec.Events, now, s.policy.Limits)
	return &v, nil
}
