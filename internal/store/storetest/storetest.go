// Package storetest is a behavioural suite every store.RecordStore backend
// runs from its own tests.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/store"
)

// Factory returns a fresh, empty store.
type Factory func(t *testing.T) store.RecordStore

// SampleRecord is a fully populated record with UTC timestamps.
func SampleRecord() *domain.Record {
	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)
	score := 13
	rec := domain.NewRecord()
	rec.Profile = domain.UserProfile{Name: "Sari", CreatedAt: &created}
	rec.Assessment = domain.RiskAssessment{
		Score:       &score,
		RiskLevel:   domain.RiskModerate,
		LastUpdated: &updated,
		RawAnswers:  map[string]string{"age": "45-54 years", "bmi": "25-30 kg/m²"},
	}
	rec.Events = []domain.ConsumptionEvent{
		{Timestamp: created.Add(time.Hour), BeverageID: "Caffe Latte", ServingSize: domain.SizeRegular, Quantity: 1, Additives: []string{}, SugarGrams: 31.5},
		{Timestamp: created.Add(3 * time.Hour), BeverageID: "Cappuccino", ServingSize: domain.SizeLarge, Quantity: 1, Additives: []string{"whipped_cream"}, SugarGrams: 23.36},
	}
	return rec
}

// Run exercises the contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("load missing returns default", func(t *testing.T) {
		s := newStore(t)
		rec, err := s.Load(context.Background(), "nobody")
		require.NoError(t, err)
		assert.Equal(t, domain.NewRecord(), rec)
	})

	t.Run("save then load round trips", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		for _, rec := range []*domain.Record{SampleRecord(), domain.NewRecord()} {
			require.NoError(t, s.Save(ctx, "alice", rec))
			got, err := s.Load(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, rec, got)
		}
	})

	t.Run("keys are isolated", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Save(ctx, "alice", SampleRecord()))
		got, err := s.Load(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, domain.NewRecord(), got)
	})

	t.Run("update applies changes", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Save(ctx, "alice", SampleRecord()))
		err := s.Update(ctx, "alice", func(rec *domain.Record) error {
			rec.Events = append(rec.Events, domain.ConsumptionEvent{
				Timestamp: time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC), BeverageID: "Americano",
				ServingSize: domain.SizeRegular, Quantity: 1, Additives: []string{},
			})
			return nil
		})
		require.NoError(t, err)
		got, err := s.Load(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, got.Events, 3)
		assert.Equal(t, "Americano", got.Events[2].BeverageID)
		assert.Equal(t, SampleRecord().Assessment, got.Assessment)
	})

	t.Run("update error leaves record untouched", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Save(ctx, "alice", SampleRecord()))
		boom := errors.New("boom")
		err := s.Update(ctx, "alice", func(rec *domain.Record) error {
			rec.Profile.Name = "changed"
			rec.Events = nil
			return boom
		})
		assert.ErrorIs(t, err, boom)
		got, err := s.Load(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, SampleRecord(), got)
	})

	t.Run("concurrent updates are not lost", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		const writers = 8
		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs <- s.Update(ctx, "shared", func(rec *domain.Record) error {
					rec.Events = append(rec.Events, domain.ConsumptionEvent{
						Timestamp:  time.Date(2025, 6, 3, 8, i, 0, 0, time.UTC),
						BeverageID: "Kopi Susu", ServingSize: domain.SizeRegular,
						Quantity: 1, Additives: []string{}, SugarGrams: 9.5,
					})
					return nil
				})
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}
		got, err := s.Load(ctx, "shared")
		require.NoError(t, err)
		assert.Len(t, got.Events, writers)
	})

	t.Run("invalid key is rejected", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Load(context.Background(), "../escape")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
