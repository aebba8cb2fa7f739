package redisstore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/store"
	"github.com/alexanderramin/glucoffee/internal/store/storetest"
)

// newTestStore needs a live server; GLUCOFFEE_TEST_REDIS_ADDR enables the suite.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("GLUCOFFEE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("GLUCOFFEE_TEST_REDIS_ADDR not set")
	}
	prefix := "glucoffee-test:" + uuid.New().String() + ":"
	s, err := New(context.Background(), Options{Addr: addr, Prefix: prefix, MaxRetries: 50}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := s.rdb.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			s.rdb.Del(ctx, keys...)
		}
		s.Close()
	})
	return s
}

// newMiniStore runs against an in-process server and returns a second client
// for writes that race the store.
func newMiniStore(t *testing.T, opts Options) (*Store, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	opts.Addr = mr.Addr()
	s, err := New(context.Background(), opts, nil)
	require.NoError(t, err)
	other := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		other.Close()
		s.Close()
	})
	return s, other
}

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.RecordStore {
		return newTestStore(t)
	})
}

func TestContract_InProcessServer(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.RecordStore {
		s, _ := newMiniStore(t, Options{MaxRetries: 50})
		return s
	})
}

func americano(at time.Time) domain.ConsumptionEvent {
	return domain.ConsumptionEvent{
		Timestamp: at, BeverageID: "Americano", ServingSize: domain.SizeRegular,
		Quantity: 1, Additives: []string{},
	}
}

func TestUpdate_RetriesAfterConcurrentWrite(t *testing.T) {
	s, other := newMiniStore(t, Options{})
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "alice", storetest.SampleRecord()))

	racing := storetest.SampleRecord()
	racing.Events = append(racing.Events, americano(time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)))
	racingDoc, err := store.Encode(racing)
	require.NoError(t, err)

	calls := 0
	err = s.Update(ctx, "alice", func(rec *domain.Record) error {
		calls++
		if calls == 1 {
			require.NoError(t, other.Set(ctx, s.key("alice"), racingDoc, 0).Err())
		}
		rec.Events = append(rec.Events, americano(time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	got, err := s.Load(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got.Events, 4)
	assert.Equal(t, 8, got.Events[2].Timestamp.Hour())
	assert.Equal(t, 9, got.Events[3].Timestamp.Hour())
}

func TestUpdate_GivesUpAfterMaxRetries(t *testing.T) {
	s, other := newMiniStore(t, Options{MaxRetries: 3})
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "alice", storetest.SampleRecord()))

	calls := 0
	err := s.Update(ctx, "alice", func(rec *domain.Record) error {
		calls++
		require.NoError(t, other.Append(ctx, s.key("alice"), " ").Err())
		rec.Profile.Name = "Changed"
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Equal(t, 3, calls)

	got, err := s.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, storetest.SampleRecord().Profile.Name, got.Profile.Name)
}

func TestUpdate_CallbackErrorLeavesRecord(t *testing.T) {
	s, _ := newMiniStore(t, Options{})
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "alice", storetest.SampleRecord()))

	refused := errors.New("refused")
	err := s.Update(ctx, "alice", func(rec *domain.Record) error {
		rec.Events = nil
		return refused
	})
	assert.ErrorIs(t, err, refused)

	got, err := s.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, storetest.SampleRecord(), got)
}

func TestLoad_SkipsDamagedHistoryEntry(t *testing.T) {
	s, other := newMiniStore(t, Options{})
	ctx := context.Background()
	doc := `{"user_profile": {"name": "Sari"}, "coffee_history": [
		{"date": "2025-06-02T08:00:00Z", "drink": "Caffe Latte", "volume": "regular", "quantity": 1, "topping": [], "sugar": 31.5},
		{"date": "2025-06-02T09:00:00Z", "drink": "Kopi Susu", "volume": "regular", "quantity": 1, "topping": [], "sugar": "9.5"}
	]}`
	require.NoError(t, other.Set(ctx, s.key("alice"), doc, 0).Err())

	got, err := s.Load(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got.Events, 2)
	assert.True(t, got.Events[0].Valid())
	assert.False(t, got.Events[1].Valid())
}

func TestNew_MissingAddr(t *testing.T) {
	_, err := New(context.Background(), Options{}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNew_UnreachableServer(t *testing.T) {
	_, err := New(context.Background(), Options{Addr: "127.0.0.1:1"}, nil)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestNewWithClient_Defaults(t *testing.T) {
	s := NewWithClient(nil, Options{}, nil)
	assert.Equal(t, defaultPrefix+"alice", s.key("alice"))
	assert.Equal(t, defaultMaxRetries, s.maxRetries)
}
