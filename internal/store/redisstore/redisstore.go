// Package redisstore keeps each record as a JSON document under
// <prefix><userKey>. Updates use WATCH/MULTI so a concurrent writer forces a
// retry instead of a lost append.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/logger"
	"github.com/alexanderramin/glucoffee/internal/store"
)

const (
	defaultPrefix     = "glucoffee:record:"
	defaultMaxRetries = 10
)

type Options struct {
	Addr       string
	Password   string
	DB         int
	Prefix     string
	MaxRetries int
}

type Store struct {
	log        *logger.Logger
	rdb        *redis.Client
	prefix     string
	maxRetries int
}

var _ store.RecordStore = (*Store)(nil)

// New connects and pings the server.
func New(ctx context.Context, opts Options, log *logger.Logger) (*Store, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("%w: missing redis address", domain.ErrInvalidInput)
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, store.Unavailable("redis ping", err)
	}
	return NewWithClient(rdb, opts, log), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(rdb *redis.Client, opts Options, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	retries := opts.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}
	return &Store{
		log:        log.With("service", "RedisRecordStore"),
		rdb:        rdb,
		prefix:     prefix,
		maxRetries: retries,
	}
}

func (s *Store) key(userKey string) string { return s.prefix + userKey }

func (s *Store) Load(ctx context.Context, userKey string) (*domain.Record, error) {
	if err := store.ValidateKey(userKey); err != nil {
		return nil, err
	}
	return s.get(ctx, s.rdb, s.key(userKey))
}

func (s *Store) Save(ctx context.Context, userKey string, rec *domain.Record) error {
	if err := store.ValidateKey(userKey); err != nil {
		return err
	}
	data, err := store.Encode(rec)
	if err != nil {
		return store.Unavailable("encode record", err)
	}
	if err := s.rdb.Set(ctx, s.key(userKey), data, 0).Err(); err != nil {
		return store.Unavailable("redis set", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, userKey string, fn func(rec *domain.Record) error) error {
	if err := store.ValidateKey(userKey); err != nil {
		return err
	}
	key := s.key(userKey)

	var fnErr error
	txf := func(tx *redis.Tx) error {
		rec, err := s.get(ctx, tx, key)
		if err != nil {
			return err
		}
		if fnErr = fn(rec); fnErr != nil {
			return fnErr
		}
		data, err := store.Encode(rec)
		if err != nil {
			return store.Unavailable("encode record", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		err := s.rdb.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if fnErr != nil {
			return fnErr
		}
		if !errors.Is(err, redis.TxFailedErr) {
			if errors.Is(err, domain.ErrStorageUnavailable) {
				return err
			}
			return store.Unavailable("redis update", err)
		}
		s.log.Debug("record changed during update, retrying", "user_key", userKey, "attempt", attempt)
	}
	return store.Unavailable("redis update", fmt.Errorf("gave up after %d conflicting writes", s.maxRetries))
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) get(ctx context.Context, c getter, key string) (*domain.Record, error) {
	data, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewRecord(), nil
	}
	if err != nil {
		return nil, store.Unavailable("redis get", err)
	}
	rec, err := store.Decode(data)
	if err != nil {
		return nil, store.Unavailable("decode record", err)
	}
	return rec, nil
}
