// Package filestore keeps one JSON document per user key in a directory.
package filestore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/logger"
	"github.com/alexanderramin/glucoffee/internal/store"
)

type Store struct {
	dir string
	log *logger.Logger
}

var _ store.RecordStore = (*Store)(nil)

// New returns a store rooted at dir. The directory is created on first write.
func New(dir string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{dir: dir, log: log}
}

// Path returns the document path for userKey.
func (s *Store) Path(userKey string) string {
	return filepath.Join(s.dir, userKey+".json")
}

func (s *Store) Load(ctx context.Context, userKey string) (*domain.Record, error) {
	if err := store.ValidateKey(userKey); err != nil {
		return nil, err
	}
	return s.read(s.Path(userKey))
}

func (s *Store) Save(ctx context.Context, userKey string, rec *domain.Record) error {
	if err := store.ValidateKey(userKey); err != nil {
		return err
	}
	path := s.Path(userKey)
	lock := newRecordLock(path)
	if err := lock.Lock(ctx); err != nil {
		return store.Unavailable("lock record", err)
	}
	defer s.unlock(lock)
	return s.write(path, rec)
}

func (s *Store) Update(ctx context.Context, userKey string, fn func(rec *domain.Record) error) error {
	if err := store.ValidateKey(userKey); err != nil {
		return err
	}
	path := s.Path(userKey)
	lock := newRecordLock(path)
	if err := lock.Lock(ctx); err != nil {
		return store.Unavailable("lock record", err)
	}
	defer s.unlock(lock)

	rec, err := s.read(path)
	if err != nil {
		return err
	}
	if err := fn(rec); err != nil {
		return err
	}
	return s.write(path, rec)
}

func (s *Store) Close() error { return nil }

func (s *Store) read(path string) (*domain.Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewRecord(), nil
	}
	if err != nil {
		return nil, store.Unavailable("read record", err)
	}
	rec, err := store.Decode(data)
	if err != nil {
		return nil, store.Unavailable("read record", err)
	}
	return rec, nil
}

func (s *Store) write(path string, rec *domain.Record) error {
	data, err := store.Encode(rec)
	if err != nil {
		return store.Unavailable("encode record", err)
	}
	if err := atomicWrite(path, data); err != nil {
		return store.Unavailable("write record", err)
	}
	s.log.Debug("record written", "path", path, "events", len(rec.Events))
	return nil
}

func (s *Store) unlock(lock *recordLock) {
	if err := lock.Unlock(); err != nil {
		s.log.Warn("record unlock failed", "error", err)
	}
}
