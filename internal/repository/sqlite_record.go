package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/glucoffee/internal/db"
	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/store"
)

// SQLiteRecordStore implements store.RecordStore over the per-section repos.
// Every Save and Update rewrites the record inside one transaction.
type SQLiteRecordStore struct {
	conn *sql.DB
	uow  db.UnitOfWork
}

var _ store.RecordStore = (*SQLiteRecordStore)(nil)

// NewSQLiteRecordStore wraps an opened database. uow may be nil, in which
// case transactions run directly on conn.
func NewSQLiteRecordStore(conn *sql.DB, uow db.UnitOfWork) *SQLiteRecordStore {
	if uow == nil {
		uow = db.NewSQLiteUnitOfWork(conn)
	}
	return &SQLiteRecordStore{conn: conn, uow: uow}
}

// OpenSQLiteRecordStore opens (and migrates) the database at path.
func OpenSQLiteRecordStore(path string) (*SQLiteRecordStore, error) {
	conn, err := db.OpenDB(path)
	if err != nil {
		return nil, store.Unavailable("open sqlite", err)
	}
	return NewSQLiteRecordStore(conn, nil), nil
}

func (s *SQLiteRecordStore) Load(ctx context.Context, userKey string) (*domain.Record, error) {
	if err := store.ValidateKey(userKey); err != nil {
		return nil, err
	}
	var rec *domain.Record
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		rec, err = loadRecord(ctx, tx, userKey)
		return err
	})
	if err != nil {
		return nil, store.Unavailable("load record", err)
	}
	return rec, nil
}

func (s *SQLiteRecordStore) Save(ctx context.Context, userKey string, rec *domain.Record) error {
	if err := store.ValidateKey(userKey); err != nil {
		return err
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return saveRecord(ctx, tx, userKey, rec)
	})
	if err != nil {
		return store.Unavailable("save record", err)
	}
	return nil
}

func (s *SQLiteRecordStore) Update(ctx context.Context, userKey string, fn func(rec *domain.Record) error) error {
	if err := store.ValidateKey(userKey); err != nil {
		return err
	}
	var fnErr error
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		rec, err := loadRecord(ctx, tx, userKey)
		if err != nil {
			return err
		}
		if fnErr = fn(rec); fnErr != nil {
			return fnErr
		}
		return saveRecord(ctx, tx, userKey, rec)
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return store.Unavailable("update record", err)
	}
	return nil
}

func (s *SQLiteRecordStore) Close() error {
	return s.conn.Close()
}

func loadRecord(ctx context.Context, tx db.DBTX, userKey string) (*domain.Record, error) {
	rec := domain.NewRecord()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE user_key = ?`, userKey).Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking record: %w", err)
	}
	if exists == 0 {
		return rec, nil
	}

	profile, err := NewSQLiteProfileRepo(tx).Get(ctx, userKey)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	rec.Profile = profile

	assessment, err := NewSQLiteAssessmentRepo(tx).Get(ctx, userKey)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	rec.Assessment = assessment

	events, err := NewSQLiteConsumptionRepo(tx).List(ctx, userKey)
	if err != nil {
		return nil, err
	}
	rec.Events = events
	return rec, nil
}

// saveRecord drops every row for userKey and writes rec from scratch.
func saveRecord(ctx context.Context, tx db.DBTX, userKey string, rec *domain.Record) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE user_key = ?`, userKey); err != nil {
		return fmt.Errorf("clearing record: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO records (user_key, updated_at) VALUES (?, ?)`, userKey, nowUTC()); err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}
	if err := NewSQLiteProfileRepo(tx).Upsert(ctx, userKey, rec.Profile); err != nil {
		return err
	}
	if err := NewSQLiteAssessmentRepo(tx).Replace(ctx, userKey, rec.Assessment); err != nil {
		return err
	}
	return NewSQLiteConsumptionRepo(tx).ReplaceAll(ctx, userKey, rec.Events)
}
