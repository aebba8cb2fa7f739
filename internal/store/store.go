// Package store defines the per-user record persistence contract and the
// JSON document every backend writes.
package store

import (
	"context"
	"fmt"

	"github.com/alexanderramin/glucoffee/internal/domain"
)

// RecordStore persists one record per user key.
//
// Load returns a default record when nothing is stored. Save overwrites the
// stored record atomically. Update is the read-modify-write used by every
// mutation: fn receives the current record and its changes are written back
// only if fn returns nil. Backends serialize concurrent Updates on one key.
// Every I/O failure wraps domain.ErrStorageUnavailable.
type RecordStore interface {
	Load(ctx context.Context, userKey string) (*domain.Record, error)
	Save(ctx context.Context, userKey string, rec *domain.Record) error
	Update(ctx context.Context, userKey string, fn func(rec *domain.Record) error) error
	Close() error
}

// Unavailable wraps err as a storage failure.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, op, err)
}

// ValidateKey rejects empty user keys and ones that could escape a directory
// or key namespace.
func ValidateKey(userKey string) error {
	if userKey == "" {
		return fmt.Errorf("%w: user key is empty", domain.ErrInvalidInput)
	}
	for _, r := range userKey {
		ok := r == '-' || r == '_' || r == '.' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return fmt.Errorf("%w: user key %q may only contain letters, digits, '.', '-' and '_'", domain.ErrInvalidInput, userKey)
		}
	}
	if userKey == "." || userKey == ".." {
		return fmt.Errorf("%w: user key %q is reserved", domain.ErrInvalidInput, userKey)
	}
	return nil
}
