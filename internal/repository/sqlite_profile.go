package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/glucoffee/internal/db"
	"github.com/alexanderramin/glucoffee/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo using a SQLite database.
type SQLiteProfileRepo struct {
	db db.DBTX
}

func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

func (r *SQLiteProfileRepo) Get(ctx context.Context, userKey string) (domain.UserProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT name, created_at FROM profiles WHERE user_key = ?`, userKey)

	var name, created sql.NullString
	if err := row.Scan(&name, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UserProfile{}, fmt.Errorf("profile %s: %w", userKey, ErrNotFound)
		}
		return domain.UserProfile{}, fmt.Errorf("scanning profile: %w", err)
	}
	return domain.UserProfile{Name: name.String, CreatedAt: parseNullableTime(created)}, nil
}

func (r *SQLiteProfileRepo) Upsert(ctx context.Context, userKey string, p domain.UserProfile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO profiles (user_key, name, created_at) VALUES (?, ?, ?)`,
		userKey, nullableString(p.Name), nullableTimeToString(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}
