package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/glucoffee/internal/db"
	"github.com/alexanderramin/glucoffee/internal/domain"
)

// SQLiteAssessmentRepo stores the latest FINDRISC result and its answers.
type SQLiteAssessmentRepo struct {
	db db.DBTX
}

func NewSQLiteAssessmentRepo(conn db.DBTX) *SQLiteAssessmentRepo {
	return &SQLiteAssessmentRepo{db: conn}
}

func (r *SQLiteAssessmentRepo) Get(ctx context.Context, userKey string) (domain.RiskAssessment, error) {
	a := domain.EmptyAssessment()

	row := r.db.QueryRowContext(ctx,
		`SELECT score, risk_level, last_updated FROM assessments WHERE user_key = ?`, userKey)
	var score sql.NullInt64
	var level, updated sql.NullString
	if err := row.Scan(&score, &level, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, fmt.Errorf("assessment %s: %w", userKey, ErrNotFound)
		}
		return a, fmt.Errorf("scanning assessment: %w", err)
	}
	if score.Valid {
		s := int(score.Int64)
		a.Score = &s
	}
	a.RiskLevel = domain.RiskLevel(level.String)
	a.LastUpdated = parseNullableTime(updated)

	rows, err := r.db.QueryContext(ctx,
		`SELECT question, answer FROM assessment_answers WHERE user_key = ?`, userKey)
	if err != nil {
		return a, fmt.Errorf("querying answers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var q, ans string
		if err := rows.Scan(&q, &ans); err != nil {
			return a, fmt.Errorf("scanning answer: %w", err)
		}
		a.RawAnswers[q] = ans
	}
	return a, rows.Err()
}

// Replace overwrites the assessment and all of its answers.
func (r *SQLiteAssessmentRepo) Replace(ctx context.Context, userKey string, a domain.RiskAssessment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO assessments (user_key, score, risk_level, last_updated) VALUES (?, ?, ?, ?)`,
		userKey, nullableIntToValue(a.Score), nullableString(string(a.RiskLevel)), nullableTimeToString(a.LastUpdated))
	if err != nil {
		return fmt.Errorf("replacing assessment: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM assessment_answers WHERE user_key = ?`, userKey); err != nil {
		return fmt.Errorf("clearing answers: %w", err)
	}
	for q, ans := range a.RawAnswers {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO assessment_answers (user_key, question, answer) VALUES (?, ?, ?)`,
			userKey, q, ans); err != nil {
			return fmt.Errorf("inserting answer %s: %w", q, err)
		}
	}
	return nil
}
