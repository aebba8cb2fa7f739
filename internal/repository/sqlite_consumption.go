package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/glucoffee/internal/db"
	"github.com/alexanderramin/glucoffee/internal/domain"
)

// SQLiteConsumptionRepo stores the consumption log. seq preserves insertion
// order independently of timestamps.
type SQLiteConsumptionRepo struct {
	db db.DBTX
}

func NewSQLiteConsumptionRepo(conn db.DBTX) *SQLiteConsumptionRepo {
	return &SQLiteConsumptionRepo{db: conn}
}

func (r *SQLiteConsumptionRepo) List(ctx context.Context, userKey string) ([]domain.ConsumptionEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT seq, logged_at, beverage_id, serving_size, quantity, sugar_grams
		 FROM consumption_events WHERE user_key = ? ORDER BY seq`, userKey)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}

	events := []domain.ConsumptionEvent{}
	bySeq := make(map[int]int)
	for rows.Next() {
		var (
			seq    int
			logged sql.NullString
			ev     domain.ConsumptionEvent
			size   string
		)
		if err := rows.Scan(&seq, &logged, &ev.BeverageID, &size, &ev.Quantity, &ev.SugarGrams); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		if ts := parseNullableTime(logged); ts != nil {
			ev.Timestamp = *ts
		}
		ev.ServingSize = domain.ServingSize(size)
		ev.Additives = []string{}
		bySeq[seq] = len(events)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	rows.Close()

	addRows, err := r.db.QueryContext(ctx,
		`SELECT seq, additive FROM event_additives WHERE user_key = ? ORDER BY seq, position`, userKey)
	if err != nil {
		return nil, fmt.Errorf("querying additives: %w", err)
	}
	defer addRows.Close()
	for addRows.Next() {
		var seq int
		var additive string
		if err := addRows.Scan(&seq, &additive); err != nil {
			return nil, fmt.Errorf("scanning additive: %w", err)
		}
		if i, ok := bySeq[seq]; ok {
			events[i].Additives = append(events[i].Additives, additive)
		}
	}
	return events, addRows.Err()
}

// ReplaceAll rewrites the whole log for userKey.
func (r *SQLiteConsumptionRepo) ReplaceAll(ctx context.Context, userKey string, events []domain.ConsumptionEvent) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM consumption_events WHERE user_key = ?`, userKey); err != nil {
		return fmt.Errorf("clearing events: %w", err)
	}
	for seq, ev := range events {
		size := ev.ServingSize
		if size == "" {
			size = domain.SizeRegular
		}
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO consumption_events (user_key, seq, logged_at, beverage_id, serving_size, quantity, sugar_grams)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			userKey, seq, nullableTimeToString(&ev.Timestamp), ev.BeverageID, string(size), ev.Quantity, ev.SugarGrams); err != nil {
			return fmt.Errorf("inserting event %d: %w", seq, err)
		}
		for pos, additive := range ev.Additives {
			if _, err := r.db.ExecContext(ctx,
				`INSERT INTO event_additives (user_key, seq, position, additive) VALUES (?, ?, ?, ?)`,
				userKey, seq, pos, additive); err != nil {
				return fmt.Errorf("inserting additive for event %d: %w", seq, err)
			}
		}
	}
	return nil
}
