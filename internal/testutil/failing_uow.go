package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/glucoffee/internal/db"
)

// FailingStatementUoW runs the callback in a real transaction but returns Err
// from the first ExecContext whose SQL contains Statement. Everything written
// before that point must be rolled back with the transaction.
type FailingStatementUoW struct {
	DB        *sql.DB
	Statement string
	Err       error

	// Hit reports whether the statement was reached.
	Hit bool
}

func (u *FailingStatementUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if fnErr := fn(ctx, &statementFailer{DBTX: tx, uow: u}); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type statementFailer struct {
	db.DBTX
	uow *FailingStatementUoW
}

func (f *statementFailer) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(query, f.uow.Statement) {
		f.uow.Hit = true
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
