package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// insertBatchSize keeps bulk inserts under the Postgres bind-parameter limit.
const insertBatchSize = 500

// replaceAll deletes every row of table and bulk-inserts rows in a single transaction.
func replaceAll[T any](ctx context.Context, db *sqlx.DB, table, insert string, rows []T) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return err
	}

	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))
		if _, err := tx.NamedExecContext(ctx, insert, rows[start:end]); err != nil {
			return err
		}
	}

	return tx.Commit()
}
