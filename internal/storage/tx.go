package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// WithTx runs fn in a transaction, committing on success and rolling back on
// any error. Snapshot saves go through here so a failed save leaves the
// previous snapshot intact.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
