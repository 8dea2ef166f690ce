package database

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// RunInTx runs fn inside a transaction. The tx is committed when fn returns
// nil and rolled back otherwise.
func (db *DB) RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.IDB) error) error {
	return db.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &tx)
	})
}

// FindByID is a helper to find a record by ID. column is alias-qualified, e.g. "gc.id".
func FindByID[T any](ctx context.Context, db bun.IDB, column string, id int64) (*T, error) {
	return Query[T](db).Where(column, id).First(ctx)
}

// ExistsByID reports whether a record with the given id exists
func ExistsByID[T any](ctx context.Context, db bun.IDB, column string, id int64) (bool, error) {
	return Query[T](db).Where(column, id).Exists(ctx)
}

// DeleteByID is a helper to delete a record by ID
func DeleteByID[T any](ctx context.Context, db bun.IDB, column string, id int64) (int, error) {
	return Query[T](db).Where(column, id).Delete(ctx)
}
