package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// All executes the query and returns all matching records with automatic retry
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var data []T
	err := q.run(ctx, func() error {
		data = nil // Reset on retry
		return q.buildSelect(&data).Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	if data == nil {
		data = []T{}
	}
	return data, nil
}

// First returns the first matching record, or nil when nothing matches
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var data T
	err := q.run(ctx, func() error {
		return q.buildSelect(&data).Limit(1).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return &data, nil
}

// Count returns the number of matching records. Relations are not loaded.
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var count int
	err := q.run(ctx, func() error {
		var model T
		query := applyWheres(q.db.NewSelect().Model(&model), q.wheres)
		var err error
		count, err = query.Count(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Exists checks if any records match the query
func (q *QueryBuilder[T]) Exists(ctx context.Context) (bool, error) {
	count, err := q.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert inserts a new record; generated columns listed in Returning are scanned back
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := q.run(ctx, func() error {
		query := q.db.NewInsert().Model(data)
		for _, col := range q.returning {
			query = query.Returning(col)
		}
		_, err := query.Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// InsertMany inserts multiple records in one statement
func (q *QueryBuilder[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	start := time.Now()

	if len(data) == 0 {
		return data, nil
	}

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := q.run(ctx, func() error {
		query := q.db.NewInsert().Model(&data)
		for _, col := range q.returning {
			query = query.Returning(col)
		}
		_, err := query.Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute bulk insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Update sets the given columns on every record matching the query
func (q *QueryBuilder[T]) Update(ctx context.Context, data map[string]any) (int, error) {
	start := time.Now()

	if len(q.wheres) == 0 {
		return 0, fmt.Errorf("refusing to update without a WHERE clause")
	}
	if len(data) == 0 {
		return 0, nil
	}

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var rowsAffected int64
	err := q.run(ctx, func() error {
		var model T
		query := applyWheres(q.db.NewUpdate().Model(&model), q.wheres)
		for key, value := range data {
			query = query.Set("? = ?", bun.Ident(key), value)
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// Delete deletes records matching the query
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	start := time.Now()

	if len(q.wheres) == 0 {
		return 0, fmt.Errorf("refusing to delete without a WHERE clause")
	}

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var rowsAffected int64
	err := q.run(ctx, func() error {
		var model T
		query := applyWheres(q.db.NewDelete().Model(&model), q.wheres)

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// buildSelect builds a select bound to dest, which is a *T or *[]T.
func (q *QueryBuilder[T]) buildSelect(dest any) *bun.SelectQuery {
	query := q.db.NewSelect().Model(dest)

	for _, rel := range q.relations {
		query = query.Relation(rel.name, rel.apply...)
	}

	query = applyWheres(query, q.wheres)

	for _, order := range q.orders {
		query = query.OrderExpr(fmt.Sprintf("%s %s", order.Column, order.Direction))
	}

	if q.limitVal != nil {
		query = query.Limit(*q.limitVal)
	}

	return query
}

type whereQuery[Q any] interface {
	Where(query string, args ...any) Q
}

// applyWheres works for select, update and delete queries alike.
func applyWheres[Q whereQuery[Q]](query Q, wheres []*WhereClause) Q {
	for _, where := range wheres {
		if where.IsRaw {
			query = query.Where(where.RawSQL, where.RawArgs...)
			continue
		}
		switch where.Operator {
		case "IS NULL", "IS NOT NULL":
			query = query.Where(fmt.Sprintf("%s %s", where.Column, where.Operator))
		default:
			query = query.Where(fmt.Sprintf("%s %s ?", where.Column, where.Operator), where.Value)
		}
	}
	return query
}
