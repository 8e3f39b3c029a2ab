package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// upsertAttempts bounds transient-failure retries on writes.
const upsertAttempts = 3

// upsertRecord writes a record by table and id with retries.
func upsertRecord[T any](ctx context.Context, db *surrealdb.DB, table, id string, record *T) error {
	sql := "UPSERT $rid CONTENT $record"
	vars := map[string]any{
		"rid":    surrealmodels.NewRecordID(table, id),
		"record": record,
	}

	var lastErr error
	for attempt := 1; attempt <= upsertAttempts; attempt++ {
		_, err := surrealdb.Query[[]T](ctx, db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to upsert %s record after retries: %w", table, lastErr)
}

// selectRecord fetches a record by table and id; nil result means not found.
func selectRecord[T any](ctx context.Context, db *surrealdb.DB, table, id string) (*T, error) {
	record, err := surrealdb.Select[T](ctx, db, surrealmodels.NewRecordID(table, id))
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select %s record: %w", table, err)
	}
	return record, nil
}

// deleteRecord removes a record by table and id. A missing record is not an
// error.
func deleteRecord[T any](ctx context.Context, db *surrealdb.DB, table, id string) error {
	_, err := surrealdb.Delete[T](ctx, db, surrealmodels.NewRecordID(table, id))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete %s record: %w", table, err)
	}
	return nil
}

// queryRecords runs a filtered select and unwraps the first result set.
func queryRecords[T any](ctx context.Context, db *surrealdb.DB, sql string, vars map[string]any) ([]*T, error) {
	results, err := surrealdb.Query[[]T](ctx, db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	if results != nil && len(*results) > 0 {
		var mapped []*T
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}

// listByUser selects all of a user's records from a table.
func listByUser[T any](ctx context.Context, db *surrealdb.DB, table, userID string) ([]*T, error) {
	sql := fmt.Sprintf("SELECT * FROM %s WHERE user_id = $user_id", table)
	return queryRecords[T](ctx, db, sql, map[string]any{"user_id": userID})
}
