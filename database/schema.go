package database

import (
	"context"
	"fmt"
	"velvetbite_server/structs/tables"
)

// EnsureSchema creates the application tables if they do not exist yet. The
// aggregates keep their sub-documents in jsonb columns, so there are no child
// tables to manage.
func EnsureSchema(ctx context.Context, db *DB) error {
	models := []any{
		(*tables.Product)(nil),
		(*tables.Order)(nil),
	}

	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}

	return nil
}
