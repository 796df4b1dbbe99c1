package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// placesTables are the tables the bookmark query reads from.
var placesTables = []string{"moz_places", "moz_bookmarks"}

// verifyPlacesSchema checks that every table the bookmark query needs exists.
func verifyPlacesSchema(ctx context.Context, db *sql.DB) error {
	for _, table := range placesTables {
		ok, err := hasTable(ctx, db, table)
		if err != nil {
			return fmt.Errorf("check table %s: %w", table, err)
		}
		if !ok {
			return fmt.Errorf("table %s not found", table)
		}
	}
	return nil
}

func hasTable(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
