package db

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS comments (
		id         INTEGER  PRIMARY KEY AUTOINCREMENT,
		name       TEXT     NOT NULL,
		email      TEXT     NOT NULL,
		message    TEXT     NOT NULL,
		rating     INTEGER  CHECK (rating IS NULL OR (rating >= 1 AND rating <= 5)),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	// Column additions (idempotent, checks if column exists first)
	columnMigrations := []struct {
		table, column, definition string
	}{
		{"comments", "remote_addr", "TEXT NOT NULL DEFAULT ''"},
	}

	for _, cm := range columnMigrations {
		if err := addColumnIfNotExists(db, cm.table, cm.column, cm.definition); err != nil {
			return fmt.Errorf("adding %s.%s: %w", cm.table, cm.column, err)
		}
	}

	return nil
}

// addColumnIfNotExists adds a column to a table if it doesn't already exist.
func addColumnIfNotExists(db *sql.DB, table, column, definition string) error {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return fmt.Errorf("checking table info: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			slog.Warn("closing rows", "error", cerr)
		}
	}()

	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("scanning column info: %w", err)
		}
		if name == column {
			return nil // column already exists
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating columns: %w", err)
	}

	_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}
