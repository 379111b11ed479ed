package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			key TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
		// Every save keeps a snapshot so a bad import can be rolled back.
		`CREATE TABLE IF NOT EXISTS document_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL,
			body TEXT NOT NULL,
			item_count INTEGER NOT NULL DEFAULT 0,
			saved_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_document_history_key_id ON document_history(key, id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	alterStmts := []string{
		`ALTER TABLE document_history ADD COLUMN item_count INTEGER NOT NULL DEFAULT 0;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
