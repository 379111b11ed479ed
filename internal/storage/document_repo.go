package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	MainDocumentKey = "main"

	// DefaultHistoryLimit is how many snapshots are kept per document.
	DefaultHistoryLimit = 20
)

// DocumentRepo persists the document in sqlite. Each save replaces the
// current row and appends a history snapshot in the same transaction.
type DocumentRepo struct {
	db           *sql.DB
	key          string
	historyLimit int
	now          func() time.Time
}

func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{
		db:           db,
		key:          MainDocumentKey,
		historyLimit: DefaultHistoryLimit,
		now:          time.Now,
	}
}

// WithHistoryLimit sets how many snapshots survive pruning. Zero disables history.
func (r *DocumentRepo) WithHistoryLimit(n int) *DocumentRepo {
	if n < 0 {
		n = 0
	}
	r.historyLimit = n
	return r
}

// Load returns nil, nil when nothing has been saved yet.
func (r *DocumentRepo) Load(ctx context.Context) (*Document, error) {
	row := r.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = ?`, r.key)

	var body string
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("document get: %w", err)
	}
	return UnmarshalDocument([]byte(body))
}

func (r *DocumentRepo) Save(ctx context.Context, doc *Document) error {
	if doc == nil {
		return errors.New("document save: nil document")
	}
	data, err := MarshalDocument(doc)
	if err != nil {
		return err
	}
	now := r.now().UTC()

	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
		`, r.key, string(data), now); err != nil {
			return fmt.Errorf("document upsert: %w", err)
		}
		if r.historyLimit == 0 {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO document_history (key, body, item_count, saved_at) VALUES (?, ?, ?, ?)
		`, r.key, string(data), len(doc.Items), now); err != nil {
			return fmt.Errorf("history insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM document_history
			WHERE key = ? AND id NOT IN (
				SELECT id FROM document_history WHERE key = ? ORDER BY id DESC LIMIT ?
			)
		`, r.key, r.key, r.historyLimit); err != nil {
			return fmt.Errorf("history prune: %w", err)
		}
		return nil
	})
}

// History lists snapshots, newest first.
func (r *DocumentRepo) History(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = r.historyLimit
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, saved_at, item_count
		FROM document_history
		WHERE key = ?
		ORDER BY id DESC
		LIMIT ?
	`, r.key, limit)
	if err != nil {
		return nil, fmt.Errorf("history list: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.SavedAt, &s.Items); err != nil {
			return nil, fmt.Errorf("history scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history rows: %w", err)
	}
	return out, nil
}

// Snapshot loads one history entry. It returns nil, nil for an unknown id.
func (r *DocumentRepo) Snapshot(ctx context.Context, id int64) (*Document, error) {
	row := r.db.QueryRowContext(ctx, `SELECT body FROM document_history WHERE key = ? AND id = ?`, r.key, id)

	var body string
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("history get: %w", err)
	}
	return UnmarshalDocument([]byte(body))
}
