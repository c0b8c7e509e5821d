package localstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fitclub/internal/adapters/storage"
)

// SQLiteStore implements Store on the local_storage table.
type SQLiteStore struct {
	db storage.SQLDB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new local storage store.
// PRE: db has been migrated with storage.MigrateDB
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetItems implements Store.
// INVARIANT: Store state is not mutated
func (s *SQLiteStore) GetItems(ctx context.Context, browserID string, keys ...string) (map[string]string, error) {
	if browserID == "" {
		return nil, ErrEmptyBrowserID
	}
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	args := make([]any, 0, len(keys)+1)
	args = append(args, browserID)
	for _, k := range keys {
		args = append(args, k)
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value
		FROM local_storage
		WHERE browser_id = ? AND key IN (`+placeholders(len(keys))+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("get local_storage: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

// SetItems implements Store.
// POST: every item is upserted in a single transaction
func (s *SQLiteStore) SetItems(ctx context.Context, browserID string, items map[string]string) error {
	if browserID == "" {
		return ErrEmptyBrowserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for k, v := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO local_storage (browser_id, key, value, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(browser_id, key) DO UPDATE SET
				value=excluded.value,
				updated_at=excluded.updated_at
		`, browserID, k, v, now)
		if err != nil {
			return fmt.Errorf("save local_storage %q: %w", k, err)
		}
	}
	return tx.Commit()
}

// RemoveItems implements Store.
func (s *SQLiteStore) RemoveItems(ctx context.Context, browserID string, keys ...string) error {
	if browserID == "" {
		return ErrEmptyBrowserID
	}
	if len(keys) == 0 {
		return nil
	}
	args := make([]any, 0, len(keys)+1)
	args = append(args, browserID)
	for _, k := range keys {
		args = append(args, k)
	}
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM local_storage
		WHERE browser_id = ? AND key IN (`+placeholders(len(keys))+`)
	`, args...)
	if err != nil {
		return fmt.Errorf("delete local_storage: %w", err)
	}
	return nil
}

// touchInterval limits Touch to one write per browser per interval.
const touchInterval = time.Hour

// Touch implements Store.
// POST: updated_at of every entry of browserID is within touchInterval of now
func (s *SQLiteStore) Touch(ctx context.Context, browserID string) error {
	if browserID == "" {
		return ErrEmptyBrowserID
	}
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		UPDATE local_storage
		SET updated_at = ?
		WHERE browser_id = ? AND updated_at < ?
	`, now.Format(time.RFC3339), browserID, now.Add(-touchInterval).Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("touch local_storage: %w", err)
	}
	return nil
}

// PurgeBefore deletes entries not written since cutoff and returns how many went.
// PRE: cutoff is in the past
func (s *SQLiteStore) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM local_storage WHERE updated_at < ?`, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("purge local_storage: %w", err)
	}
	return res.RowsAffected()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
