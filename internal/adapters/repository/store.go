package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/patroldesk/core/internal/infrastructure/database"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

// SQLStore persists records as key/value rows in the records table.
type SQLStore struct {
	db     *database.DB
	logger *logger.Logger
}

// NewSQLStore creates a new SQLite-backed record store
func NewSQLStore(db *database.DB, logger *logger.Logger) *SQLStore {
	return &SQLStore{
		db:     db,
		logger: logger,
	}
}

// Get retrieves the raw value stored under key
func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.DB.GetContext(ctx, &value, "SELECT value FROM records WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read record %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any existing value
func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.DB.ExecContext(ctx, `
		INSERT INTO records (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write record %q: %w", key, err)
	}
	return nil
}

// Delete removes the record under key; deleting a missing key is not an error
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.DB.ExecContext(ctx, "DELETE FROM records WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete record %q: %w", key, err)
	}
	return nil
}

// Keys lists all record keys starting with prefix
func (s *SQLStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.db.DB.SelectContext(ctx, &keys,
		"SELECT key FROM records WHERE key LIKE ? || '%' ORDER BY key", prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list record keys: %w", err)
	}
	return keys, nil
}

var _ ports.Store = (*SQLStore)(nil)
