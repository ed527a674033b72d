package kvstore

import (
	"context"
	"database/sql"
	"fmt"
)

// MySQLStore implements Store on a shared MySQL server, for deployments
// where the gateway runs on more than one host and the offline cache should
// be shared between them. The connection is owned by the caller, matching
// how the rest of the application hands *sql.DB into repositories.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore creates a MySQL-backed store on an already-open connection
// and ensures the backing table exists.
func NewMySQLStore(db *sql.DB) (*MySQLStore, error) {
	query := `
	CREATE TABLE IF NOT EXISTS travio_kv (
		` + "`key`" + ` VARCHAR(191) PRIMARY KEY,
		value LONGTEXT NOT NULL,
		updated_at DATETIME NOT NULL
	)`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}
	return &MySQLStore{db: db}, nil
}

// Get retrieves the value stored under key.
func (s *MySQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM travio_kv WHERE `key` = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return []byte(value), nil
}

// Set stores value under key, replacing any previous value in full.
func (s *MySQLStore) Set(ctx context.Context, key string, value []byte) error {
	query := "INSERT INTO travio_kv (`key`, value, updated_at) VALUES (?, ?, NOW())" +
		" ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = NOW()"

	if _, err := s.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Stats reports every stored key with its value size.
func (s *MySQLStore) Stats(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT `key`, LENGTH(value) FROM travio_kv")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]int64)
	for rows.Next() {
		var key string
		var size int64
		if err := rows.Scan(&key, &size); err != nil {
			return nil, err
		}
		stats[key] = size
	}
	return stats, rows.Err()
}

// Close closes the database connection.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}

// Ensure MySQLStore implements Store
var _ Store = (*MySQLStore)(nil)
