package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// KV is a string key/value table on top of sqlite.
type KV struct {
	db   *sql.DB
	path string
}

// OpenKV opens the database at path for key/value use.
func OpenKV(path string) (*KV, error) {
	dbh, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return &KV{db: dbh, path: path}, nil
}

// Path is the database file.
func (k *KV) Path() string { return k.path }

func (k *KV) Get(key string) (string, bool, error) {
	var v string
	err := k.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

func (k *KV) Set(key, value string) error {
	_, err := k.db.Exec(`
		INSERT INTO kv(key, value, updated_at) VALUES(?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (k *KV) Delete(key string) error {
	if _, err := k.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (k *KV) Close() error {
	if k.db == nil {
		return nil
	}
	return k.db.Close()
}
