package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const queryTimeout = 5 * time.Second

// SQLiteStore хранит токен в таблице ключ-значение базы SQLite
type SQLiteStore struct {
	db   *sql.DB
	opts options
}

func OpenSQLite(path string, opts ...Option) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, fmt.Errorf("ошибка создания директории хранилища: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы %s: %w", path, err)
	}

	store, err := NewSQLiteStore(db, opts...)
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	return store, nil
}

// NewSQLiteStore создает хранилище поверх открытого соединения и
// инициализирует схему
func NewSQLiteStore(db *sql.DB, opts ...Option) (*SQLiteStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации схемы хранилища: %w", err)
	}

	return &SQLiteStore{
		db:   db,
		opts: newOptions(opts),
	}, nil
}

func (s *SQLiteStore) Save(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, TokenKey, token)

	s.opts.report(OpSave, err)
}

func (s *SQLiteStore) Load() string {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var token string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, TokenKey).Scan(&token)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.opts.report(OpLoad, err)
		}

		return ""
	}

	return token
}

func (s *SQLiteStore) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, TokenKey)

	s.opts.report(OpClear, err)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
