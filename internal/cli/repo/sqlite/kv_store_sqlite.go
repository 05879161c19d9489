package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"PartnerApp/internal/cli/repo"

	_ "modernc.org/sqlite"
)

// KVStoreSQLite — key-value хранилище клиента поверх локальной БД SQLite.
type KVStoreSQLite struct {
	db *sql.DB
}

var _ repo.KVStore = (*KVStoreSQLite)(nil)

// Open открывает (и создаёт при необходимости) файл БД по указанному пути
// и применяет миграции.
func Open(path string) (*KVStoreSQLite, error) {
	if path == "" {
		return nil, errors.New("empty sqlite path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// одна запись за раз: SQLite не любит конкурентных писателей
	db.SetMaxOpenConns(1)
	s := &KVStoreSQLite{db: db}
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate гарантирует наличие необходимых таблиц.
func (s *KVStoreSQLite) Migrate() error {
	_, err := s.db.Exec(initialDDL())
	return err
}

// Close закрывает соединение с БД.
func (s *KVStoreSQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

const upsertSQL = `INSERT INTO kv(key, value, updated_at) VALUES(?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// Get возвращает значение по ключу.
func (s *KVStoreSQLite) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// Set сохраняет значение по ключу.
func (s *KVStoreSQLite) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("empty key")
	}
	_, err := s.db.ExecContext(ctx, upsertSQL, key, value, time.Now().Unix())
	return err
}

// Remove удаляет ключ.
func (s *KVStoreSQLite) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

// MultiSet сохраняет все пары в одной транзакции.
func (s *KVStoreSQLite) MultiSet(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		// после Commit откат ничего не делает
		_ = tx.Rollback()
	}()

	now := time.Now().Unix()
	for k, v := range values {
		if k == "" {
			return errors.New("empty key")
		}
		if _, err := tx.ExecContext(ctx, upsertSQL, k, v, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// MultiRemove удаляет ключи в одной транзакции.
func (s *KVStoreSQLite) MultiRemove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, k); err != nil {
			return err
		}
	}
	return tx.Commit()
}
