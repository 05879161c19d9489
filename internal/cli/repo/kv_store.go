package repo

import (
	"context"
	"errors"
)

// ErrNotFound возвращается, если ключ отсутствует в хранилище.
var ErrNotFound = errors.New("key not found")

// KVStore описывает долговременное key-value хранилище клиента.
type KVStore interface {
	// Get возвращает значение по ключу или ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set сохраняет значение по ключу (перезаписывает существующее).
	Set(ctx context.Context, key, value string) error

	// Remove удаляет ключ. Отсутствие ключа ошибкой не считается.
	Remove(ctx context.Context, key string) error

	// MultiSet атомарно сохраняет набор пар ключ/значение.
	MultiSet(ctx context.Context, values map[string]string) error

	// MultiRemove атомарно удаляет набор ключей.
	MultiRemove(ctx context.Context, keys ...string) error

	// Close освобождает ресурсы хранилища.
	Close() error
}
