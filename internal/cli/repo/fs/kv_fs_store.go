package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"PartnerApp/internal/cli/repo"
)

// KVStoreFS — файловое key-value хранилище: один файл на ключ в каталоге dir.
type KVStoreFS struct {
	dir string
}

var _ repo.KVStore = (*KVStoreFS)(nil)

var keyRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// DefaultDir возвращает каталог хранилища в пользовательском конфиг-каталоге.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "PartnerApp", "kv"), nil
}

// New создаёт хранилище в каталоге dir (пустой dir — каталог по умолчанию).
func New(dir string) (*KVStoreFS, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &KVStoreFS{dir: dir}, nil
}

func (s *KVStoreFS) path(key string) (string, error) {
	if !keyRe.MatchString(key) {
		return "", fmt.Errorf("invalid key: %q", key)
	}
	return filepath.Join(s.dir, key), nil
}

// Get читает значение из файла ключа.
func (s *KVStoreFS) Get(_ context.Context, key string) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	for len(b) > 0 {
		c := b[len(b)-1]
		if c == '\n' || c == '\r' || c == ' ' || c == '\t' {
			b = b[:len(b)-1]
			continue
		}
		break
	}
	return string(b), nil
}

// Set записывает значение через временный файл и rename.
func (s *KVStoreFS) Set(_ context.Context, key, value string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	tmp, err := s.writeTemp(key, value)
	if err != nil {
		return err
	}
	return rename(tmp, p)
}

// Remove удаляет файл ключа.
func (s *KVStoreFS) Remove(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// rename подменяется в тестах.
var rename = os.Rename

// MultiSet сначала пишет все значения во временные файлы и только потом
// переименовывает их. Если переименование падает на середине, уже
// заменённые ключи возвращаются к прежним значениям (или удаляются).
func (s *KVStoreFS) MultiSet(_ context.Context, values map[string]string) error {
	temps := make(map[string]string, len(values))
	cleanup := func() {
		for _, tmp := range temps {
			_ = os.Remove(tmp)
		}
	}
	for k, v := range values {
		if _, err := s.path(k); err != nil {
			cleanup()
			return err
		}
		tmp, err := s.writeTemp(k, v)
		if err != nil {
			cleanup()
			return err
		}
		temps[k] = tmp
	}

	prev := make(map[string]*string, len(temps))
	for k := range temps {
		p, _ := s.path(k)
		b, err := os.ReadFile(p)
		switch {
		case errors.Is(err, os.ErrNotExist):
			prev[k] = nil
		case err != nil:
			cleanup()
			return err
		default:
			v := string(b)
			prev[k] = &v
		}
	}

	var done []string
	for k, tmp := range temps {
		p, _ := s.path(k)
		if err := rename(tmp, p); err != nil {
			cleanup()
			if rerr := s.restore(done, prev); rerr != nil {
				return errors.Join(err, fmt.Errorf("rollback: %w", rerr))
			}
			return err
		}
		done = append(done, k)
	}
	return nil
}

// restore возвращает ключам значения, снятые до MultiSet.
func (s *KVStoreFS) restore(keys []string, prev map[string]*string) error {
	var errs []error
	for _, k := range keys {
		p, _ := s.path(k)
		if prev[k] == nil {
			if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, err)
			}
			continue
		}
		tmp, err := s.writeTemp(k, *prev[k])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := rename(tmp, p); err != nil {
			_ = os.Remove(tmp)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MultiRemove удаляет файлы всех ключей.
func (s *KVStoreFS) MultiRemove(ctx context.Context, keys ...string) error {
	var errs []error
	for _, k := range keys {
		if err := s.Remove(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close ничего не делает: файлы не держатся открытыми.
func (s *KVStoreFS) Close() error { return nil }

func (s *KVStoreFS) writeTemp(key, value string) (string, error) {
	f, err := os.CreateTemp(s.dir, "."+key+".tmp-*")
	if err != nil {
		return "", err
	}
	if err := f.Chmod(0o600); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if _, err := f.WriteString(value); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
