package crypto

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"PartnerApp/internal/cli/repo"
)

// keyLen — длина ключа для AES‑256 (в байтах).
const keyLen = 32

// KeyFileName — файл ключа устройства рядом с хранилищем учётных данных.
const KeyFileName = "key.bin"

// ErrCorrupt — значение в хранилище не расшифровывается текущим ключом.
var ErrCorrupt = errors.New("sealed value cannot be decrypted")

// LoadOrCreateKey загружает ключ устройства из path или создаёт новый случайный.
func LoadOrCreateKey(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("empty key path")
	}
	if b, err := os.ReadFile(path); err == nil {
		if len(b) != keyLen {
			return nil, errors.New("invalid key length")
		}
		return b, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	// записываем с ограниченными правами доступа
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, err
	}
	return key, nil
}

// Encrypt шифрует данные plain с помощью AES‑GCM и заданного ключа.
// Возвращает шифртекст и nonce.
func Encrypt(plain []byte, key []byte) ([]byte, []byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, err
	}
	return gcm.Seal(nil, nonce, plain, nil), nonce, nil
}

// Decrypt расшифровывает шифртекст с использованием AES‑GCM, ключа и nonce.
func Decrypt(ciphertext, nonce, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, errors.New("invalid nonce size")
	}
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// SealedKV шифрует значения перед записью во внутреннее хранилище.
// Ключи хранятся открыто; значение — base64(nonce || ciphertext),
// имя ключа аутентифицируется вместе с ним.
type SealedKV struct {
	inner repo.KVStore
	key   []byte
}

var _ repo.KVStore = (*SealedKV)(nil)

// NewSealedKV оборачивает inner. Ключ должен быть длиной 32 байта.
func NewSealedKV(inner repo.KVStore, key []byte) (*SealedKV, error) {
	if len(key) != keyLen {
		return nil, errors.New("invalid key length")
	}
	return &SealedKV{inner: inner, key: key}, nil
}

// seal шифрует value; имя ключа идёт в AAD, поэтому значение нельзя
// переложить под другой ключ.
func (s *SealedKV) seal(key, value string) (string, error) {
	gcm, err := newGCM(s.key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(gcm.Seal(nonce, nonce, []byte(value), []byte(key))), nil
}

func (s *SealedKV) open(key, raw string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", ErrCorrupt
	}
	gcm, err := newGCM(s.key)
	if err != nil {
		return "", err
	}
	ns := gcm.NonceSize()
	if len(b) < ns {
		return "", ErrCorrupt
	}
	plain, err := gcm.Open(nil, b[:ns], b[ns:], []byte(key))
	if err != nil {
		return "", ErrCorrupt
	}
	return string(plain), nil
}

func (s *SealedKV) Get(ctx context.Context, key string) (string, error) {
	raw, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}
	v, err := s.open(key, raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func (s *SealedKV) Set(ctx context.Context, key, value string) error {
	sealed, err := s.seal(key, value)
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *SealedKV) MultiSet(ctx context.Context, values map[string]string) error {
	sealed := make(map[string]string, len(values))
	for k, v := range values {
		sv, err := s.seal(k, v)
		if err != nil {
			return err
		}
		sealed[k] = sv
	}
	return s.inner.MultiSet(ctx, sealed)
}

func (s *SealedKV) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, key)
}

func (s *SealedKV) MultiRemove(ctx context.Context, keys ...string) error {
	return s.inner.MultiRemove(ctx, keys...)
}

func (s *SealedKV) Close() error { return s.inner.Close() }
