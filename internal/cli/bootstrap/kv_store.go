package bootstrap

import (
	"fmt"
	"path/filepath"
	"sync"

	"PartnerApp/internal/cli/crypto"
	"PartnerApp/internal/cli/repo"
	fsrepo "PartnerApp/internal/cli/repo/fs"
	reposqlite "PartnerApp/internal/cli/repo/sqlite"
	"PartnerApp/internal/config"
)

// OpenKVStore открывает хранилище учётных данных выбранного бэкенда,
// выполняет миграции и возвращает (store, cleanup, error).
// cleanup можно вызывать повторно.
func OpenKVStore(cfg *config.Config) (repo.KVStore, func() error, error) {
	var (
		kv  repo.KVStore
		err error
	)
	switch cfg.StorageBackend {
	case config.StorageFS:
		dir := ""
		if cfg.ClientDBPath != "" {
			dir = filepath.Join(filepath.Dir(cfg.ClientDBPath), "kv")
		}
		kv, err = fsrepo.New(dir)
	default:
		kv, err = reposqlite.Open(cfg.ClientDBPath)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open %s storage: %w", cfg.StorageBackend, err)
	}
	if cfg.EncryptAtRest {
		sealed, err := sealKV(kv, cfg.ClientDBPath)
		if err != nil {
			_ = kv.Close()
			return nil, nil, fmt.Errorf("encrypted storage: %w", err)
		}
		kv = sealed
	}
	var once sync.Once
	var closeErr error
	cleanup := func() error {
		once.Do(func() { closeErr = kv.Close() })
		return closeErr
	}
	return kv, cleanup, nil
}

// sealKV оборачивает kv шифрованием; ключ устройства лежит рядом с БД клиента.
func sealKV(kv repo.KVStore, dbPath string) (repo.KVStore, error) {
	key, err := crypto.LoadOrCreateKey(filepath.Join(filepath.Dir(dbPath), crypto.KeyFileName))
	if err != nil {
		return nil, err
	}
	return crypto.NewSealedKV(kv, key)
}
