package config

import (
	"flag"
	"os"
	"strings"
	"testing"
	"time"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
func resetFlagSet(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(os.Stderr)
	old := os.Args
	os.Args = []string{old[0]}
	t.Cleanup(func() { os.Args = old })
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATABASE_URI", "AUTH_SECRET", "ACCESS_TTL", "REFRESH_TTL", "DEV_OTP",
		"BASE_URL", "ENABLE_HTTPS", "REQUEST_TIMEOUT", "PROBE_ADDR", "PROBE_TIMEOUT",
		"CLIENT_DB_PATH", "STORAGE_BACKEND", "APP_VERSION", "BUILD_NUMBER", "PLATFORM", "VERBOSE", "ENCRYPT_CREDENTIALS",
	} {
		t.Setenv(k, "")
	}
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	clearEnv(t)
	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.AuthSecret != "dev-secret-key" {
		t.Fatalf("AuthSecret default expected 'dev-secret-key', got %q", cfg.AuthSecret)
	}
	if cfg.BaseURL != "localhost:8081" {
		t.Fatalf("BaseURL default expected 'localhost:8081', got %q", cfg.BaseURL)
	}
	if cfg.ServerURL != "http://localhost:8081" {
		t.Fatalf("ServerURL default expected 'http://localhost:8081', got %q", cfg.ServerURL)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("RequestTimeout default expected 15s, got %s", cfg.RequestTimeout)
	}
	if cfg.ProbeAddr != "" {
		t.Fatalf("ProbeAddr must stay empty unless set (interface check), got %q", cfg.ProbeAddr)
	}
	if cfg.StorageBackend != StorageSQLite {
		t.Fatalf("StorageBackend default expected sqlite, got %q", cfg.StorageBackend)
	}
	if !strings.HasPrefix(cfg.Platform, "cli-") {
		t.Fatalf("Platform default expected cli-<os>, got %q", cfg.Platform)
	}
	if cfg.ClientDBPath == "" || cfg.DevOTP != "123456" {
		t.Fatalf("client defaults must be set: ClientDBPath=%q DevOTP=%q", cfg.ClientDBPath, cfg.DevOTP)
	}
}

func TestNewConfig_BaseURLAndHTTPS(t *testing.T) {
	clearEnv(t)
	t.Setenv("BASE_URL", "api.example.com:443")
	t.Setenv("ENABLE_HTTPS", "true")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("STORAGE_BACKEND", "fs")
	t.Setenv("APP_VERSION", "2.4.1")
	t.Setenv("BUILD_NUMBER", "57")
	t.Setenv("ENCRYPT_CREDENTIALS", "true")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.ServerURL != "https://api.example.com:443" {
		t.Fatalf("ServerURL expected 'https://api.example.com:443', got %q", cfg.ServerURL)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("RequestTimeout expected 3s, got %s", cfg.RequestTimeout)
	}
	if cfg.StorageBackend != StorageFS {
		t.Fatalf("StorageBackend expected fs, got %q", cfg.StorageBackend)
	}
	if !cfg.EncryptAtRest {
		t.Fatalf("EncryptAtRest expected from env")
	}
	if cfg.AppVersion != "2.4.1" || cfg.BuildNumber != "57" {
		t.Fatalf("version headers from env expected, got %q/%q", cfg.AppVersion, cfg.BuildNumber)
	}
}

func TestNewConfig_InvalidBaseURLFallback(t *testing.T) {
	clearEnv(t)
	// Невалидный BASE_URL (со схемой) должен откатиться на localhost:8081
	t.Setenv("BASE_URL", "http://bad:8080")
	t.Setenv("STORAGE_BACKEND", "redis")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "localhost:8081" {
		t.Fatalf("invalid BASE_URL must fallback to 'localhost:8081', got %q", cfg.BaseURL)
	}
	if !strings.HasPrefix(cfg.ServerURL, "http://localhost:8081") {
		t.Fatalf("ServerURL must reflect fallback base, got %q", cfg.ServerURL)
	}
	if cfg.StorageBackend != StorageSQLite {
		t.Fatalf("unknown backend must fallback to sqlite, got %q", cfg.StorageBackend)
	}
}
