package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Storage backends for the client credential store.
const (
	StorageSQLite = "sqlite"
	StorageFS     = "fs"
)

type Config struct {
	// Dev-server settings
	DatabaseDSN string        `env:"DATABASE_URI"`
	AuthSecret  string        `env:"AUTH_SECRET"`
	AccessTTL   time.Duration `env:"ACCESS_TTL"`
	RefreshTTL  time.Duration `env:"REFRESH_TTL"`
	DevOTP      string        `env:"DEV_OTP"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL      string        `env:"-"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	ProbeAddr      string        `env:"PROBE_ADDR"`
	ProbeTimeout   time.Duration `env:"PROBE_TIMEOUT"`
	ClientDBPath   string        `env:"CLIENT_DB_PATH"`
	StorageBackend string        `env:"STORAGE_BACKEND"`
	EncryptAtRest  bool          `env:"ENCRYPT_CREDENTIALS"`
	AppVersion     string        `env:"APP_VERSION"`
	BuildNumber    string        `env:"BUILD_NUMBER"`
	Platform       string        `env:"PLATFORM"`
	Verbose        bool          `env:"VERBOSE"`
	Version        bool          `env:"-"` // show client version and exit (flag only)
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags переопределяют значения из env
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres DSN или путь к sqlite)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.DevOTP, "dev-otp", cfg.DevOTP, "фиксированный OTP dev-сервера")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address of the partner API (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "request timeout")
	flag.StringVar(&cfg.ClientDBPath, "client-db", cfg.ClientDBPath, "path to client SQLite DB")
	flag.StringVar(&cfg.StorageBackend, "storage", cfg.StorageBackend, "credential storage backend: sqlite|fs")
	flag.BoolVar(&cfg.EncryptAtRest, "encrypt", cfg.EncryptAtRest, "encrypt stored credentials with a device key")
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 30 * 24 * time.Hour
	}
	if cfg.DevOTP == "" {
		cfg.DevOTP = "123456"
	}

	// BaseURL должен быть в виде "address:port" (без схемы и пути), иначе берём дефолт.
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}
	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 2 * time.Second
	}
	if cfg.StorageBackend != StorageFS {
		cfg.StorageBackend = StorageSQLite
	}
	if cfg.AppVersion == "" {
		cfg.AppVersion = "dev"
	}
	if cfg.BuildNumber == "" {
		cfg.BuildNumber = "0"
	}
	if cfg.Platform == "" {
		cfg.Platform = "cli-" + runtime.GOOS
	}

	if cfg.ClientDBPath == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.ClientDBPath = filepath.Join(dir, "PartnerApp", "client.sqlite")
		} else {
			home, _ := os.UserHomeDir()
			cfg.ClientDBPath = filepath.Join(home, ".partnerapp.sqlite")
		}
	}
}
