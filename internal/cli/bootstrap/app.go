package bootstrap

import (
	"fmt"
	"net/url"

	"PartnerApp/internal/cli/api"
	"PartnerApp/internal/cli/auth"
	"PartnerApp/internal/cli/netstatus"
	"PartnerApp/internal/cli/service"
	"PartnerApp/internal/config"

	"go.uber.org/zap"
)

// App — собранные зависимости CLI.
type App struct {
	Client   *api.Client
	Auth     service.AuthService
	Partner  service.PartnerService
	Orders   service.OrderService
	Earnings service.EarningsService

	logger  *zap.SugaredLogger
	cleanup func() error
}

// NewApp открывает хранилище и собирает API-клиент и сервисы.
// Вызывающий обязан вызвать Close.
func NewApp(cfg *config.Config, nav api.Navigator) (*App, error) {
	kv, cleanup, err := OpenKVStore(cfg)
	if err != nil {
		return nil, err
	}
	logger, err := NewLogger(cfg.Verbose)
	if err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client := api.NewFromConfig(cfg, auth.NewStore(kv), NewProbe(cfg), nav, logger)

	return &App{
		Client:   client,
		Auth:     service.NewAuthService(client),
		Partner:  service.NewPartnerService(client),
		Orders:   service.NewOrderService(client),
		Earnings: service.NewEarningsService(client),
		logger:   logger,
		cleanup:  cleanup,
	}, nil
}

// NewProbe выбирает проверку сети: TCP-dial к PROBE_ADDR, если он задан,
// иначе проверку локальных интерфейсов. Недоступный бэкенд при живой сети
// так остаётся ServerUnreachable, а не NoConnectivity.
func NewProbe(cfg *config.Config) netstatus.Probe {
	if cfg.ProbeAddr != "" {
		return netstatus.NewDialProbe(cfg.ProbeAddr, cfg.ProbeTimeout)
	}
	host := cfg.BaseURL
	if u, err := url.Parse(cfg.ServerURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return netstatus.NewInterfaceProbe(netstatus.IsLoopbackHost(host))
}

// Close сбрасывает логгер и закрывает хранилище.
func (a *App) Close() error {
	_ = a.logger.Sync()
	return a.cleanup()
}

// NewLogger возвращает development-логгер в режиме verbose и no-op иначе.
func NewLogger(verbose bool) (*zap.SugaredLogger, error) {
	if !verbose {
		return zap.NewNop().Sugar(), nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
