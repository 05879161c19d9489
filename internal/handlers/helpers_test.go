package handlers_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"PartnerApp/internal/cli/api"
	"PartnerApp/internal/cli/auth"
	"PartnerApp/internal/cli/netstatus"
	reposqlite "PartnerApp/internal/cli/repo/sqlite"
	cliservice "PartnerApp/internal/cli/service"
	"PartnerApp/internal/config"
	"PartnerApp/internal/handlers"
	"PartnerApp/internal/middleware"
	"PartnerApp/internal/repo"
	"PartnerApp/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	testSecret = "test-secret"
	devOTP     = "123456"
)

// newDevServer поднимает dev-бэкенд на временной SQLite.
func newDevServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()
	db, err := repo.InitDB(filepath.Join(t.TempDir(), "dev.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	partners := repo.NewPartnerRepository(db)
	tokens := repo.NewTokenRepository(db)
	orders := repo.NewOrderRepository(db)
	earnings := repo.NewEarningsRepository(db)
	issuer := middleware.NewJWTIssuer(testSecret, time.Minute)

	svcs := handlers.Services{
		Auth: service.NewAuthService(partners, tokens, issuer, service.NewDemoSeeder(orders, earnings),
			service.AuthOptions{DevOTP: devOTP, RefreshTTL: time.Hour}),
		Partner:  service.NewPartnerService(partners),
		Orders:   service.NewOrderService(orders),
		Earnings: service.NewEarningsService(earnings),
	}
	cfg := &config.Config{AuthSecret: testSecret}
	h := handlers.NewHandler(svcs, zap.NewNop().Sugar(), cfg)

	ts := httptest.NewServer(h.Router)
	t.Cleanup(ts.Close)
	return ts, db
}

// partnerApp — клиентская сторона поверх настоящего api.Client.
type partnerApp struct {
	kv       *reposqlite.KVStoreSQLite
	store    *auth.Store
	client   *api.Client
	auth     cliservice.AuthService
	partner  cliservice.PartnerService
	orders   cliservice.OrderService
	earnings cliservice.EarningsService
	navCalls atomic.Int32
}

func newPartnerApp(t *testing.T, baseURL string) *partnerApp {
	t.Helper()
	kv, err := reposqlite.Open(filepath.Join(t.TempDir(), "client.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	a := &partnerApp{kv: kv, store: auth.NewStore(kv)}
	nav := api.NavigatorFunc(func(context.Context, string) { a.navCalls.Add(1) })
	a.client = api.NewClient(api.Options{BaseURL: baseURL, Timeout: 5 * time.Second, AppVersion: "test"},
		a.store, netstatus.Static(true), nav)
	a.auth = cliservice.NewAuthService(a.client)
	a.partner = cliservice.NewPartnerService(a.client)
	a.orders = cliservice.NewOrderService(a.client)
	a.earnings = cliservice.NewEarningsService(a.client)
	return a
}
