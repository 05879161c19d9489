package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"PartnerApp/internal/config"
	"PartnerApp/internal/handlers"
	"PartnerApp/internal/middleware"
	"PartnerApp/internal/repo"
	"PartnerApp/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	partnerRepo := repo.NewPartnerRepository(gormDB)
	tokenRepo := repo.NewTokenRepository(gormDB)
	orderRepo := repo.NewOrderRepository(gormDB)
	earningsRepo := repo.NewEarningsRepository(gormDB)

	issuer := middleware.NewJWTIssuer(cfg.AuthSecret, cfg.AccessTTL)
	seeder := service.NewDemoSeeder(orderRepo, earningsRepo)

	h := handlers.NewHandler(handlers.Services{
		Auth: service.NewAuthService(partnerRepo, tokenRepo, issuer, seeder, service.AuthOptions{
			DevOTP:     cfg.DevOTP,
			RefreshTTL: cfg.RefreshTTL,
		}),
		Partner:  service.NewPartnerService(partnerRepo),
		Orders:   service.NewOrderService(orderRepo),
		Earnings: service.NewEarningsService(earningsRepo),
	}, sugar, cfg)

	addr := cfg.BaseURL
	srv := &http.Server{Addr: addr, Handler: h.Router, ReadHeaderTimeout: 10 * time.Second}

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"Postgres", repo.IsPostgresDSN(cfg.DatabaseDSN),
		"AccessTTL", cfg.AccessTTL,
		"RefreshTTL", cfg.RefreshTTL,
	)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
}
