package handlers

import (
	"net/http"

	"PartnerApp/internal/config"
	"PartnerApp/internal/middleware"
	"PartnerApp/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// Services — зависимости хендлеров.
type Services struct {
	Auth     *service.AuthService
	Partner  *service.PartnerService
	Orders   *service.OrderService
	Earnings *service.EarningsService
}

// NewHandler разводящий для хендлеров
func NewHandler(svc Services, logger *zap.SugaredLogger, config *config.Config) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	authHandler := NewAuthHandler(svc.Auth, logger)
	partnerHandler := NewPartnerHandler(svc.Partner, logger)
	orderHandler := NewOrderHandler(svc.Orders, logger)
	earningsHandler := NewEarningsHandler(svc.Earnings, logger)

	r.Route("/partner", func(r chi.Router) {
		// Auth routes
		r.Post("/auth/send-otp", authHandler.SendOTP)
		r.Post("/auth/verify-otp", authHandler.VerifyOTP)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/refresh-token", authHandler.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/profile", partnerHandler.Profile)
			r.Put("/status", partnerHandler.UpdateStatus)
			r.Put("/location", partnerHandler.UpdateLocation)
			r.Post("/documents", partnerHandler.SubmitDocuments)
			r.Post("/bank-details", partnerHandler.SubmitBankDetails)
			r.Post("/training/complete", partnerHandler.CompleteTraining)

			r.Get("/orders", orderHandler.List)
			r.Post("/orders/{id}/accept", orderHandler.Accept)
			r.Post("/orders/{id}/reject", orderHandler.Reject)

			r.Get("/earnings/summary", earningsHandler.Summary)
			r.Get("/earnings/transactions", earningsHandler.Transactions)
			r.Get("/earnings/incentives", earningsHandler.Incentives)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "route not found")
	})

	return &Handler{Router: r}
}

// requireAuth отвечает 401, если WithAuth не распознал партнёра.
func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetPartnerIDFromContext(r.Context()); !ok {
			writeMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
