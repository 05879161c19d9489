package handlers

import (
	"net/http"
	"strconv"

	"PartnerApp/internal/model"
	"PartnerApp/internal/service"

	"go.uber.org/zap"
)

type EarningsHandler struct {
	EarningsService *service.EarningsService
	Logger          *zap.SugaredLogger
}

func NewEarningsHandler(earningsService *service.EarningsService, logger *zap.SugaredLogger) *EarningsHandler {
	return &EarningsHandler{EarningsService: earningsService, Logger: logger}
}

type summaryResponse struct {
	Period          string  `json:"period"`
	TotalEarnings   float64 `json:"totalEarnings"`
	OrdersCompleted int64   `json:"ordersCompleted"`
	Incentives      float64 `json:"incentives"`
	Currency        string  `json:"currency"`
}

type transactionsResponse struct {
	Transactions []model.Transaction `json:"transactions"`
	Page         int                 `json:"page"`
	Limit        int                 `json:"limit"`
	Total        int64               `json:"total"`
}

type incentivesResponse struct {
	Incentives []model.Incentive `json:"incentives"`
}

func (h *EarningsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.EarningsService.Summary(r.Context(), partnerID(r), r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Period:          s.Period,
		TotalEarnings:   s.TotalEarnings,
		OrdersCompleted: s.OrdersCompleted,
		Incentives:      s.Incentives,
		Currency:        s.Currency,
	})
}

func (h *EarningsHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err1 := queryInt(q.Get("page"))
	limit, err2 := queryInt(q.Get("limit"))
	if err1 != nil || err2 != nil {
		writeMessage(w, http.StatusBadRequest, "page and limit must be integers")
		return
	}
	p, err := h.EarningsService.Transactions(r.Context(), partnerID(r), page, limit)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionsResponse{
		Transactions: p.Transactions,
		Page:         p.Page,
		Limit:        p.Limit,
		Total:        p.Total,
	})
}

func (h *EarningsHandler) Incentives(w http.ResponseWriter, r *http.Request) {
	items, err := h.EarningsService.Incentives(r.Context(), partnerID(r))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, incentivesResponse{Incentives: items})
}

// queryInt: пустое значение — 0 (значение по умолчанию сервиса).
func queryInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
