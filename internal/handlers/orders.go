package handlers

import (
	"errors"
	"io"
	"net/http"

	"PartnerApp/internal/model"
	"PartnerApp/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	OrderService *service.OrderService
	Logger       *zap.SugaredLogger
}

func NewOrderHandler(orderService *service.OrderService, logger *zap.SugaredLogger) *OrderHandler {
	return &OrderHandler{OrderService: orderService, Logger: logger}
}

type ordersResponse struct {
	Orders []model.Order `json:"orders"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.OrderService.List(r.Context(), partnerID(r), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ordersResponse{Orders: orders})
}

func (h *OrderHandler) Accept(w http.ResponseWriter, r *http.Request) {
	o, err := h.OrderService.Accept(r.Context(), partnerID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// Reject принимает пустое тело: причина необязательна.
func (h *OrderHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if err := decodeOptional(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	o, err := h.OrderService.Reject(r.Context(), partnerID(r), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func decodeOptional(r *http.Request, v any) error {
	err := jsonDecoder(r).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
