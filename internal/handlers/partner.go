package handlers

import (
	"net/http"

	"PartnerApp/internal/middleware"
	"PartnerApp/internal/model"
	"PartnerApp/internal/service"

	"go.uber.org/zap"
)

type PartnerHandler struct {
	PartnerService *service.PartnerService
	Logger         *zap.SugaredLogger
}

func NewPartnerHandler(partnerService *service.PartnerService, logger *zap.SugaredLogger) *PartnerHandler {
	return &PartnerHandler{PartnerService: partnerService, Logger: logger}
}

type statusRequest struct {
	IsOnline bool `json:"isOnline"`
}

type locationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type documentsRequest struct {
	Documents []model.Document `json:"documents"`
}

type trainingRequest struct {
	ModuleID string `json:"moduleId"`
}

// partnerID вызывается только за requireAuth.
func partnerID(r *http.Request) string {
	id, _ := middleware.GetPartnerIDFromContext(r.Context())
	return id
}

func (h *PartnerHandler) respond(w http.ResponseWriter, p *model.Partner, err error) {
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PartnerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.PartnerService.Profile(r.Context(), partnerID(r))
	h.respond(w, p, err)
}

func (h *PartnerHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.PartnerService.UpdateStatus(r.Context(), partnerID(r), req.IsOnline)
	h.respond(w, p, err)
}

func (h *PartnerHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.PartnerService.UpdateLocation(r.Context(), partnerID(r), req.Latitude, req.Longitude)
	h.respond(w, p, err)
}

func (h *PartnerHandler) SubmitDocuments(w http.ResponseWriter, r *http.Request) {
	var req documentsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.PartnerService.SubmitDocuments(r.Context(), partnerID(r), req.Documents)
	h.respond(w, p, err)
}

func (h *PartnerHandler) SubmitBankDetails(w http.ResponseWriter, r *http.Request) {
	var req model.BankAccount
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.PartnerService.SubmitBankDetails(r.Context(), partnerID(r), req)
	h.respond(w, p, err)
}

func (h *PartnerHandler) CompleteTraining(w http.ResponseWriter, r *http.Request) {
	var req trainingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.PartnerService.CompleteTraining(r.Context(), partnerID(r), req.ModuleID)
	h.respond(w, p, err)
}
