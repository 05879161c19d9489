package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"PartnerApp/internal/service"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError переводит ошибку сервиса в HTTP-статус. Неизвестные ошибки — 500
// без подробностей в ответе.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, service.ErrOrderState):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrTooManyAttempts):
		status = http.StatusTooManyRequests
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefreshToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotActive):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrPhoneTaken):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		logger.Errorw("request failed", "error", err)
		writeMessage(w, status, "internal server error")
		return
	}
	writeMessage(w, status, err.Error())
}

// decodeJSON читает тело запроса в v; при ошибке сам пишет 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := jsonDecoder(r).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func jsonDecoder(r *http.Request) *json.Decoder {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
}
