package handlers

import (
	"net/http"

	"PartnerApp/internal/model"
	"PartnerApp/internal/service"

	"go.uber.org/zap"
)

// AuthHandler обрабатывает вход по OTP и паролю, регистрацию и обмен refresh-токена.
type AuthHandler struct {
	AuthService *service.AuthService
	Logger      *zap.SugaredLogger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{AuthService: authService, Logger: logger}
}

type phoneRequest struct {
	Phone string `json:"phone"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	VehicleType string `json:"vehicleType"`
	City        string `json:"city"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type sendOTPResponse struct {
	Message   string `json:"message"`
	ExpiresIn int    `json:"expiresIn"`
}

type authResponse struct {
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
	Partner      *model.Partner `json:"partner"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req phoneRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ttl, err := h.AuthService.SendOTP(r.Context(), req.Phone)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sendOTPResponse{Message: "OTP sent", ExpiresIn: ttl})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.AuthService.VerifyOTP(r.Context(), req.Phone, req.OTP)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthResponse(s))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.AuthService.Login(r.Context(), req.Phone, req.Password)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthResponse(s))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.AuthService.Register(r.Context(), service.RegisterInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Password:    req.Password,
		VehicleType: req.VehicleType,
		City:        req.City,
	})
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	h.Logger.Infow("partner registered", "partner_id", s.Partner.ID)
	writeJSON(w, http.StatusCreated, toAuthResponse(s))
}

// RefreshToken не требует Bearer: клиент приходит сюда с истёкшим access-токеном.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	access, refresh, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenPairResponse{AccessToken: access, RefreshToken: refresh})
}

func toAuthResponse(s *service.Session) authResponse {
	return authResponse{AccessToken: s.AccessToken, RefreshToken: s.RefreshToken, Partner: s.Partner}
}
