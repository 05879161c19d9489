package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"PartnerApp/internal/cli/auth"
	"PartnerApp/internal/cli/model"
)

const (
	pathSendOTP   = "/partner/auth/send-otp"
	pathVerifyOTP = "/partner/auth/verify-otp"
	pathLogin     = "/partner/auth/login"
	pathRegister  = "/partner/auth/register"
)

var otpRe = regexp.MustCompile(`^[0-9]{4,8}$`)

// AuthService описывает юзкейс-уровень аутентификации партнёра для CLI.
type AuthService interface {
	// SendOTP запрашивает одноразовый код на телефон.
	SendOTP(ctx context.Context, phone string) (*model.SendOTPResponse, error)
	// VerifyOTP подтверждает код и сохраняет выданную пару токенов.
	VerifyOTP(ctx context.Context, phone, otp string) (*model.AuthResponse, error)
	// Login входит по телефону и паролю.
	Login(ctx context.Context, phone, password string) (*model.AuthResponse, error)
	// Register создаёт партнёра и сразу открывает сессию.
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	// Logout очищает локальную сессию. Сервер не вызывается.
	Logout(ctx context.Context) error
	// CurrentPartner возвращает сохранённые данные партнёра.
	CurrentPartner(ctx context.Context) (auth.Identity, error)
}

// AuthServiceRemote — реализация AuthService поверх API-клиента.
type AuthServiceRemote struct {
	client Client
}

// NewAuthService конструктор сервиса аутентификации.
func NewAuthService(c Client) AuthService {
	return &AuthServiceRemote{client: c}
}

func (s *AuthServiceRemote) SendOTP(ctx context.Context, phone string) (*model.SendOTPResponse, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrValidation)
	}
	var out model.SendOTPResponse
	if err := s.client.Post(ctx, pathSendOTP, model.SendOTPRequest{Phone: phone}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AuthServiceRemote) VerifyOTP(ctx context.Context, phone, otp string) (*model.AuthResponse, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrValidation)
	}
	if !otpRe.MatchString(otp) {
		return nil, fmt.Errorf("%w: otp must be 4-8 digits", ErrValidation)
	}
	return s.authenticate(ctx, pathVerifyOTP, model.VerifyOTPRequest{Phone: phone, OTP: otp})
}

func (s *AuthServiceRemote) Login(ctx context.Context, phone, password string) (*model.AuthResponse, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return nil, fmt.Errorf("%w: phone and password are required", ErrValidation)
	}
	return s.authenticate(ctx, pathLogin, model.LoginRequest{Phone: phone, Password: password})
}

func (s *AuthServiceRemote) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.Phone == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: name, phone and password are required", ErrValidation)
	}
	return s.authenticate(ctx, pathRegister, req)
}

func (s *AuthServiceRemote) Logout(ctx context.Context) error {
	return s.client.Logout(ctx)
}

func (s *AuthServiceRemote) CurrentPartner(ctx context.Context) (auth.Identity, error) {
	if !s.client.Authenticated(ctx) {
		return auth.Identity{}, ErrNotLoggedIn
	}
	return s.client.Identity(ctx)
}

// authenticate отправляет запрос входа и сохраняет пару токенов вместе с данными партнёра.
func (s *AuthServiceRemote) authenticate(ctx context.Context, path string, body any) (*model.AuthResponse, error) {
	var out model.AuthResponse
	if err := s.client.Post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	pair := auth.Pair{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}
	id := auth.Identity{PartnerID: out.Partner.ID, Name: out.Partner.Name, Phone: out.Partner.Phone}
	if err := s.client.StartSession(ctx, pair, id); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return &out, nil
}
