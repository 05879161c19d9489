package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"PartnerApp/internal/model"
	"PartnerApp/internal/repo"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpTTL         = 5 * time.Minute
	maxOTPAttempts = 5
	minPasswordLen = 6
)

var phoneRe = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// TokenIssuer выпускает access-токены.
type TokenIssuer interface {
	IssueAccessToken(partnerID string) (string, error)
}

// Seeder наполняет аккаунт нового партнёра демо-данными.
type Seeder interface {
	SeedDemo(ctx context.Context, partnerID string) error
}

// Session — результат успешной аутентификации.
type Session struct {
	AccessToken  string
	RefreshToken string
	Partner      *model.Partner
}

// RegisterInput — данные регистрации по паролю.
type RegisterInput struct {
	Name        string
	Phone       string
	Password    string
	VehicleType string
	City        string
}

type AuthOptions struct {
	DevOTP     string
	RefreshTTL time.Duration
}

type AuthService struct {
	partners repo.PartnerRepository
	tokens   repo.TokenRepository
	issuer   TokenIssuer
	seeder   Seeder
	opts     AuthOptions
	now      func() time.Time
}

func NewAuthService(partners repo.PartnerRepository, tokens repo.TokenRepository, issuer TokenIssuer, seeder Seeder, opts AuthOptions) *AuthService {
	if opts.DevOTP == "" {
		opts.DevOTP = "123456"
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = 30 * 24 * time.Hour
	}
	return &AuthService{
		partners: partners,
		tokens:   tokens,
		issuer:   issuer,
		seeder:   seeder,
		opts:     opts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SendOTP выдаёт код для телефона. Dev-сервер не отправляет SMS: код фиксирован.
// Возвращает время жизни кода в секундах.
func (s *AuthService) SendOTP(ctx context.Context, phone string) (int, error) {
	phone = strings.TrimSpace(phone)
	if !phoneRe.MatchString(phone) {
		return 0, fmt.Errorf("%w: invalid phone number", ErrValidation)
	}
	err := s.tokens.SaveOTP(ctx, &model.OTPCode{
		Phone:     phone,
		Code:      s.opts.DevOTP,
		ExpiresAt: s.now().Add(otpTTL),
	})
	if err != nil {
		return 0, err
	}
	return int(otpTTL / time.Second), nil
}

// VerifyOTP проверяет код и открывает сессию. Партнёр создаётся при первом входе.
func (s *AuthService) VerifyOTP(ctx context.Context, phone, code string) (*Session, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: phone and otp are required", ErrValidation)
	}

	otp, err := s.tokens.GetOTP(ctx, phone)
	if err != nil {
		return nil, err
	}
	if otp == nil || !otp.ExpiresAt.After(s.now()) {
		return nil, ErrInvalidOTP
	}
	if otp.Attempts >= maxOTPAttempts {
		return nil, ErrTooManyAttempts
	}
	if otp.Code != strings.TrimSpace(code) {
		if err := s.tokens.IncrementOTPAttempts(ctx, phone); err != nil {
			return nil, err
		}
		return nil, ErrInvalidOTP
	}
	if err := s.tokens.DeleteOTP(ctx, phone); err != nil {
		return nil, err
	}

	p, err := s.partners.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p, err = s.createPartner(ctx, &model.Partner{
			Name:  "Partner " + lastDigits(phone, 4),
			Phone: phone,
		})
		if err != nil {
			return nil, err
		}
	}
	return s.openSession(ctx, p)
}

// Login — вход по телефону и паролю.
func (s *AuthService) Login(ctx context.Context, phone, password string) (*Session, error) {
	p, err := s.partners.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		return nil, err
	}
	if p == nil || p.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.openSession(ctx, p)
}

// Register создаёт партнёра с паролем и открывает сессию.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	switch {
	case in.Name == "":
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	case !phoneRe.MatchString(in.Phone):
		return nil, fmt.Errorf("%w: invalid phone number", ErrValidation)
	case len(in.Password) < minPasswordLen:
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}

	existing, err := s.partners.GetByPhone(ctx, in.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPhoneTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	p, err := s.createPartner(ctx, &model.Partner{
		Name:         in.Name,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		VehicleType:  strings.TrimSpace(in.VehicleType),
		City:         strings.TrimSpace(in.City),
	})
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, p)
}

// Refresh обменивает refresh-токен на новую пару. Старый токен одноразовый.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (access, refresh string, err error) {
	if strings.TrimSpace(refreshToken) == "" {
		return "", "", ErrInvalidRefreshToken
	}
	now := s.now()
	next := &model.RefreshToken{Token: uuid.NewString(), ExpiresAt: now.Add(s.opts.RefreshTTL)}
	if err := s.tokens.RotateRefreshToken(ctx, refreshToken, next, now); err != nil {
		// повтор давно ротированного токена: считаем цепочку скомпрометированной
		var reused *repo.ReusedTokenError
		if errors.As(err, &reused) {
			if rerr := s.tokens.RevokeAll(ctx, reused.PartnerID, now); rerr != nil {
				return "", "", fmt.Errorf("revoke sessions: %w", rerr)
			}
			return "", "", ErrInvalidRefreshToken
		}
		if errors.Is(err, repo.ErrTokenInvalid) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", err
	}
	access, err = s.issuer.IssueAccessToken(next.PartnerID)
	if err != nil {
		return "", "", err
	}
	return access, next.Token, nil
}

func (s *AuthService) createPartner(ctx context.Context, p *model.Partner) (*model.Partner, error) {
	p.ID = uuid.NewString()
	p.OnboardingStatus = model.OnboardingDocuments
	if err := s.partners.Create(ctx, p); err != nil {
		return nil, err
	}
	if s.seeder != nil {
		if err := s.seeder.SeedDemo(ctx, p.ID); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}
	return p, nil
}

func (s *AuthService) openSession(ctx context.Context, p *model.Partner) (*Session, error) {
	access, err := s.issuer.IssueAccessToken(p.ID)
	if err != nil {
		return nil, err
	}
	rt := &model.RefreshToken{
		Token:     uuid.NewString(),
		PartnerID: p.ID,
		ExpiresAt: s.now().Add(s.opts.RefreshTTL),
	}
	if err := s.tokens.CreateRefreshToken(ctx, rt); err != nil {
		return nil, err
	}
	return &Session{AccessToken: access, RefreshToken: rt.Token, Partner: p}, nil
}

func lastDigits(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
