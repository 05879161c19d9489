package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type ctxKey int

const partnerIDKey ctxKey = iota

const issuer = "partnerapp-dev"

// ErrInvalidToken — подпись, срок или формат access-токена неверны.
var ErrInvalidToken = errors.New("invalid access token")

// Claims — содержимое access-токена.
type Claims struct {
	PartnerID string `json:"pid"`
	jwt.RegisteredClaims
}

// JWTIssuer подписывает access-токены HS256.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer создаёт издателя access-токенов.
func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueAccessToken выпускает access-токен для партнёра.
func (j *JWTIssuer) IssueAccessToken(partnerID string) (string, error) {
	now := j.now()
	claims := Claims{
		PartnerID: partnerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   partnerID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

// ParseAccessToken проверяет токен и возвращает id партнёра.
func ParseAccessToken(tokenStr, secret string) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.PartnerID == "" {
		return "", ErrInvalidToken
	}
	return claims.PartnerID, nil
}

// WithAuth читает Bearer-токен и кладёт id партнёра в контекст.
// Без токена или с невалидным токеном запрос проходит анонимно;
// защищённые хендлеры сами отвечают 401.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if token, ok := strings.CutPrefix(h, "Bearer "); ok && token != "" {
				if pid, err := ParseAccessToken(token, secret); err == nil {
					r = r.WithContext(WithPartnerID(r.Context(), pid))
				} else {
					log.Debugw("auth: token rejected", "error", err)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithPartnerID возвращает контекст с id партнёра.
func WithPartnerID(ctx context.Context, partnerID string) context.Context {
	return context.WithValue(ctx, partnerIDKey, partnerID)
}

// GetPartnerIDFromContext возвращает id партнёра, если запрос аутентифицирован.
func GetPartnerIDFromContext(ctx context.Context) (string, bool) {
	pid, ok := ctx.Value(partnerIDKey).(string)
	return pid, ok && pid != ""
}
