package service

import (
	"context"
	"errors"
	"net/url"

	"PartnerApp/internal/cli/api"
	"PartnerApp/internal/cli/auth"
)

var (
	// ErrValidation возвращается до отправки запроса, если аргументы некорректны.
	ErrValidation = errors.New("validation failed")
	// ErrNotLoggedIn — локальной сессии нет.
	ErrNotLoggedIn = errors.New("not logged in: run verify-otp, login or register")
)

// Client — то, что сервисам нужно от API-клиента. Реализуется *api.Client.
type Client interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	StartSession(ctx context.Context, pair auth.Pair, id auth.Identity) error
	Logout(ctx context.Context) error
	Identity(ctx context.Context) (auth.Identity, error)
	Authenticated(ctx context.Context) bool
}

var _ Client = (*api.Client)(nil)
