package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"PartnerApp/internal/cli/auth"
	"PartnerApp/internal/cli/netstatus"
	"PartnerApp/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultRefreshPath — эндпоинт обмена refresh-токена на новую пару.
const DefaultRefreshPath = "/partner/auth/refresh-token"

// Заголовки идентификации клиента.
const (
	HeaderAppVersion  = "X-App-Version"
	HeaderBuildNumber = "X-Build-Number"
	HeaderPlatform    = "X-Platform"
	HeaderRequestID   = "X-Request-Id"
)

// Attempt — номер попытки отправки запроса. Повтор возможен не больше одного раза.
type Attempt int

const (
	FirstAttempt Attempt = iota
	RetriedOnce
)

func (a Attempt) String() string {
	if a == RetriedOnce {
		return "retried_once"
	}
	return "first_attempt"
}

// Request — описание исходящего запроса.
type Request struct {
	Method string
	Path   string
	Body   any
	Query  url.Values
}

// Response — успешный (2xx) ответ без изменений.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Причины перехода на экран входа, которые не означают потерю сессии.
const (
	ReasonLogout      = "logout"
	ReasonNotSignedIn = "not signed in"
)

// Navigator — внешний получатель сигнала «вернуться на экран входа».
type Navigator interface {
	ToLogin(ctx context.Context, reason string)
}

// NavigatorFunc адаптирует функцию к Navigator.
type NavigatorFunc func(ctx context.Context, reason string)

// ToLogin вызывает f.
func (f NavigatorFunc) ToLogin(ctx context.Context, reason string) { f(ctx, reason) }

// Options — параметры клиента.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	AppVersion  string
	BuildNumber string
	Platform    string
	RefreshPath string
	HTTPClient  *http.Client
	Logger      *zap.SugaredLogger
}

// Client — HTTP-клиент партнёрского API: добавляет заголовки и bearer-токен,
// проверяет сеть перед отправкой, нормализует ошибки и один раз обновляет
// токен при 401.
type Client struct {
	baseURL     string
	refreshPath string
	timeout     time.Duration
	headers     http.Header
	http        *http.Client
	creds       *auth.Store
	probe       netstatus.Probe
	nav         Navigator
	logger      *zap.SugaredLogger

	flights singleflight.Group
}

// NewClient создаёт клиент. nav может быть nil.
func NewClient(opts Options, creds *auth.Store, probe netstatus.Probe, nav Navigator) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RefreshPath == "" {
		opts.RefreshPath = DefaultRefreshPath
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if probe == nil {
		probe = netstatus.Static(true)
	}

	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set(HeaderAppVersion, opts.AppVersion)
	h.Set(HeaderBuildNumber, opts.BuildNumber)
	h.Set(HeaderPlatform, opts.Platform)

	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		refreshPath: opts.RefreshPath,
		timeout:     opts.Timeout,
		headers:     h,
		http:        opts.HTTPClient,
		creds:       creds,
		probe:       probe,
		nav:         nav,
		logger:      opts.Logger,
	}
}

// NewFromConfig собирает клиент из конфигурации приложения.
func NewFromConfig(cfg *config.Config, creds *auth.Store, probe netstatus.Probe, nav Navigator, logger *zap.SugaredLogger) *Client {
	return NewClient(Options{
		BaseURL:     cfg.ServerURL,
		Timeout:     cfg.RequestTimeout,
		AppVersion:  cfg.AppVersion,
		BuildNumber: cfg.BuildNumber,
		Platform:    cfg.Platform,
		Logger:      logger,
	}, creds, probe, nav)
}

// Send выполняет запрос и возвращает тело успешного ответа без изменений.
// Любая ошибка имеет тип *Error.
func (c *Client) Send(ctx context.Context, req Request) (*Response, error) {
	return c.send(ctx, req, FirstAttempt)
}

// Do выполняет запрос и декодирует JSON-ответ в out (если out != nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	resp, err := c.Send(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		c.logger.Warnw("api: undecodable response", "path", req.Path, "error", err)
		return newError(KindUnknownServerError, resp.StatusCode, "", err)
	}
	return nil
}

// Get выполняет GET-запрос.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post выполняет POST-запрос.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put выполняет PUT-запрос.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Patch выполняет PATCH-запрос.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

// Delete выполняет DELETE-запрос.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

// StartSession сохраняет учётные данные после login/verify/register.
func (c *Client) StartSession(ctx context.Context, pair auth.Pair, id auth.Identity) error {
	return c.creds.SaveSession(ctx, pair, id)
}

// Logout очищает учётные данные и отправляет пользователя на экран входа.
// Сервер не вызывается.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.creds.Clear(ctx); err != nil {
		return err
	}
	if c.nav != nil {
		c.nav.ToLogin(ctx, ReasonLogout)
	}
	return nil
}

// Identity возвращает данные текущего партнёра.
func (c *Client) Identity(ctx context.Context) (auth.Identity, error) {
	return c.creds.Identity(ctx)
}

// Authenticated сообщает, есть ли сохранённая пара токенов.
func (c *Client) Authenticated(ctx context.Context) bool {
	p, err := c.creds.Load(ctx)
	return err == nil && p.Complete()
}

func (c *Client) send(ctx context.Context, req Request, attempt Attempt) (*Response, error) {
	if !c.probe.Connected(ctx) {
		c.logger.Debugw("api: offline, request not sent", "method", req.Method, "path", req.Path)
		return nil, newError(KindNoConnectivity, 0, "", nil)
	}

	token, err := c.creds.AccessToken(ctx)
	if err != nil {
		c.logger.Warnw("api: access token read failed, sending unauthenticated", "error", err)
		token = ""
	}
	if attempt == RetriedOnce && token == "" {
		// пара удалена между refresh и повтором (logout)
		return nil, newError(KindSessionExpired, http.StatusUnauthorized, "", nil)
	}

	resp, err := c.transmit(ctx, req, token, attempt)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return resp, nil

	case resp.StatusCode == http.StatusUnauthorized:
		if attempt == RetriedOnce {
			c.expireSession(ctx, "unauthorized after token refresh")
			return nil, newError(KindSessionExpired, resp.StatusCode, "", nil)
		}
		if err := c.refresh(ctx, token); err != nil {
			var apiErr *Error
			if token == "" && errors.As(err, &apiErr) && apiErr.Kind == KindSessionExpired {
				// сессии не было: показываем причину от сервера (например, неверный пароль)
				return nil, newError(KindSessionExpired, resp.StatusCode, serverMessage(resp.Body), nil)
			}
			return nil, err
		}
		return c.send(ctx, req, RetriedOnce)

	default:
		kind := kindForStatus(resp.StatusCode)
		return nil, newError(kind, resp.StatusCode, serverMessage(resp.Body), nil)
	}
}

// transmit отправляет один HTTP-запрос с фиксированным таймаутом.
func (c *Client) transmit(ctx context.Context, req Request, token string, attempt Attempt) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, newError(KindBadRequest, 0, "", err)
		}
		body = bytes.NewReader(b)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(attemptCtx, req.Method, c.url(req.Path, req.Query), body)
	if err != nil {
		return nil, newError(KindBadRequest, 0, "", err)
	}
	httpReq.Header = c.headers.Clone()
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	rid := uuid.NewString()
	httpReq.Header.Set(HeaderRequestID, rid)

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		apiErr := c.transportError(ctx, attemptCtx, err)
		c.logger.Infow("api: transport failure",
			"method", req.Method, "path", req.Path, "attempt", attempt.String(),
			"request_id", rid, "kind", apiErr.Kind.String(), "error", err)
		return nil, apiErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(ctx, attemptCtx, err)
	}

	c.logger.Debugw("api: response",
		"method", req.Method, "path", req.Path, "status", resp.StatusCode,
		"attempt", attempt.String(), "request_id", rid, "authenticated", token != "",
		"duration", time.Since(started))

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// transportError классифицирует ошибку, когда ответа от сервера нет.
func (c *Client) transportError(ctx, attemptCtx context.Context, err error) *Error {
	var ne net.Error
	switch {
	case errors.Is(attemptCtx.Err(), context.DeadlineExceeded),
		errors.As(err, &ne) && ne.Timeout():
		return newError(KindTimeout, 0, "", err)
	case errors.Is(ctx.Err(), context.Canceled):
		return newError(KindCanceled, 0, "", err)
	case !c.probe.Connected(ctx):
		return newError(KindNetworkUnavailable, 0, "", err)
	default:
		return newError(KindServerUnreachable, 0, "", err)
	}
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// serverMessage достаёт поле message из JSON-тела ошибки.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}
