package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"PartnerApp/internal/cli/auth"
)

const (
	flightRefresh = "refresh"
	flightExpire  = "expire"
)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// refresh обновляет пару токенов после 401. Одновременные вызовы разделяют
// один обмен; если пара уже сменилась после того, как запрос ушёл со stale,
// обмен не выполняется.
func (c *Client) refresh(ctx context.Context, stale string) error {
	// обмен не должен прерываться отменой контекста первого ожидающего
	flightCtx := context.WithoutCancel(ctx)
	ch := c.flights.DoChan(flightRefresh, func() (any, error) {
		return nil, c.exchange(flightCtx, stale)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return newError(KindTimeout, 0, "", ctx.Err())
		}
		return newError(KindCanceled, 0, "", ctx.Err())
	}
}

func (c *Client) exchange(ctx context.Context, stale string) error {
	cur, err := c.creds.Load(ctx)
	if err != nil {
		c.logger.Errorw("api: credentials read failed during refresh", "error", err)
		c.expireSession(ctx, "credentials unavailable")
		return newError(KindSessionExpired, http.StatusUnauthorized, "", err)
	}
	if cur.Complete() && cur.AccessToken != stale {
		c.logger.Debugw("api: token already refreshed, reusing stored pair")
		return nil
	}
	if cur.RefreshToken == "" {
		reason := "no refresh token"
		if stale == "" && cur.AccessToken == "" {
			// запрос ушёл без bearer: сессии и не было
			reason = ReasonNotSignedIn
		}
		c.expireSession(ctx, reason)
		return newError(KindSessionExpired, http.StatusUnauthorized, "", nil)
	}

	next, err := c.callRefresh(ctx, cur.RefreshToken)
	if err != nil {
		c.logger.Infow("api: token refresh failed", "error", err)
		c.expireSession(ctx, "token refresh failed")
		return newError(KindSessionExpired, http.StatusUnauthorized, "", err)
	}

	if err := c.creds.Rotate(ctx, cur.RefreshToken, next); err != nil {
		if errors.Is(err, auth.ErrCredentialsChanged) {
			// logout или другой писатель успел раньше; новая пара не сохраняется
			if at, _ := c.creds.AccessToken(ctx); at != "" {
				return nil
			}
			return newError(KindSessionExpired, http.StatusUnauthorized, "", err)
		}
		c.logger.Errorw("api: persisting refreshed credentials failed", "error", err)
		c.expireSession(ctx, "credentials not persisted")
		return newError(KindSessionExpired, http.StatusUnauthorized, "", err)
	}
	c.logger.Debugw("api: token refreshed")
	return nil
}

// callRefresh обменивает refresh-токен на новую пару. Bearer не отправляется.
func (c *Client) callRefresh(ctx context.Context, refreshToken string) (auth.Pair, error) {
	b, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return auth.Pair{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(c.refreshPath, nil), bytes.NewReader(b))
	if err != nil {
		return auth.Pair{}, err
	}
	req.Header = c.headers.Clone()

	resp, err := c.http.Do(req)
	if err != nil {
		return auth.Pair{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return auth.Pair{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return auth.Pair{}, fmt.Errorf("refresh rejected: status=%d", resp.StatusCode)
	}
	var p auth.Pair
	if err := json.Unmarshal(body, &p); err != nil {
		return auth.Pair{}, fmt.Errorf("decode refresh response: %w", err)
	}
	if !p.Complete() {
		return auth.Pair{}, errors.New("refresh response without token pair")
	}
	return p, nil
}

// expireSession очищает учётные данные и сигнализирует навигации.
// Одновременные вызовы схлопываются в один.
func (c *Client) expireSession(ctx context.Context, reason string) {
	_, _, _ = c.flights.Do(flightExpire, func() (any, error) {
		if err := c.creds.Clear(ctx); err != nil {
			c.logger.Errorw("api: clearing credentials failed", "error", err)
		}
		if c.nav != nil {
			c.nav.ToLogin(ctx, reason)
		}
		return nil, nil
	})
}
