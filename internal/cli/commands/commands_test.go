package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"PartnerApp/internal/cli/api"
	"PartnerApp/internal/cli/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend имитирует партнёрский API: OTP 123456, один заказ, access-токен A1.
func fakeBackend(t *testing.T, refreshOK bool) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var ordersHits atomic.Int32
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	authorized := func(r *http.Request) bool { return r.Header.Get("Authorization") == "Bearer A1" }

	mux.HandleFunc("/partner/auth/send-otp", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"message": "OTP sent", "expiresIn": 300})
	})
	mux.HandleFunc("/partner/auth/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Phone, OTP string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.OTP != "123456" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid OTP"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"accessToken": "A1", "refreshToken": "R1",
			"partner": map[string]any{"id": "p-1", "name": "Ravi", "phone": req.Phone},
		})
	})
	mux.HandleFunc("/partner/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid phone or password"})
	})
	mux.HandleFunc("/partner/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		if !refreshOK {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "refresh expired"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"accessToken": "A1", "refreshToken": "R2"})
	})
	mux.HandleFunc("/partner/orders", func(w http.ResponseWriter, r *http.Request) {
		ordersHits.Add(1)
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"orders": []map[string]any{
			{"id": "o-1", "status": r.URL.Query().Get("status"), "amount": 80, "distanceKm": 3.2,
				"pickupAddress": "MG Road", "dropAddress": "FC Road"},
		}})
	})
	mux.HandleFunc("/partner/orders/o-1/accept", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": "o-1", "status": "accepted"})
	})
	mux.HandleFunc("/partner/status", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IsOnline bool `json:"isOnline"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, http.StatusOK, map[string]any{"id": "p-1", "name": "Ravi", "isOnline": req.IsOnline})
	})
	mux.HandleFunc("/partner/earnings/summary", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"period": r.URL.Query().Get("period"), "totalEarnings": 250.5,
			"ordersCompleted": 3, "currency": "INR"})
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, &ordersHits
}

func TestCommands_OTPFlowOrdersAndLogout(t *testing.T) {
	ts, _ := fakeBackend(t, true)
	cfg := testConfig(t, ts)
	ctx := context.Background()

	out := withStdoutCapture(t, func() {
		require.NoError(t, sendOTPCmd{}.Run(ctx, cfg, []string{"+919812345678"}))
	})
	assert.Contains(t, out, "OTP sent")

	out = withStdoutCapture(t, func() {
		require.NoError(t, verifyOTPCmd{}.Run(ctx, cfg, []string{"+919812345678", "123456"}))
	})
	assert.Contains(t, out, "Logged in as Ravi")

	out = withStdoutCapture(t, func() {
		require.NoError(t, whoamiCmd{}.Run(ctx, cfg, nil))
	})
	assert.Contains(t, out, "p-1")

	out = withStdoutCapture(t, func() {
		require.NoError(t, ordersCmd{}.Run(ctx, cfg, []string{"--status", "pending"}))
	})
	assert.Contains(t, out, "o-1")
	assert.Contains(t, out, "pending")
	assert.Contains(t, out, "Total: 1")

	out = withStdoutCapture(t, func() {
		require.NoError(t, acceptCmd{}.Run(ctx, cfg, []string{"o-1"}))
	})
	assert.Contains(t, out, "accepted")

	out = withStdoutCapture(t, func() {
		require.NoError(t, statusCmd{}.Run(ctx, cfg, []string{"online"}))
	})
	assert.Contains(t, out, "Status:     online")

	out = withStdoutCapture(t, func() {
		require.NoError(t, earningsCmd{}.Run(ctx, cfg, []string{"week"}))
	})
	assert.Contains(t, out, "250.50 INR")

	out = withStdoutCapture(t, func() {
		require.NoError(t, logoutCmd{}.Run(ctx, cfg, nil))
	})
	assert.Contains(t, out, "Logged out")

	err := whoamiCmd{}.Run(ctx, cfg, nil)
	assert.ErrorIs(t, err, service.ErrNotLoggedIn)
}

func TestCommands_WrongOTP(t *testing.T) {
	ts, _ := fakeBackend(t, true)
	cfg := testConfig(t, ts)

	err := verifyOTPCmd{}.Run(context.Background(), cfg, []string{"+919812345678", "000000"})
	assert.ErrorIs(t, err, api.ErrBadRequest)
	assert.EqualError(t, err, "Invalid OTP")
}

func TestCommands_WrongPasswordWithoutSessionNoReloginHint(t *testing.T) {
	ts, _ := fakeBackend(t, true)
	cfg := testConfig(t, ts)

	var err error
	out := withStdoutCapture(t, func() {
		err = loginCmd{}.Run(context.Background(), cfg, []string{"+919812345678", "wrong-pass"})
	})
	assert.ErrorIs(t, err, api.ErrSessionExpired)
	assert.EqualError(t, err, "invalid phone or password")
	assert.NotContains(t, out, "Session ended")
}

func TestCommands_SessionExpiredPrintsReloginHint(t *testing.T) {
	ts, hits := fakeBackend(t, false)
	cfg := testConfig(t, ts)
	ctx := context.Background()

	withStdoutCapture(t, func() {
		require.NoError(t, verifyOTPCmd{}.Run(ctx, cfg, []string{"+91", "123456"}))
	})
	// сервер перестаёт принимать A1
	cfgStale := *cfg
	ts2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts2.Close()
	cfgStale.ServerURL = ts2.URL
	cfgStale.ProbeAddr = strings.TrimPrefix(ts2.URL, "http://")

	var err error
	out := withStdoutCapture(t, func() { err = ordersCmd{}.Run(ctx, &cfgStale, nil) })
	assert.ErrorIs(t, err, api.ErrSessionExpired)
	assert.Contains(t, out, "Session ended")
	assert.Equal(t, int32(0), hits.Load())

	err = whoamiCmd{}.Run(ctx, cfg, nil)
	assert.ErrorIs(t, err, service.ErrNotLoggedIn)
}

func TestCommands_Offline(t *testing.T) {
	ts, hits := fakeBackend(t, true)
	cfg := testConfig(t, ts)
	cfg.ProbeAddr = "127.0.0.1:1"

	err := ordersCmd{}.Run(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, api.ErrNoConnectivity)
	assert.Equal(t, int32(0), hits.Load())
}

func TestCommands_Usage(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		cmd  Command
		args []string
	}{
		{sendOTPCmd{}, nil},
		{verifyOTPCmd{}, []string{"+91"}},
		{loginCmd{}, []string{"+91"}},
		{registerCmd{}, []string{"Ravi", "+91"}},
		{registerCmd{}, []string{"--bogus", "a", "b", "c"}},
		{logoutCmd{}, []string{"x"}},
		{statusCmd{}, []string{"sleepy"}},
		{locationCmd{}, []string{"north", "east"}},
		{documentsCmd{}, []string{"license"}},
		{bankCmd{}, []string{"Ravi", "123"}},
		{trainingCmd{}, nil},
		{ordersCmd{}, []string{"extra"}},
		{acceptCmd{}, nil},
		{rejectCmd{}, nil},
		{earningsCmd{}, []string{"yearly"}},
		{earningsCmd{}, []string{"transactions", "x"}},
	}
	for _, tc := range cases {
		err := tc.cmd.Run(ctx, nil, tc.args)
		assert.ErrorIs(t, err, ErrUsage, "%s %v", tc.cmd.Name(), tc.args)
	}
}

func TestReloginNotice(t *testing.T) {
	out := withStdoutCapture(t, func() {
		reloginNotice{}.ToLogin(context.Background(), api.ReasonLogout)
		reloginNotice{}.ToLogin(context.Background(), api.ReasonNotSignedIn)
		reloginNotice{}.ToLogin(context.Background(), "token refresh failed")
	})
	assert.Equal(t, 1, strings.Count(out, "Session ended"))
	assert.Contains(t, out, "token refresh failed")
}
