package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Проверяем, что мидлварь логирования корректно проксирует ответ
func TestWithLogging_Passthrough(t *testing.T) {
	SetLogger(zap.NewNop().Sugar())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot) // 418
		_, _ = w.Write([]byte("hello"))
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	WithLogging(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("status passthrough failed: got %d", rr.Code)
	}
	if rr.Body.String() != "hello" {
		t.Fatalf("body passthrough failed: %q", rr.Body.String())
	}
}

// Токен из Authorization и тело запроса не попадают в лог
func TestWithLogging_NoSecretsInLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core).Sugar())
	t.Cleanup(func() { SetLogger(zap.NewNop().Sugar()) })

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"accessToken":"A2"}`))
	})
	req := httptest.NewRequest(http.MethodPost, "/partner/auth/refresh-token", strings.NewReader(`{"refreshToken":"R1-secret"}`))
	req.Header.Set("Authorization", "Bearer A1-secret")
	req.Header.Set("X-Request-Id", "rid-1")
	WithLogging(next).ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusOK) {
		t.Fatalf("status field: %#v", fields["status"])
	}
	if fields["request_id"] != "rid-1" {
		t.Fatalf("request_id field: %#v", fields["request_id"])
	}
	for k, v := range fields {
		if s, ok := v.(string); ok && (strings.Contains(s, "A1-secret") || strings.Contains(s, "R1-secret")) {
			t.Fatalf("secret leaked into field %q: %q", k, s)
		}
	}
}
