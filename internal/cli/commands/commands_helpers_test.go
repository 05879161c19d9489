package commands

import (
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"PartnerApp/internal/config"
)

// withTempConfig переопределяет пользовательские каталоги на время теста,
// чтобы артефакты (токены/база) создавались в temp.
func withTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	return dir
}

// testConfig — конфиг клиента, направленный на тестовый сервер.
func testConfig(t *testing.T, ts *httptest.Server) *config.Config {
	t.Helper()
	dir := withTempConfig(t)
	return &config.Config{
		ServerURL:      ts.URL,
		ProbeAddr:      strings.TrimPrefix(ts.URL, "http://"),
		StorageBackend: config.StorageSQLite,
		ClientDBPath:   filepath.Join(dir, "db", "client.sqlite"),
		AppVersion:     "1.0.0",
		Platform:       "cli-test",
	}
}
