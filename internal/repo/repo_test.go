package repo

import (
	"testing"
	"time"

	"github.com/google/uuid"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует отдельную in-memory SQLite (modernc.org/sqlite) для каждого теста
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{NowFunc: func() time.Time { return time.Now().UTC() }})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

func TestIsPostgresDSN(t *testing.T) {
	cases := map[string]bool{
		"postgres://u:p@localhost:5432/db?sslmode=disable": true,
		"postgresql://localhost/db":                         true,
		"host=localhost user=u dbname=partners":             true,
		"":                                                  false,
		"partnerapp-dev.sqlite":                             false,
		"file::memory:?cache=shared":                        false,
	}
	for dsn, want := range cases {
		if got := IsPostgresDSN(dsn); got != want {
			t.Fatalf("IsPostgresDSN(%q) = %v, want %v", dsn, got, want)
		}
	}
}

func TestInitDB_SQLiteFile(t *testing.T) {
	path := t.TempDir() + "/dev.sqlite"
	db, err := InitDB(path)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()
	for _, table := range []string{"partners", "refresh_tokens", "orders", "transactions", "incentives", "otp_codes"} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("table %s not migrated", table)
		}
	}
}
