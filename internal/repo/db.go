package repo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"PartnerApp/internal/model"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// DefaultSQLitePath — файл БД dev-сервера, если DATABASE_URI не задан.
const DefaultSQLitePath = "partnerapp-dev.sqlite"

var (
	// ErrConflict — условие обновления не выполнено (запись в другом состоянии).
	ErrConflict = errors.New("record state conflict")
	// ErrTokenInvalid — refresh-токен не найден, отозван или истёк.
	ErrTokenInvalid = errors.New("refresh token invalid")
)

// InitDB открывает БД: postgres, если DSN похож на postgres, иначе SQLite (modernc) по пути DSN.
// Выполняет миграции.
func InitDB(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	var (
		db  *gorm.DB
		err error
	)
	if IsPostgresDSN(dsn) {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		if dsn == "" {
			dsn = DefaultSQLitePath
		}
		db, err = gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, cfg)
		if err == nil {
			// SQLite не любит конкурентных писателей
			if sqlDB, e := db.DB(); e == nil {
				sqlDB.SetMaxOpenConns(1)
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Migrate создаёт/обновляет таблицы всех моделей.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Partner{},
		&model.Document{},
		&model.BankAccount{},
		&model.OTPCode{},
		&model.RefreshToken{},
		&model.Order{},
		&model.Transaction{},
		&model.Incentive{},
	)
}

// IsPostgresDSN распознаёт URL и key=value формы DSN postgres.
func IsPostgresDSN(dsn string) bool {
	d := strings.ToLower(strings.TrimSpace(dsn))
	return strings.HasPrefix(d, "postgres://") ||
		strings.HasPrefix(d, "postgresql://") ||
		(strings.Contains(d, "host=") && strings.Contains(d, "dbname="))
}
