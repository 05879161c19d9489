package repo

import (
	"context"
	"errors"
	"time"

	"PartnerApp/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenRepository — одноразовые коды и refresh-токены.
type TokenRepository interface {
	// SaveOTP сохраняет код для телефона, заменяя предыдущий.
	SaveOTP(ctx context.Context, otp *model.OTPCode) error
	// GetOTP возвращает (nil, nil), если кода нет.
	GetOTP(ctx context.Context, phone string) (*model.OTPCode, error)
	IncrementOTPAttempts(ctx context.Context, phone string) error
	DeleteOTP(ctx context.Context, phone string) error

	CreateRefreshToken(ctx context.Context, t *model.RefreshToken) error
	// RotateRefreshToken отзывает old и сохраняет next для того же партнёра.
	// Возвращает ErrTokenInvalid, если old не найден, уже отозван или истёк.
	// Если old был отозван раньше, чем ReuseGrace назад, ошибка имеет тип
	// *ReusedTokenError.
	RotateRefreshToken(ctx context.Context, old string, next *model.RefreshToken, now time.Time) error
	// RevokeAll отзывает все активные токены партнёра.
	RevokeAll(ctx context.Context, partnerID string, now time.Time) error
}

// ReuseGrace — окно, в котором повторное предъявление только что
// ротированного токена считается гонкой параллельных обменов, а не кражей.
const ReuseGrace = 30 * time.Second

// ReusedTokenError — предъявлен refresh-токен, отозванный ротацией ранее.
type ReusedTokenError struct {
	PartnerID string
}

func (e *ReusedTokenError) Error() string { return "refresh token reused" }

// Is делает ошибку совместимой с ErrTokenInvalid.
func (e *ReusedTokenError) Is(target error) bool { return target == ErrTokenInvalid }

type tokenRepo struct {
	db *gorm.DB
}

// NewTokenRepository создаёт реализацию TokenRepository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepo{db: db}
}

func (r *tokenRepo) SaveOTP(ctx context.Context, otp *model.OTPCode) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "attempts"}),
	}).Create(otp).Error
}

func (r *tokenRepo) GetOTP(ctx context.Context, phone string) (*model.OTPCode, error) {
	var otp model.OTPCode
	err := r.db.WithContext(ctx).First(&otp, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *tokenRepo) IncrementOTPAttempts(ctx context.Context, phone string) error {
	return r.db.WithContext(ctx).Model(&model.OTPCode{}).
		Where("phone = ?", phone).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *tokenRepo) DeleteOTP(ctx context.Context, phone string) error {
	return r.db.WithContext(ctx).Delete(&model.OTPCode{}, "phone = ?", phone).Error
}

func (r *tokenRepo) CreateRefreshToken(ctx context.Context, t *model.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tokenRepo) RotateRefreshToken(ctx context.Context, old string, next *model.RefreshToken, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.RefreshToken
		err := tx.First(&cur, "token = ?", old).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenInvalid
		}
		if err != nil {
			return err
		}
		// условное обновление: параллельный обмен того же токена получит 0 строк
		res := tx.Model(&model.RefreshToken{}).
			Where("token = ? AND revoked_at IS NULL AND expires_at > ?", old, now).
			Update("revoked_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if cur.RevokedAt != nil && cur.RevokedAt.Before(now.Add(-ReuseGrace)) {
				return &ReusedTokenError{PartnerID: cur.PartnerID}
			}
			return ErrTokenInvalid
		}
		next.PartnerID = cur.PartnerID
		return tx.Create(next).Error
	})
}

func (r *tokenRepo) RevokeAll(ctx context.Context, partnerID string, now time.Time) error {
	return r.db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("partner_id = ? AND revoked_at IS NULL", partnerID).
		Update("revoked_at", now).Error
}
