package model

import "time"

// OTPCode — выданный одноразовый код, один на телефон.
type OTPCode struct {
	Phone     string    `gorm:"primaryKey"`
	Code      string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Attempts  int       `gorm:"not null;default:0"`
}

// RefreshToken — непрозрачный refresh-токен. Каждый используется один раз:
// при обмене помечается отозванным и заменяется новым.
type RefreshToken struct {
	Token     string     `gorm:"primaryKey;size:36"`
	PartnerID string     `gorm:"size:36;not null;index"`
	ExpiresAt time.Time  `gorm:"not null"`
	RevokedAt *time.Time `gorm:"index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`

	Partner *Partner `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
