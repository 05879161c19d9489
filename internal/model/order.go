package model

import "time"

// Статусы заказа.
const (
	OrderPending   = "pending"
	OrderAccepted  = "accepted"
	OrderRejected  = "rejected"
	OrderDelivered = "delivered"
)

// Типы транзакций заработка.
const (
	TxOrder     = "order"
	TxIncentive = "incentive"
)

// Order — заказ, предложенный партнёру.
type Order struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	PartnerID     string    `gorm:"size:36;not null;index" json:"-"`
	Status        string    `gorm:"not null;index" json:"status"`
	PickupAddress string    `json:"pickupAddress"`
	DropAddress   string    `json:"dropAddress"`
	DistanceKm    float64   `json:"distanceKm"`
	Amount        float64   `json:"amount"`
	RejectReason  string    `json:"rejectReason,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"-"`

	Partner *Partner `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// Transaction — начисление партнёру.
type Transaction struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	PartnerID   string    `gorm:"size:36;not null;index" json:"-"`
	OrderID     string    `gorm:"size:36;index" json:"orderId,omitempty"`
	Type        string    `gorm:"not null" json:"type"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

// Incentive — бонус за выполнение цели по числу заказов.
type Incentive struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	PartnerID   string    `gorm:"size:36;not null;index" json:"-"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description,omitempty"`
	Target      int       `gorm:"not null" json:"target"`
	Progress    int       `gorm:"-" json:"progress"`
	Reward      float64   `gorm:"not null" json:"reward"`
	ExpiresAt   time.Time `gorm:"not null" json:"expiresAt"`
}
