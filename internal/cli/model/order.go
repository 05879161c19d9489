package model

import "time"

const (
	OrderPending   = "pending"
	OrderAccepted  = "accepted"
	OrderRejected  = "rejected"
	OrderDelivered = "delivered"
)

// Order — заказ, предложенный партнёру.
type Order struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	PickupAddress string    `json:"pickupAddress"`
	DropAddress   string    `json:"dropAddress"`
	DistanceKm    float64   `json:"distanceKm"`
	Amount        float64   `json:"amount"`
	CreatedAt     time.Time `json:"createdAt"`
}

type OrdersResponse struct {
	Orders []Order `json:"orders"`
}

type RejectRequest struct {
	Reason string `json:"reason,omitempty"`
}
