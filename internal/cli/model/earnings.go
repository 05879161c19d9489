package model

import "time"

// EarningsSummary — сводка заработка за период (today, week, month).
type EarningsSummary struct {
	Period          string  `json:"period"`
	TotalEarnings   float64 `json:"totalEarnings"`
	OrdersCompleted int     `json:"ordersCompleted"`
	Incentives      float64 `json:"incentives"`
	Currency        string  `json:"currency"`
}

type Transaction struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"orderId,omitempty"`
	Type        string    `json:"type"` // order | incentive
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
	Page         int           `json:"page"`
	Limit        int           `json:"limit"`
	Total        int64         `json:"total"`
}

type Incentive struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Target      int       `json:"target"`
	Progress    int       `json:"progress"`
	Reward      float64   `json:"reward"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type IncentivesResponse struct {
	Incentives []Incentive `json:"incentives"`
}
