package service

import (
	"context"
	"fmt"
	"time"

	"PartnerApp/internal/model"
	"PartnerApp/internal/repo"
)

// Периоды сводки заработка.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

const (
	currency        = "INR"
	defaultPageSize = 20
	maxPageSize     = 100
)

// Summary — сводка заработка за период.
type Summary struct {
	Period          string
	TotalEarnings   float64
	OrdersCompleted int64
	Incentives      float64
	Currency        string
}

// TransactionsPage — страница истории начислений.
type TransactionsPage struct {
	Transactions []model.Transaction
	Page         int
	Limit        int
	Total        int64
}

type EarningsService struct {
	earnings repo.EarningsRepository
	now      func() time.Time
}

func NewEarningsService(earnings repo.EarningsRepository) *EarningsService {
	return &EarningsService{earnings: earnings, now: func() time.Time { return time.Now().UTC() }}
}

// Summary считает заработок за today (с полуночи UTC), week (7 дней) или month (30 дней).
func (s *EarningsService) Summary(ctx context.Context, partnerID, period string) (*Summary, error) {
	if period == "" {
		period = PeriodToday
	}
	now := s.now()
	var since time.Time
	switch period {
	case PeriodToday:
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	case PeriodWeek:
		since = now.AddDate(0, 0, -7)
	case PeriodMonth:
		since = now.AddDate(0, 0, -30)
	default:
		return nil, fmt.Errorf("%w: period must be today, week or month", ErrValidation)
	}

	t, err := s.earnings.Totals(ctx, partnerID, since)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Period:          period,
		TotalEarnings:   t.Orders + t.Incentives,
		OrdersCompleted: t.OrdersCompleted,
		Incentives:      t.Incentives,
		Currency:        currency,
	}, nil
}

// Transactions возвращает страницу начислений, новые первыми. page с 1.
func (s *EarningsService) Transactions(ctx context.Context, partnerID string, page, limit int) (*TransactionsPage, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	items, total, err := s.earnings.ListTransactions(ctx, partnerID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Transaction{}
	}
	return &TransactionsPage{Transactions: items, Page: page, Limit: limit, Total: total}, nil
}

// Incentives возвращает действующие бонусы; прогресс — число выполненных заказов,
// не больше цели.
func (s *EarningsService) Incentives(ctx context.Context, partnerID string) ([]model.Incentive, error) {
	now := s.now()
	items, err := s.earnings.ListIncentives(ctx, partnerID, now)
	if err != nil {
		return nil, err
	}
	t, err := s.earnings.Totals(ctx, partnerID, time.Time{})
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Progress = min(int(t.OrdersCompleted), items[i].Target)
	}
	if items == nil {
		items = []model.Incentive{}
	}
	return items, nil
}
