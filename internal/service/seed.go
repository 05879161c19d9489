package service

import (
	"context"
	"fmt"
	"time"

	"PartnerApp/internal/model"
	"PartnerApp/internal/repo"

	"github.com/google/uuid"
)

type demoOrder struct {
	pickup, drop string
	km, amount   float64
}

var demoOrders = []demoOrder{
	{"Koramangala 5th Block, Bengaluru", "HSR Layout Sector 2, Bengaluru", 4.2, 62},
	{"Indiranagar 100ft Road, Bengaluru", "MG Road Metro, Bengaluru", 3.1, 48},
	{"Whitefield Main Road, Bengaluru", "Marathahalli Bridge, Bengaluru", 7.8, 95},
}

// DemoSeeder выдаёт новому партнёру ожидающие заказы и бонусы,
// чтобы с аккаунтом можно было сразу работать.
type DemoSeeder struct {
	orders   repo.OrderRepository
	earnings repo.EarningsRepository
	now      func() time.Time
}

func NewDemoSeeder(orders repo.OrderRepository, earnings repo.EarningsRepository) *DemoSeeder {
	return &DemoSeeder{orders: orders, earnings: earnings, now: func() time.Time { return time.Now().UTC() }}
}

// SeedDemo ничего не делает, если у партнёра уже есть заказы.
func (s *DemoSeeder) SeedDemo(ctx context.Context, partnerID string) error {
	n, err := s.orders.CountByPartner(ctx, partnerID)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := s.now()
	orders := make([]model.Order, 0, len(demoOrders))
	for i, d := range demoOrders {
		orders = append(orders, model.Order{
			ID:            uuid.NewString(),
			PartnerID:     partnerID,
			Status:        model.OrderPending,
			PickupAddress: d.pickup,
			DropAddress:   d.drop,
			DistanceKm:    d.km,
			Amount:        d.amount,
			CreatedAt:     now.Add(-time.Duration(i) * time.Minute),
		})
	}
	if err := s.orders.CreateOrders(ctx, orders); err != nil {
		return fmt.Errorf("orders: %w", err)
	}

	incentives := []model.Incentive{
		{ID: uuid.NewString(), PartnerID: partnerID, Title: "First steps",
			Description: "Complete 2 orders", Target: 2, Reward: 50, ExpiresAt: now.AddDate(0, 0, 7)},
		{ID: uuid.NewString(), PartnerID: partnerID, Title: "Weekly streak",
			Description: "Complete 10 orders this week", Target: 10, Reward: 300, ExpiresAt: now.AddDate(0, 0, 7)},
	}
	if err := s.earnings.CreateIncentives(ctx, incentives); err != nil {
		return fmt.Errorf("incentives: %w", err)
	}
	return nil
}
