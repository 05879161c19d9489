package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"PartnerApp/internal/model"
	"PartnerApp/internal/repo"
)

type OrderService struct {
	orders repo.OrderRepository
}

func NewOrderService(orders repo.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// List возвращает заказы партнёра; status фильтрует, пустой — все.
func (s *OrderService) List(ctx context.Context, partnerID, status string) ([]model.Order, error) {
	status = strings.TrimSpace(status)
	switch status {
	case "", model.OrderPending, model.OrderAccepted, model.OrderRejected, model.OrderDelivered:
	default:
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}
	out, err := s.orders.List(ctx, partnerID, status)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Order{}
	}
	return out, nil
}

// Accept принимает ожидающий заказ и начисляет его сумму партнёру.
func (s *OrderService) Accept(ctx context.Context, partnerID, orderID string) (*model.Order, error) {
	o, err := s.orders.Transition(ctx, partnerID, orderID, model.OrderPending, model.OrderAccepted, "", true)
	return o, orderErr(err)
}

func (s *OrderService) Reject(ctx context.Context, partnerID, orderID, reason string) (*model.Order, error) {
	o, err := s.orders.Transition(ctx, partnerID, orderID, model.OrderPending, model.OrderRejected, strings.TrimSpace(reason), false)
	return o, orderErr(err)
}

func orderErr(err error) error {
	if errors.Is(err, repo.ErrConflict) {
		return ErrOrderState
	}
	return notFound(err)
}
