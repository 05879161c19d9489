package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"PartnerApp/internal/cli/model"
)

const pathOrders = "/partner/orders"

// OrderService — заказы, предложенные партнёру.
type OrderService interface {
	// List возвращает заказы; пустой status — все.
	List(ctx context.Context, status string) ([]model.Order, error)
	Accept(ctx context.Context, id string) (*model.Order, error)
	Reject(ctx context.Context, id, reason string) (*model.Order, error)
}

type OrderServiceRemote struct {
	client Client
}

func NewOrderService(c Client) OrderService {
	return &OrderServiceRemote{client: c}
}

func (s *OrderServiceRemote) List(ctx context.Context, status string) ([]model.Order, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	var out model.OrdersResponse
	if err := s.client.Get(ctx, pathOrders, q, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (s *OrderServiceRemote) Accept(ctx context.Context, id string) (*model.Order, error) {
	return s.decide(ctx, id, "accept", nil)
}

func (s *OrderServiceRemote) Reject(ctx context.Context, id, reason string) (*model.Order, error) {
	return s.decide(ctx, id, "reject", model.RejectRequest{Reason: reason})
}

func (s *OrderServiceRemote) decide(ctx context.Context, id, action string, body any) (*model.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrValidation)
	}
	var o model.Order
	path := pathOrders + "/" + url.PathEscape(id) + "/" + action
	if err := s.client.Post(ctx, path, body, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
