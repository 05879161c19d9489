package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"PartnerApp/internal/cli/model"
)

const (
	pathEarningsSummary = "/partner/earnings/summary"
	pathTransactions    = "/partner/earnings/transactions"
	pathIncentives      = "/partner/earnings/incentives"
)

var periods = map[string]bool{"today": true, "week": true, "month": true}

// EarningsService — заработок партнёра.
type EarningsService interface {
	Summary(ctx context.Context, period string) (*model.EarningsSummary, error)
	Transactions(ctx context.Context, page, limit int) (*model.TransactionsResponse, error)
	Incentives(ctx context.Context) ([]model.Incentive, error)
}

type EarningsServiceRemote struct {
	client Client
}

func NewEarningsService(c Client) EarningsService {
	return &EarningsServiceRemote{client: c}
}

func (s *EarningsServiceRemote) Summary(ctx context.Context, period string) (*model.EarningsSummary, error) {
	if period == "" {
		period = "today"
	}
	if !periods[period] {
		return nil, fmt.Errorf("%w: period must be today, week or month", ErrValidation)
	}
	var out model.EarningsSummary
	if err := s.client.Get(ctx, pathEarningsSummary, url.Values{"period": {period}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *EarningsServiceRemote) Transactions(ctx context.Context, page, limit int) (*model.TransactionsResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	q := url.Values{"page": {strconv.Itoa(page)}, "limit": {strconv.Itoa(limit)}}
	var out model.TransactionsResponse
	if err := s.client.Get(ctx, pathTransactions, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *EarningsServiceRemote) Incentives(ctx context.Context) ([]model.Incentive, error) {
	var out model.IncentivesResponse
	if err := s.client.Get(ctx, pathIncentives, nil, &out); err != nil {
		return nil, err
	}
	return out.Incentives, nil
}
