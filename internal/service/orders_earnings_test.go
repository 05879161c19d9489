package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"PartnerApp/internal/model"
	"PartnerApp/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()
	m := new(mockOrderRepo)
	svc := NewOrderService(m)

	m.On("List", mock.Anything, "p1", model.OrderPending).Return([]model.Order{{ID: "o1"}}, nil).Once()
	out, err := svc.List(ctx, "p1", "pending")
	require.NoError(t, err)
	assert.Len(t, out, 1)

	m.On("List", mock.Anything, "p1", "").Return(nil, nil).Once()
	out, err = svc.List(ctx, "p1", "")
	require.NoError(t, err)
	assert.NotNil(t, out, "empty list must encode as []")

	_, err = svc.List(ctx, "p1", "lost")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrderService_AcceptReject(t *testing.T) {
	ctx := context.Background()

	t.Run("accept credits", func(t *testing.T) {
		m := new(mockOrderRepo)
		svc := NewOrderService(m)
		m.On("Transition", mock.Anything, "p1", "o1", model.OrderPending, model.OrderAccepted, "", true).
			Return(&model.Order{ID: "o1", Status: model.OrderAccepted}, nil).Once()
		o, err := svc.Accept(ctx, "p1", "o1")
		require.NoError(t, err)
		assert.Equal(t, model.OrderAccepted, o.Status)
	})

	t.Run("reject keeps reason", func(t *testing.T) {
		m := new(mockOrderRepo)
		svc := NewOrderService(m)
		m.On("Transition", mock.Anything, "p1", "o1", model.OrderPending, model.OrderRejected, "too far", false).
			Return(&model.Order{ID: "o1", Status: model.OrderRejected}, nil).Once()
		_, err := svc.Reject(ctx, "p1", "o1", " too far ")
		require.NoError(t, err)
	})

	t.Run("error mapping", func(t *testing.T) {
		m := new(mockOrderRepo)
		svc := NewOrderService(m)
		m.On("Transition", mock.Anything, "p1", "o1", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, repo.ErrConflict).Once()
		_, err := svc.Accept(ctx, "p1", "o1")
		assert.ErrorIs(t, err, ErrOrderState)

		m.On("Transition", mock.Anything, "p1", "o2", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound).Once()
		_, err = svc.Reject(ctx, "p1", "o2", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestEarningsService_Summary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		period string
		since  time.Time
	}{
		{"", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{PeriodToday, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{PeriodWeek, now.AddDate(0, 0, -7)},
		{PeriodMonth, now.AddDate(0, 0, -30)},
	}
	for _, tc := range cases {
		m := new(mockEarningsRepo)
		svc := NewEarningsService(m)
		svc.now = func() time.Time { return now }
		m.On("Totals", mock.Anything, "p1", tc.since).Return(repo.EarningsTotals{Orders: 110, Incentives: 50, OrdersCompleted: 2}, nil).Once()

		s, err := svc.Summary(ctx, "p1", tc.period)
		require.NoError(t, err, tc.period)
		assert.Equal(t, 160.0, s.TotalEarnings)
		assert.Equal(t, int64(2), s.OrdersCompleted)
		assert.Equal(t, "INR", s.Currency)
		m.AssertExpectations(t)
	}

	svc := NewEarningsService(new(mockEarningsRepo))
	_, err := svc.Summary(ctx, "p1", "year")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEarningsService_Transactions(t *testing.T) {
	ctx := context.Background()
	m := new(mockEarningsRepo)
	svc := NewEarningsService(m)

	m.On("ListTransactions", mock.Anything, "p1", 0, defaultPageSize).Return(nil, int64(0), nil).Once()
	page, err := svc.Transactions(ctx, "p1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.NotNil(t, page.Transactions)

	m.On("ListTransactions", mock.Anything, "p1", 200, maxPageSize).Return([]model.Transaction{{ID: "t1"}}, int64(201), nil).Once()
	page, err = svc.Transactions(ctx, "p1", 3, 500)
	require.NoError(t, err)
	assert.Equal(t, maxPageSize, page.Limit)
	assert.Equal(t, int64(201), page.Total)

	m.On("ListTransactions", mock.Anything, "p1", mock.Anything, mock.Anything).Return(nil, int64(0), errors.New("db down")).Once()
	_, err = svc.Transactions(ctx, "p1", 1, 10)
	assert.Error(t, err)
}

func TestEarningsService_IncentivesProgressCapped(t *testing.T) {
	ctx := context.Background()
	m := new(mockEarningsRepo)
	svc := NewEarningsService(m)
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	m.On("ListIncentives", mock.Anything, "p1", now).Return([]model.Incentive{{ID: "i1", Target: 2}, {ID: "i2", Target: 10}}, nil).Once()
	m.On("Totals", mock.Anything, "p1", time.Time{}).Return(repo.EarningsTotals{OrdersCompleted: 3}, nil).Once()

	items, err := svc.Incentives(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, items[0].Progress)
	assert.Equal(t, 3, items[1].Progress)
}

func TestDemoSeeder(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds orders and incentives once", func(t *testing.T) {
		o, e := new(mockOrderRepo), new(mockEarningsRepo)
		s := NewDemoSeeder(o, e)
		o.On("CountByPartner", mock.Anything, "p1").Return(int64(0), nil).Once()
		o.On("CreateOrders", mock.Anything, mock.MatchedBy(func(in []model.Order) bool {
			for _, ord := range in {
				if ord.PartnerID != "p1" || ord.Status != model.OrderPending || ord.ID == "" {
					return false
				}
			}
			return len(in) == len(demoOrders)
		})).Return(nil).Once()
		e.On("CreateIncentives", mock.Anything, mock.Anything).Return(nil).Once()

		require.NoError(t, s.SeedDemo(ctx, "p1"))
		o.AssertExpectations(t)
		e.AssertExpectations(t)
	})

	t.Run("skips partner with orders", func(t *testing.T) {
		o, e := new(mockOrderRepo), new(mockEarningsRepo)
		s := NewDemoSeeder(o, e)
		o.On("CountByPartner", mock.Anything, "p1").Return(int64(3), nil).Once()
		require.NoError(t, s.SeedDemo(ctx, "p1"))
		o.AssertNotCalled(t, "CreateOrders", mock.Anything, mock.Anything)
	})
}
