package service

import (
	"context"
	"time"

	"PartnerApp/internal/model"
	"PartnerApp/internal/repo"

	"github.com/stretchr/testify/mock"
)

// мок для repo.PartnerRepository
type mockPartnerRepo struct{ mock.Mock }

func (m *mockPartnerRepo) Create(ctx context.Context, p *model.Partner) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPartnerRepo) GetByID(ctx context.Context, id string) (*model.Partner, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*model.Partner); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPartnerRepo) GetByPhone(ctx context.Context, phone string) (*model.Partner, error) {
	args := m.Called(ctx, phone)
	if p, ok := args.Get(0).(*model.Partner); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPartnerRepo) Update(ctx context.Context, id string, updates map[string]any) (*model.Partner, error) {
	args := m.Called(ctx, id, updates)
	if p, ok := args.Get(0).(*model.Partner); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPartnerRepo) SaveDocuments(ctx context.Context, partnerID string, docs []model.Document, updates map[string]any) (*model.Partner, error) {
	args := m.Called(ctx, partnerID, docs, updates)
	if p, ok := args.Get(0).(*model.Partner); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPartnerRepo) SaveBankAccount(ctx context.Context, acc *model.BankAccount, updates map[string]any) (*model.Partner, error) {
	args := m.Called(ctx, acc, updates)
	if p, ok := args.Get(0).(*model.Partner); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.PartnerRepository = (*mockPartnerRepo)(nil)

// мок для repo.TokenRepository
type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) SaveOTP(ctx context.Context, otp *model.OTPCode) error {
	return m.Called(ctx, otp).Error(0)
}

func (m *mockTokenRepo) GetOTP(ctx context.Context, phone string) (*model.OTPCode, error) {
	args := m.Called(ctx, phone)
	if o, ok := args.Get(0).(*model.OTPCode); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTokenRepo) IncrementOTPAttempts(ctx context.Context, phone string) error {
	return m.Called(ctx, phone).Error(0)
}

func (m *mockTokenRepo) DeleteOTP(ctx context.Context, phone string) error {
	return m.Called(ctx, phone).Error(0)
}

func (m *mockTokenRepo) CreateRefreshToken(ctx context.Context, t *model.RefreshToken) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTokenRepo) RotateRefreshToken(ctx context.Context, old string, next *model.RefreshToken, now time.Time) error {
	return m.Called(ctx, old, next, now).Error(0)
}

func (m *mockTokenRepo) RevokeAll(ctx context.Context, partnerID string, now time.Time) error {
	return m.Called(ctx, partnerID, now).Error(0)
}

var _ repo.TokenRepository = (*mockTokenRepo)(nil)

// мок для repo.OrderRepository
type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) CountByPartner(ctx context.Context, partnerID string) (int64, error) {
	args := m.Called(ctx, partnerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepo) CreateOrders(ctx context.Context, orders []model.Order) error {
	return m.Called(ctx, orders).Error(0)
}

func (m *mockOrderRepo) List(ctx context.Context, partnerID, status string) ([]model.Order, error) {
	args := m.Called(ctx, partnerID, status)
	out, _ := args.Get(0).([]model.Order)
	return out, args.Error(1)
}

func (m *mockOrderRepo) Transition(ctx context.Context, partnerID, id, from, to, reason string, credit bool) (*model.Order, error) {
	args := m.Called(ctx, partnerID, id, from, to, reason, credit)
	if o, ok := args.Get(0).(*model.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.OrderRepository = (*mockOrderRepo)(nil)

// мок для repo.EarningsRepository
type mockEarningsRepo struct{ mock.Mock }

func (m *mockEarningsRepo) Totals(ctx context.Context, partnerID string, since time.Time) (repo.EarningsTotals, error) {
	args := m.Called(ctx, partnerID, since)
	return args.Get(0).(repo.EarningsTotals), args.Error(1)
}

func (m *mockEarningsRepo) ListTransactions(ctx context.Context, partnerID string, offset, limit int) ([]model.Transaction, int64, error) {
	args := m.Called(ctx, partnerID, offset, limit)
	out, _ := args.Get(0).([]model.Transaction)
	return out, args.Get(1).(int64), args.Error(2)
}

func (m *mockEarningsRepo) CreateIncentives(ctx context.Context, items []model.Incentive) error {
	return m.Called(ctx, items).Error(0)
}

func (m *mockEarningsRepo) ListIncentives(ctx context.Context, partnerID string, now time.Time) ([]model.Incentive, error) {
	args := m.Called(ctx, partnerID, now)
	out, _ := args.Get(0).([]model.Incentive)
	return out, args.Error(1)
}

var _ repo.EarningsRepository = (*mockEarningsRepo)(nil)

// фиксированный издатель access-токенов
type stubIssuer struct{}

func (stubIssuer) IssueAccessToken(partnerID string) (string, error) {
	return "access-" + partnerID, nil
}

type mockSeeder struct{ mock.Mock }

func (m *mockSeeder) SeedDemo(ctx context.Context, partnerID string) error {
	return m.Called(ctx, partnerID).Error(0)
}
