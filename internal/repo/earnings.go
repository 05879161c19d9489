package repo

import (
	"context"
	"time"

	"PartnerApp/internal/model"

	"gorm.io/gorm"
)

// EarningsTotals — суммы начислений за период.
type EarningsTotals struct {
	Orders          float64
	Incentives      float64
	OrdersCompleted int64
}

// EarningsRepository — начисления и бонусы.
type EarningsRepository interface {
	Totals(ctx context.Context, partnerID string, since time.Time) (EarningsTotals, error)
	ListTransactions(ctx context.Context, partnerID string, offset, limit int) ([]model.Transaction, int64, error)
	CreateIncentives(ctx context.Context, items []model.Incentive) error
	// ListIncentives возвращает бонусы, не истёкшие к now.
	ListIncentives(ctx context.Context, partnerID string, now time.Time) ([]model.Incentive, error)
}

type earningsRepo struct {
	db *gorm.DB
}

// NewEarningsRepository создаёт реализацию EarningsRepository.
func NewEarningsRepository(db *gorm.DB) EarningsRepository {
	return &earningsRepo{db: db}
}

func (r *earningsRepo) Totals(ctx context.Context, partnerID string, since time.Time) (EarningsTotals, error) {
	var rows []struct {
		Type  string
		Total float64
		Cnt   int64
	}
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS cnt").
		Where("partner_id = ? AND created_at >= ?", partnerID, since.UTC()).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return EarningsTotals{}, err
	}
	var t EarningsTotals
	for _, row := range rows {
		switch row.Type {
		case model.TxOrder:
			t.Orders = row.Total
			t.OrdersCompleted = row.Cnt
		case model.TxIncentive:
			t.Incentives = row.Total
		}
	}
	return t, nil
}

func (r *earningsRepo) ListTransactions(ctx context.Context, partnerID string, offset, limit int) ([]model.Transaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Transaction{}).Where("partner_id = ?", partnerID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []model.Transaction
	err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("created_at DESC, id").
		Offset(offset).Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *earningsRepo) CreateIncentives(ctx context.Context, items []model.Incentive) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *earningsRepo) ListIncentives(ctx context.Context, partnerID string, now time.Time) ([]model.Incentive, error) {
	var out []model.Incentive
	err := r.db.WithContext(ctx).
		Where("partner_id = ? AND expires_at > ?", partnerID, now.UTC()).
		Order("expires_at").
		Find(&out).Error
	return out, err
}
