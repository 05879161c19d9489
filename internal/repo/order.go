package repo

import (
	"context"

	"PartnerApp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository — заказы партнёра.
type OrderRepository interface {
	CountByPartner(ctx context.Context, partnerID string) (int64, error)
	CreateOrders(ctx context.Context, orders []model.Order) error
	// List возвращает заказы партнёра, новые первыми. Пустой status — все.
	List(ctx context.Context, partnerID, status string) ([]model.Order, error)
	// Transition переводит заказ из from в to. При credit в той же транзакции
	// записывается начисление на сумму заказа. gorm.ErrRecordNotFound — заказа нет,
	// ErrConflict — заказ не в состоянии from.
	Transition(ctx context.Context, partnerID, id, from, to, reason string, credit bool) (*model.Order, error)
}

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepository создаёт реализацию OrderRepository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) CountByPartner(ctx context.Context, partnerID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Where("partner_id = ?", partnerID).Count(&n).Error
	return n, err
}

func (r *orderRepo) CreateOrders(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&orders).Error
}

func (r *orderRepo) List(ctx context.Context, partnerID, status string) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Where("partner_id = ?", partnerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []model.Order
	if err := q.Order("created_at DESC, id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) Transition(ctx context.Context, partnerID, id, from, to, reason string, credit bool) (*model.Order, error) {
	var out model.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, "id = ? AND partner_id = ?", id, partnerID).Error; err != nil {
			return err
		}
		updates := map[string]any{"status": to}
		if reason != "" {
			updates["reject_reason"] = reason
		}
		res := tx.Model(&model.Order{}).
			Where("id = ? AND partner_id = ? AND status = ?", id, partnerID, from).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		if credit {
			earning := &model.Transaction{
				ID:          uuid.NewString(),
				PartnerID:   partnerID,
				OrderID:     id,
				Type:        model.TxOrder,
				Amount:      out.Amount,
				Description: "Order " + id,
			}
			if err := tx.Create(earning).Error; err != nil {
				return err
			}
		}
		return tx.First(&out, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
