package repo

import (
	"context"
	"errors"

	"PartnerApp/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PartnerRepository — доступ к партнёрам и их онбординг-данным.
type PartnerRepository interface {
	Create(ctx context.Context, p *model.Partner) error
	// GetByID возвращает gorm.ErrRecordNotFound, если партнёра нет.
	GetByID(ctx context.Context, id string) (*model.Partner, error)
	// GetByPhone возвращает (nil, nil), если партнёра нет.
	GetByPhone(ctx context.Context, phone string) (*model.Partner, error)
	Update(ctx context.Context, id string, updates map[string]any) (*model.Partner, error)
	// SaveDocuments заменяет документы партнёра и применяет updates одной транзакцией.
	SaveDocuments(ctx context.Context, partnerID string, docs []model.Document, updates map[string]any) (*model.Partner, error)
	// SaveBankAccount сохраняет (upsert) реквизиты и применяет updates одной транзакцией.
	SaveBankAccount(ctx context.Context, acc *model.BankAccount, updates map[string]any) (*model.Partner, error)
}

type partnerRepo struct {
	db *gorm.DB
}

// NewPartnerRepository создаёт реализацию PartnerRepository.
func NewPartnerRepository(db *gorm.DB) PartnerRepository {
	return &partnerRepo{db: db}
}

func (r *partnerRepo) Create(ctx context.Context, p *model.Partner) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *partnerRepo) GetByID(ctx context.Context, id string) (*model.Partner, error) {
	var p model.Partner
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *partnerRepo) GetByPhone(ctx context.Context, phone string) (*model.Partner, error) {
	var p model.Partner
	err := r.db.WithContext(ctx).First(&p, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *partnerRepo) Update(ctx context.Context, id string, updates map[string]any) (*model.Partner, error) {
	var out *model.Partner
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := applyUpdates(tx, id, updates)
		out = p
		return err
	})
	return out, err
}

func (r *partnerRepo) SaveDocuments(ctx context.Context, partnerID string, docs []model.Document, updates map[string]any) (*model.Partner, error) {
	var out *model.Partner
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("partner_id = ?", partnerID).Delete(&model.Document{}).Error; err != nil {
			return err
		}
		for i := range docs {
			docs[i].ID = 0
			docs[i].PartnerID = partnerID
		}
		if len(docs) > 0 {
			if err := tx.Create(&docs).Error; err != nil {
				return err
			}
		}
		p, err := applyUpdates(tx, partnerID, updates)
		out = p
		return err
	})
	return out, err
}

func (r *partnerRepo) SaveBankAccount(ctx context.Context, acc *model.BankAccount, updates map[string]any) (*model.Partner, error) {
	var out *model.Partner
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "partner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"account_holder", "account_number", "ifsc", "bank_name"}),
		}).Create(acc).Error
		if err != nil {
			return err
		}
		p, err := applyUpdates(tx, acc.PartnerID, updates)
		out = p
		return err
	})
	return out, err
}

// applyUpdates обновляет поля партнёра в tx и перечитывает запись.
func applyUpdates(tx *gorm.DB, id string, updates map[string]any) (*model.Partner, error) {
	if len(updates) > 0 {
		res := tx.Model(&model.Partner{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	var p model.Partner
	if err := tx.First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
