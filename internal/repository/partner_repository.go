package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/semearhq/semear-backend/internal/model"
	"gorm.io/gorm"
)

type PartnerRepository interface {
	Create(ctx context.Context, p *model.Partner) error
	FindByID(ctx context.Context, id uint64) (*model.Partner, error)
	RecordSale(ctx context.Context, id uint64, amountCents int64) error
	IssueCashbackCode(ctx context.Context, id uint64) (*model.CashbackCode, error)
	ResetCounters(ctx context.Context) error
	DeleteAllCashbackCodes(ctx context.Context) error
}

type partnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) PartnerRepository {
	return &partnerRepository{db: db}
}

func (r *partnerRepository) Create(ctx context.Context, p *model.Partner) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *partnerRepository) FindByID(ctx context.Context, id uint64) (*model.Partner, error) {
	var p model.Partner
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *partnerRepository) RecordSale(ctx context.Context, id uint64, amountCents int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Partner{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sales_count":    gorm.Expr("sales_count + 1"),
			"remitted_cents": gorm.Expr("remitted_cents + ?", amountCents),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *partnerRepository) IssueCashbackCode(ctx context.Context, id uint64) (*model.CashbackCode, error) {
	code := &model.CashbackCode{
		PartnerID: id,
		Code:      uuid.NewString(),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(code).Error; err != nil {
			return err
		}
		res := tx.Model(&model.Partner{}).
			Where("id = ?", id).
			Update("cashback_codes_issued", gorm.Expr("cashback_codes_issued + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return code, nil
}

func (r *partnerRepository) ResetCounters(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&model.Partner{}).
		Updates(map[string]interface{}{
			"sales_count":           0,
			"remitted_cents":        0,
			"cashback_codes_issued": 0,
		}).Error
}

func (r *partnerRepository) DeleteAllCashbackCodes(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.CashbackCode{}).Error
}
