package repository

import (
	"context"

	"github.com/semearhq/semear-backend/internal/model"
	"gorm.io/gorm"
)

// DuplicateKey identifies a (fund, recipient) pair holding more than one
// distribution row. These can only originate from writes that predate the
// unique index; the auditor cleans them up.
type DuplicateKey struct {
	FundID        uint64
	RecipientType model.RecipientType
	RecipientID   uint64
	N             int64
}

type DistributionRepository interface {
	Create(ctx context.Context, d *model.Distribution) error
	// ListByFund returns a fund's distribution rows, earliest first; the
	// auditor recomputes the books from them.
	ListByFund(ctx context.Context, fundID uint64) ([]model.Distribution, error)
	FindDuplicateKeys(ctx context.Context) ([]DuplicateKey, error)
	// ListByKey returns all rows for a (fund, recipient) tuple, earliest first.
	ListByKey(ctx context.Context, key DuplicateKey) ([]model.Distribution, error)
	DeleteByID(ctx context.Context, id uint64) error
}

type distributionRepository struct {
	db *gorm.DB
}

func NewDistributionRepository(db *gorm.DB) DistributionRepository {
	return &distributionRepository{db: db}
}

func (r *distributionRepository) Create(ctx context.Context, d *model.Distribution) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *distributionRepository) ListByFund(ctx context.Context, fundID uint64) ([]model.Distribution, error) {
	var list []model.Distribution
	err := r.db.WithContext(ctx).
		Where("fund_id = ?", fundID).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *distributionRepository) FindDuplicateKeys(ctx context.Context) ([]DuplicateKey, error) {
	var keys []DuplicateKey
	err := r.db.WithContext(ctx).
		Model(&model.Distribution{}).
		Select("fund_id AS fund_id, recipient_type AS recipient_type, recipient_id AS recipient_id, COUNT(*) AS n").
		Group("fund_id, recipient_type, recipient_id").
		Having("COUNT(*) > 1").
		Scan(&keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *distributionRepository) ListByKey(ctx context.Context, key DuplicateKey) ([]model.Distribution, error) {
	var list []model.Distribution
	err := r.db.WithContext(ctx).
		Where("fund_id = ? AND recipient_type = ? AND recipient_id = ?",
			key.FundID, key.RecipientType, key.RecipientID).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *distributionRepository) DeleteByID(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Distribution{}, id).Error
}
