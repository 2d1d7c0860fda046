package repository

import (
	"context"
	"time"

	"github.com/semearhq/semear-backend/internal/model"
	"gorm.io/gorm"
)

type FundRepository interface {
	Create(ctx context.Context, f *model.Fund) error
	FindByID(ctx context.Context, id uint64) (*model.Fund, error)
	OldestPendingDue(ctx context.Context, now time.Time) (*model.Fund, error)
	ListPendingDue(ctx context.Context, now time.Time) ([]model.Fund, error)
	// ClaimForSettlement flips distributed false→true as a compare-and-swap.
	// The claim participates in the caller's transaction, so a rolled-back
	// settlement releases it. Returns false when the fund was already
	// claimed or settled.
	ClaimForSettlement(ctx context.Context, id uint64) (bool, error)
}

type fundRepository struct {
	db *gorm.DB
}

func NewFundRepository(db *gorm.DB) FundRepository {
	return &fundRepository{db: db}
}

func (r *fundRepository) Create(ctx context.Context, f *model.Fund) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fundRepository) FindByID(ctx context.Context, id uint64) (*model.Fund, error) {
	var f model.Fund
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fundRepository) OldestPendingDue(ctx context.Context, now time.Time) (*model.Fund, error) {
	var f model.Fund
	err := r.db.WithContext(ctx).
		Where("distributed = ? AND window_end <= ?", false, now).
		Order("window_end ASC").
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fundRepository) ListPendingDue(ctx context.Context, now time.Time) ([]model.Fund, error) {
	var list []model.Fund
	err := r.db.WithContext(ctx).
		Where("distributed = ? AND window_end <= ?", false, now).
		Order("window_end ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *fundRepository) ClaimForSettlement(ctx context.Context, id uint64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Fund{}).
		Where("id = ? AND distributed = ?", id, false).
		Update("distributed", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
