package repository

import (
	"context"
	"time"

	"github.com/semearhq/semear-backend/internal/model"
	"gorm.io/gorm"
)

type UserWeight struct {
	UserID uint64
	Cents  int64
}

type PurchaseRepository interface {
	Create(ctx context.Context, p *model.Purchase) error
	FindByID(ctx context.Context, id uint64) (*model.Purchase, error)
	ReleaseCashback(ctx context.Context, id uint64) (int64, error)
	// ReleasedWeightsByUser sums cashback_released purchase amounts per user
	// inside [start, end]. Users with no qualifying purchase are absent.
	ReleasedWeightsByUser(ctx context.Context, start, end time.Time) (map[uint64]int64, error)
}

type purchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, p *model.Purchase) error {
	if p.Status == "" {
		p.Status = model.PurchaseStatusAwaitingSettlement
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *purchaseRepository) FindByID(ctx context.Context, id uint64) (*model.Purchase, error) {
	var p model.Purchase
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ReleaseCashback moves a purchase to cashback_released unless it already is;
// the returned count is RowsAffected so callers can tell a repeat call apart.
func (r *purchaseRepository) ReleaseCashback(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Purchase{}).
		Where("id = ? AND status <> ?", id, model.PurchaseStatusCashbackReleased).
		Update("status", model.PurchaseStatusCashbackReleased)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *purchaseRepository) ReleasedWeightsByUser(ctx context.Context, start, end time.Time) (map[uint64]int64, error) {
	var rows []UserWeight
	err := r.db.WithContext(ctx).
		Model(&model.Purchase{}).
		Select("user_id AS user_id, COALESCE(SUM(amount_cents), 0) AS cents").
		Where("status = ? AND created_at >= ? AND created_at <= ?", model.PurchaseStatusCashbackReleased, start, end).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	weights := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		weights[row.UserID] = row.Cents
	}
	return weights, nil
}
