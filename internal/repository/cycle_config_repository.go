package repository

import (
	"context"
	"time"

	"github.com/semearhq/semear-backend/internal/model"
	"gorm.io/gorm"
)

type CycleConfigRepository interface {
	// Get loads the singleton row, creating it on first use.
	Get(ctx context.Context) (*model.CycleConfig, error)
	Save(ctx context.Context, cfg *model.CycleConfig) error
}

type cycleConfigRepository struct {
	db *gorm.DB
}

func NewCycleConfigRepository(db *gorm.DB) CycleConfigRepository {
	return &cycleConfigRepository{db: db}
}

func (r *cycleConfigRepository) Get(ctx context.Context) (*model.CycleConfig, error) {
	now := time.Now()
	cfg := model.CycleConfig{
		ID:              model.CycleConfigID,
		CycleNumber:     1,
		SeasonNumber:    1,
		CycleStartedAt:  now,
		SeasonStartedAt: now,
	}
	if err := r.db.WithContext(ctx).
		Where("id = ?", model.CycleConfigID).
		FirstOrCreate(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *cycleConfigRepository) Save(ctx context.Context, cfg *model.CycleConfig) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}
