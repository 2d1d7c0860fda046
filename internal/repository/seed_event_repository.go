package repository

import (
	"context"

	"github.com/semearhq/semear-backend/internal/model"
	"gorm.io/gorm"
)

type SeedEventRepository interface {
	Create(ctx context.Context, e *model.SeedEvent) error
	DeleteAll(ctx context.Context) error
}

type seedEventRepository struct {
	db *gorm.DB
}

func NewSeedEventRepository(db *gorm.DB) SeedEventRepository {
	return &seedEventRepository{db: db}
}

func (r *seedEventRepository) Create(ctx context.Context, e *model.SeedEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *seedEventRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.SeedEvent{}).Error
}
