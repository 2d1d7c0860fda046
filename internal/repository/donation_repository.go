package repository

import (
	"context"

	"github.com/semearhq/semear-backend/internal/model"
	"gorm.io/gorm"
)

type DonationRepository interface {
	Create(ctx context.Context, d *model.Donation) error
	DeleteAll(ctx context.Context) error
}

type donationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, d *model.Donation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *donationRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.Donation{}).Error
}
