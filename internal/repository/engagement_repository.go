package repository

import (
	"context"

	"github.com/semearhq/semear-backend/internal/model"
	"gorm.io/gorm"
)

// EngagementRepository covers the lighter score signals: polls authored by a
// creator and public messages received on their wall.
type EngagementRepository interface {
	CreatePoll(ctx context.Context, p *model.Poll) error
	CreateMessage(ctx context.Context, m *model.PublicMessage) error
	CountPollsByCreator(ctx context.Context, creatorID uint64) (int64, error)
	CountMessagesByCreator(ctx context.Context, creatorID uint64) (int64, error)
	DeleteAllPolls(ctx context.Context) error
	DeleteAllMessages(ctx context.Context) error
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) CreatePoll(ctx context.Context, p *model.Poll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *engagementRepository) CreateMessage(ctx context.Context, m *model.PublicMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *engagementRepository) CountPollsByCreator(ctx context.Context, creatorID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Poll{}).
		Where("creator_id = ?", creatorID).
		Count(&n).Error
	return n, err
}

func (r *engagementRepository) CountMessagesByCreator(ctx context.Context, creatorID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.PublicMessage{}).
		Where("creator_id = ?", creatorID).
		Count(&n).Error
	return n, err
}

func (r *engagementRepository) DeleteAllPolls(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.Poll{}).Error
}

func (r *engagementRepository) DeleteAllMessages(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.PublicMessage{}).Error
}
