package repository

import (
	"context"

	"github.com/semearhq/semear-backend/internal/model"
	"gorm.io/gorm"
)

type CreatorCount struct {
	CreatorID uint64
	N         int64
}

type ContentRepository interface {
	Create(ctx context.Context, c *model.Content) error
	SumViewsByCreator(ctx context.Context, creatorID uint64) (int64, error)
	// ActiveCountsByCreator returns, per creator, the number of non-removed
	// content rows. Creators without any are absent from the map.
	ActiveCountsByCreator(ctx context.Context) (map[uint64]int64, error)
	DeleteAll(ctx context.Context) error
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, c *model.Content) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *contentRepository) SumViewsByCreator(ctx context.Context, creatorID uint64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Content{}).
		Where("creator_id = ? AND removed = ?", creatorID, false).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *contentRepository) ActiveCountsByCreator(ctx context.Context) (map[uint64]int64, error) {
	var rows []CreatorCount
	err := r.db.WithContext(ctx).
		Model(&model.Content{}).
		Select("creator_id AS creator_id, COUNT(*) AS n").
		Where("removed = ?", false).
		Group("creator_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		counts[row.CreatorID] = row.N
	}
	return counts, nil
}

func (r *contentRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.Content{}).Error
}
