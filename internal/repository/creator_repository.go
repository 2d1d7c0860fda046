package repository

import (
	"context"

	"github.com/semearhq/semear-backend/internal/model"
	"gorm.io/gorm"
)

type CreatorRepository interface {
	Create(ctx context.Context, c *model.Creator) error
	FindByID(ctx context.Context, id uint64) (*model.Creator, error)
	List(ctx context.Context) ([]model.Creator, error)
	UpdateTier(ctx context.Context, id uint64, tier model.Tier) error
	AddSeeds(ctx context.Context, id uint64, seeds int64) error
	AddBalance(ctx context.Context, id uint64, cents int64) error
	ResetCompetitive(ctx context.Context) error
}

type creatorRepository struct {
	db *gorm.DB
}

func NewCreatorRepository(db *gorm.DB) CreatorRepository {
	return &creatorRepository{db: db}
}

func (r *creatorRepository) Create(ctx context.Context, c *model.Creator) error {
	if c.Tier == "" {
		c.Tier = model.TierNovice
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *creatorRepository) FindByID(ctx context.Context, id uint64) (*model.Creator, error) {
	var c model.Creator
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *creatorRepository) List(ctx context.Context) ([]model.Creator, error) {
	var list []model.Creator
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *creatorRepository) UpdateTier(ctx context.Context, id uint64, tier model.Tier) error {
	return r.db.WithContext(ctx).
		Model(&model.Creator{}).
		Where("id = ?", id).
		Update("tier", tier).Error
}

func (r *creatorRepository) AddSeeds(ctx context.Context, id uint64, seeds int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Creator{}).
		Where("id = ?", id).
		Update("seeds_received", gorm.Expr("seeds_received + ?", seeds))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *creatorRepository) AddBalance(ctx context.Context, id uint64, cents int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Creator{}).
		Where("id = ?", id).
		Update("balance_cents", gorm.Expr("balance_cents + ?", cents))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ResetCompetitive zeroes every creator's ranking state. Identity columns
// (display name, email) and the monetary balance are untouched.
func (r *creatorRepository) ResetCompetitive(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&model.Creator{}).
		Updates(map[string]interface{}{
			"tier":           model.TierNovice,
			"seeds_received": 0,
			"manual_points":  0,
		}).Error
}
