package repository

import (
	"context"

	"github.com/semearhq/semear-backend/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	AddBalance(ctx context.Context, id uint64, cents int64) error
	AddSeeds(ctx context.Context, id uint64, seeds int64) error
	DeductSeeds(ctx context.Context, id uint64, seeds int64) error
	ZeroScores(ctx context.Context) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) AddBalance(ctx context.Context, id uint64, cents int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
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

func (r *userRepository) AddSeeds(ctx context.Context, id uint64, seeds int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("seed_balance", gorm.Expr("seed_balance + ?", seeds))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeductSeeds only succeeds when the balance covers the amount; the
// conditional UPDATE keeps the check race-free.
func (r *userRepository) DeductSeeds(ctx context.Context, id uint64, seeds int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND seed_balance >= ?", id, seeds).
		Update("seed_balance", gorm.Expr("seed_balance - ?", seeds))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) ZeroScores(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&model.User{}).
		Update("score", 0).Error
}
