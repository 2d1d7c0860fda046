package service

import (
	"context"
	"errors"

	"github.com/semearhq/semear-backend/internal/model"
	"github.com/semearhq/semear-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrInsufficientSeeds = errors.New("insufficient seed balance")

// DonationService moves seeds from a user to a creator: one donation row,
// the donor's balance down, the creator's seeds_received up, and two ledger
// events, all in one transaction.
type DonationService interface {
	Donate(ctx context.Context, donorID, creatorID uint64, seeds int64) (*model.Donation, error)
}

type donationService struct {
	db *gorm.DB
}

func NewDonationService(db *gorm.DB) DonationService {
	return &donationService{db: db}
}

func (s *donationService) Donate(ctx context.Context, donorID, creatorID uint64, seeds int64) (*model.Donation, error) {
	if seeds <= 0 {
		return nil, errors.New("seeds must be positive")
	}
	if _, err := repository.NewCreatorRepository(s.db).FindByID(ctx, creatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	donation := &model.Donation{DonorID: donorID, CreatorID: creatorID, Seeds: seeds}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewUserRepository(tx).DeductSeeds(ctx, donorID, seeds); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInsufficientSeeds
			}
			return err
		}
		if err := repository.NewCreatorRepository(tx).AddSeeds(ctx, creatorID, seeds); err != nil {
			return err
		}
		if err := repository.NewDonationRepository(tx).Create(ctx, donation); err != nil {
			return err
		}
		events := repository.NewSeedEventRepository(tx)
		if err := events.Create(ctx, &model.SeedEvent{
			RecipientType: string(model.RecipientUser),
			RecipientID:   donorID,
			Delta:         -seeds,
			Reason:        model.SeedEventDonationOut,
		}); err != nil {
			return err
		}
		return events.Create(ctx, &model.SeedEvent{
			RecipientType: string(model.RecipientCreator),
			RecipientID:   creatorID,
			Delta:         seeds,
			Reason:        model.SeedEventDonationIn,
		})
	})
	if err != nil {
		return nil, err
	}
	return donation, nil
}
