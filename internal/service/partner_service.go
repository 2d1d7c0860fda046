package service

import (
	"context"
	"errors"

	"github.com/semearhq/semear-backend/internal/model"
	"github.com/semearhq/semear-backend/internal/repository"
	"gorm.io/gorm"
)

// centsPerSeed is the purchase-to-seed exchange rate: one seed per whole
// currency unit spent through a partner.
const centsPerSeed = 100

// SaleResult reports one recorded partner sale.
type SaleResult struct {
	PurchaseID   uint64 `json:"purchaseId"`
	PartnerID    uint64 `json:"partnerId"`
	UserID       uint64 `json:"userId"`
	AmountCents  int64  `json:"amountCents"`
	SeedsGranted int64  `json:"seedsGranted"`
}

// CashbackResult reports a cashback release. A repeat call on an already
// released purchase reports AlreadyReleased and issues no second code.
type CashbackResult struct {
	PurchaseID      uint64 `json:"purchaseId"`
	AlreadyReleased bool   `json:"alreadyReleased,omitempty"`
	Code            string `json:"code,omitempty"`
}

// PartnerService handles purchases made through partner shops: a sale bumps
// the partner's counters, opens a purchase awaiting payment settlement and
// grants the buyer seeds; once the payment settles, the cashback release
// moves the purchase to its terminal status and issues a cashback code.
type PartnerService interface {
	RecordSale(ctx context.Context, partnerID, userID uint64, amountCents int64) (*SaleResult, error)
	ReleaseCashback(ctx context.Context, purchaseID uint64) (*CashbackResult, error)
}

type partnerService struct {
	db *gorm.DB
}

func NewPartnerService(db *gorm.DB) PartnerService {
	return &partnerService{db: db}
}

func (s *partnerService) RecordSale(ctx context.Context, partnerID, userID uint64, amountCents int64) (*SaleResult, error) {
	if amountCents <= 0 {
		return nil, errors.New("amount must be positive")
	}
	seeds := amountCents / centsPerSeed
	purchase := &model.Purchase{
		UserID:      userID,
		PartnerID:   partnerID,
		AmountCents: amountCents,
		Status:      model.PurchaseStatusAwaitingSettlement,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewPartnerRepository(tx).RecordSale(ctx, partnerID, amountCents); err != nil {
			return err
		}
		if err := repository.NewPurchaseRepository(tx).Create(ctx, purchase); err != nil {
			return err
		}
		if seeds == 0 {
			return nil
		}
		if err := repository.NewUserRepository(tx).AddSeeds(ctx, userID, seeds); err != nil {
			return err
		}
		return repository.NewSeedEventRepository(tx).Create(ctx, &model.SeedEvent{
			RecipientType: string(model.RecipientUser),
			RecipientID:   userID,
			Delta:         seeds,
			Reason:        model.SeedEventPurchaseGrant,
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &SaleResult{
		PurchaseID:   purchase.ID,
		PartnerID:    partnerID,
		UserID:       userID,
		AmountCents:  amountCents,
		SeedsGranted: seeds,
	}, nil
}

func (s *partnerService) ReleaseCashback(ctx context.Context, purchaseID uint64) (*CashbackResult, error) {
	purchase, err := repository.NewPurchaseRepository(s.db).FindByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	result := &CashbackResult{PurchaseID: purchaseID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		released, err := repository.NewPurchaseRepository(tx).ReleaseCashback(ctx, purchaseID)
		if err != nil {
			return err
		}
		if released == 0 {
			result.AlreadyReleased = true
			return nil
		}
		code, err := repository.NewPartnerRepository(tx).IssueCashbackCode(ctx, purchase.PartnerID)
		if err != nil {
			return err
		}
		result.Code = code.Code
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
