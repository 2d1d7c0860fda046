package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/semearhq/semear-backend/internal/model"
	"github.com/semearhq/semear-backend/internal/repository"
	"gorm.io/gorm"
)

const (
	// defaultShareBps is the creators' slice of a fund when neither config
	// nor the fund row says otherwise.
	defaultShareBps = 5000
	bpsDenominator  = 10000
)

// Result reports the outcome of one settlement attempt. Precondition
// violations (already settled, window still open, nobody eligible) come back
// here as flags rather than as errors.
type Result struct {
	FundID                uint64 `json:"fundId"`
	Settled               bool   `json:"settled"`
	AlreadySettled        bool   `json:"alreadySettled,omitempty"`
	Requeued              bool   `json:"requeued,omitempty"`
	Reason                string `json:"reason,omitempty"`
	CreatorDistributions  int    `json:"creatorDistributions"`
	UserDistributions     int    `json:"userDistributions"`
	TotalDistributedCents int64  `json:"totalDistributed"`
}

// Preview is the read-only counterpart of Result: the shares a settlement
// run would commit right now. It never writes.
type Preview struct {
	FundID            uint64  `json:"fundId"`
	CreatorPoolCents  int64   `json:"creatorPool"`
	UserPoolCents     int64   `json:"userPool"`
	CreatorShares     []Share `json:"creatorShares"`
	UserShares        []Share `json:"userShares"`
	TotalToDistribute int64   `json:"totalToDistribute"`
}

type Share struct {
	RecipientID uint64 `json:"recipientId"`
	Weight      int64  `json:"weight"`
	AmountCents int64  `json:"amountCents"`
}

type SettlementService interface {
	// Settle distributes the fund exactly once. A second call on a settled
	// fund is a no-op reporting AlreadySettled.
	Settle(ctx context.Context, fundID uint64) (*Result, error)
	// SettleOldestDue settles the oldest pending fund whose window closed.
	SettleOldestDue(ctx context.Context) (*Result, error)
	Preview(ctx context.Context, fundID uint64) (*Preview, error)
}

type settlementService struct {
	db       *gorm.DB
	shareBps int
	locks    *FundLocks
	now      func() time.Time
}

func NewSettlementService(db *gorm.DB, shareBps int, locks *FundLocks) SettlementService {
	if shareBps <= 0 || shareBps > bpsDenominator {
		shareBps = defaultShareBps
	}
	return &settlementService{db: db, shareBps: shareBps, locks: locks, now: time.Now}
}

// errNoRecipients aborts the settlement transaction when both cohorts are
// empty; the rollback releases the distributed claim and the fund stays
// queued.
var errNoRecipients = errors.New("no eligible recipients")

func (s *settlementService) SettleOldestDue(ctx context.Context) (*Result, error) {
	fund, err := repository.NewFundRepository(s.db).OldestPendingDue(ctx, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPendingFund
		}
		return nil, err
	}
	return s.Settle(ctx, fund.ID)
}

func (s *settlementService) Settle(ctx context.Context, fundID uint64) (*Result, error) {
	release := s.locks.Acquire(fundID)
	defer release()

	fund, err := repository.NewFundRepository(s.db).FindByID(ctx, fundID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFundNotFound
		}
		return nil, err
	}
	if fund.Distributed {
		return &Result{FundID: fundID, AlreadySettled: true, Reason: "already_settled"}, nil
	}
	if s.now().Before(fund.WindowEnd) {
		return &Result{FundID: fundID, Reason: "window_open"}, nil
	}

	result := &Result{FundID: fundID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claimed, err := repository.NewFundRepository(tx).ClaimForSettlement(ctx, fundID)
		if err != nil {
			return err
		}
		if !claimed {
			// We saw distributed=false above, so a concurrent attempt won
			// the claim between then and now.
			return ErrFundLocked
		}

		plan, err := s.plan(ctx, tx, fund)
		if err != nil {
			return err
		}
		if len(plan.CreatorShares) == 0 && len(plan.UserShares) == 0 {
			return errNoRecipients
		}

		distRepo := repository.NewDistributionRepository(tx)
		creatorRepo := repository.NewCreatorRepository(tx)
		userRepo := repository.NewUserRepository(tx)

		for _, share := range plan.CreatorShares {
			if err := distRepo.Create(ctx, &model.Distribution{
				FundID:        fundID,
				RecipientType: model.RecipientCreator,
				RecipientID:   share.RecipientID,
				AmountCents:   share.AmountCents,
			}); err != nil {
				return err
			}
			if err := creatorRepo.AddBalance(ctx, share.RecipientID, share.AmountCents); err != nil {
				return err
			}
			result.TotalDistributedCents += share.AmountCents
		}
		for _, share := range plan.UserShares {
			if err := distRepo.Create(ctx, &model.Distribution{
				FundID:        fundID,
				RecipientType: model.RecipientUser,
				RecipientID:   share.RecipientID,
				AmountCents:   share.AmountCents,
			}); err != nil {
				return err
			}
			if err := userRepo.AddBalance(ctx, share.RecipientID, share.AmountCents); err != nil {
				return err
			}
			result.TotalDistributedCents += share.AmountCents
		}

		result.Settled = true
		result.CreatorDistributions = len(plan.CreatorShares)
		result.UserDistributions = len(plan.UserShares)
		return nil
	})
	if err != nil {
		if errors.Is(err, errNoRecipients) {
			log.Printf("settlement: fund %d has no eligible recipients, requeued", fundID)
			return &Result{FundID: fundID, Requeued: true, Reason: "no_eligible_recipients"}, nil
		}
		return nil, err
	}

	log.Printf("settlement: fund %d distributed %d cents to %d creators and %d users",
		fundID, result.TotalDistributedCents, result.CreatorDistributions, result.UserDistributions)
	return result, nil
}

// Preview computes the same shares Settle would commit, without claiming the
// fund or writing anything. Simulation and settlement are deliberately
// separate entry points.
func (s *settlementService) Preview(ctx context.Context, fundID uint64) (*Preview, error) {
	fund, err := repository.NewFundRepository(s.db).FindByID(ctx, fundID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFundNotFound
		}
		return nil, err
	}
	return s.plan(ctx, s.db, fund)
}

// plan resolves eligibility against db (the live handle or an open
// transaction) and allocates both pools. When one cohort is empty its pool
// moves wholesale to the other.
func (s *settlementService) plan(ctx context.Context, db *gorm.DB, fund *model.Fund) (*Preview, error) {
	elig := NewEligibilityService(db)
	creators, err := elig.EligibleCreators(ctx)
	if err != nil {
		return nil, err
	}
	users, err := elig.EligibleUsers(ctx, fund.WindowStart, fund.WindowEnd)
	if err != nil {
		return nil, err
	}

	shareBps := s.shareBps
	if fund.CreatorShareBps != nil && *fund.CreatorShareBps > 0 && *fund.CreatorShareBps <= bpsDenominator {
		shareBps = *fund.CreatorShareBps
	}
	creatorPool := fund.TotalCents * int64(shareBps) / bpsDenominator
	userPool := fund.TotalCents - creatorPool

	switch {
	case len(creators) == 0 && len(users) > 0:
		userPool = fund.TotalCents
		creatorPool = 0
	case len(users) == 0 && len(creators) > 0:
		creatorPool = fund.TotalCents
		userPool = 0
	}

	p := &Preview{
		FundID:           fund.ID,
		CreatorPoolCents: creatorPool,
		UserPoolCents:    userPool,
	}
	for i, amount := range allocate(creatorPool, creators) {
		p.CreatorShares = append(p.CreatorShares, Share{
			RecipientID: creators[i].ID,
			Weight:      creators[i].Weight,
			AmountCents: amount,
		})
		p.TotalToDistribute += amount
	}
	for i, amount := range allocate(userPool, users) {
		p.UserShares = append(p.UserShares, Share{
			RecipientID: users[i].ID,
			Weight:      users[i].Weight,
			AmountCents: amount,
		})
		p.TotalToDistribute += amount
	}
	return p, nil
}
