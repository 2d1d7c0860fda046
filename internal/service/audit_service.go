package service

import (
	"context"
	"errors"
	"log"

	"github.com/semearhq/semear-backend/internal/model"
	"github.com/semearhq/semear-backend/internal/repository"
	"gorm.io/gorm"
)

// epsilonCents is the tolerance when comparing a fund total against the sum
// of its distributions (0.01 currency unit).
const epsilonCents = 1

// BookReport is the outcome of recomputing a settled fund's books.
type BookReport struct {
	FundID           uint64 `json:"fundId"`
	FundTotalCents   int64  `json:"fundTotal"`
	DistributedCents int64  `json:"distributed"`
	Distributions    int    `json:"distributions"`
	DeltaCents       int64  `json:"delta"`
	Balanced         bool   `json:"balanced"`
}

// Correction records one reversed duplicate distribution, with the balances
// before and after the reversal.
type Correction struct {
	DistributionID uint64              `json:"distributionId"`
	FundID         uint64              `json:"fundId"`
	RecipientType  model.RecipientType `json:"recipientType"`
	RecipientID    uint64              `json:"recipientId"`
	AmountCents    int64               `json:"amountCents"`
	BalanceBefore  int64               `json:"balanceBefore"`
	BalanceAfter   int64               `json:"balanceAfter"`
}

type CorrectionReport struct {
	DuplicateKeys int          `json:"duplicateKeys"`
	Corrections   []Correction `json:"corrections"`
}

// AuditService detects double-settlements and unbalanced books, and carries
// the only write path allowed to touch committed financial state: reversing
// the extras of a duplicated distribution.
type AuditService interface {
	VerifyBooks(ctx context.Context, fundID uint64) (*BookReport, error)
	FindDuplicates(ctx context.Context) ([]repository.DuplicateKey, error)
	// CorrectDuplicates keeps the earliest row of each duplicated
	// (fund, recipient) tuple, reverses the balance credit of every later
	// row and deletes it, all inside one transaction per fund.
	CorrectDuplicates(ctx context.Context) (*CorrectionReport, error)
}

type auditService struct {
	db    *gorm.DB
	locks *FundLocks
}

func NewAuditService(db *gorm.DB, locks *FundLocks) AuditService {
	return &auditService{db: db, locks: locks}
}

func (s *auditService) VerifyBooks(ctx context.Context, fundID uint64) (*BookReport, error) {
	fund, err := repository.NewFundRepository(s.db).FindByID(ctx, fundID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFundNotFound
		}
		return nil, err
	}
	rows, err := repository.NewDistributionRepository(s.db).ListByFund(ctx, fundID)
	if err != nil {
		return nil, err
	}
	var distributed int64
	for _, row := range rows {
		distributed += row.AmountCents
	}
	delta := distributed - fund.TotalCents
	report := &BookReport{
		FundID:           fundID,
		FundTotalCents:   fund.TotalCents,
		DistributedCents: distributed,
		Distributions:    len(rows),
		DeltaCents:       delta,
	}
	if !fund.Distributed {
		// A pending fund has no books to balance yet.
		report.Balanced = distributed == 0
		return report, nil
	}
	report.Balanced = delta >= -epsilonCents && delta <= epsilonCents
	if !report.Balanced {
		log.Printf("audit: fund %d unbalanced, total=%d distributed=%d delta=%d",
			fundID, fund.TotalCents, distributed, delta)
	}
	return report, nil
}

func (s *auditService) FindDuplicates(ctx context.Context) ([]repository.DuplicateKey, error) {
	return repository.NewDistributionRepository(s.db).FindDuplicateKeys(ctx)
}

func (s *auditService) CorrectDuplicates(ctx context.Context) (*CorrectionReport, error) {
	keys, err := s.FindDuplicates(ctx)
	if err != nil {
		return nil, err
	}
	report := &CorrectionReport{DuplicateKeys: len(keys)}
	for _, key := range keys {
		corrections, err := s.correctKey(ctx, key)
		if err != nil {
			return nil, err
		}
		report.Corrections = append(report.Corrections, corrections...)
	}
	return report, nil
}

func (s *auditService) correctKey(ctx context.Context, key repository.DuplicateKey) ([]Correction, error) {
	// Same mutual-exclusion key as Settle, so a correction can never race a
	// settlement of the same fund.
	release := s.locks.Acquire(key.FundID)
	defer release()

	var corrections []Correction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := repository.NewDistributionRepository(tx).ListByKey(ctx, key)
		if err != nil {
			return err
		}
		if len(rows) < 2 {
			return nil
		}
		// rows is ordered by id; the earliest is the legitimate payout.
		for _, extra := range rows[1:] {
			c, err := s.reverse(ctx, tx, extra)
			if err != nil {
				return err
			}
			corrections = append(corrections, *c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, c := range corrections {
		log.Printf("audit: reversed duplicate distribution %d (fund=%d %s=%d amount=%d balance %d -> %d)",
			c.DistributionID, c.FundID, c.RecipientType, c.RecipientID, c.AmountCents, c.BalanceBefore, c.BalanceAfter)
	}
	return corrections, nil
}

func (s *auditService) reverse(ctx context.Context, tx *gorm.DB, d model.Distribution) (*Correction, error) {
	c := &Correction{
		DistributionID: d.ID,
		FundID:         d.FundID,
		RecipientType:  d.RecipientType,
		RecipientID:    d.RecipientID,
		AmountCents:    d.AmountCents,
	}
	switch d.RecipientType {
	case model.RecipientCreator:
		repo := repository.NewCreatorRepository(tx)
		before, err := repo.FindByID(ctx, d.RecipientID)
		if err != nil {
			return nil, err
		}
		c.BalanceBefore = before.BalanceCents
		if err := repo.AddBalance(ctx, d.RecipientID, -d.AmountCents); err != nil {
			return nil, err
		}
	case model.RecipientUser:
		repo := repository.NewUserRepository(tx)
		before, err := repo.FindByID(ctx, d.RecipientID)
		if err != nil {
			return nil, err
		}
		c.BalanceBefore = before.BalanceCents
		if err := repo.AddBalance(ctx, d.RecipientID, -d.AmountCents); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("unknown recipient type " + string(d.RecipientType))
	}
	c.BalanceAfter = c.BalanceBefore - d.AmountCents
	if err := repository.NewDistributionRepository(tx).DeleteByID(ctx, d.ID); err != nil {
		return nil, err
	}
	return c, nil
}
