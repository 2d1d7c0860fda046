package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/semearhq/semear-backend/internal/model"
	"github.com/semearhq/semear-backend/internal/repository"
	"gorm.io/gorm"
)

// resetStep is one entry of the declarative reset scope. The step lists are
// the single source of truth for what a reset touches; nothing outside them
// may clear competitive state.
type resetStep struct {
	name string
	run  func(ctx context.Context, tx *gorm.DB) error
}

// cycleResetSteps clears everything tied to competitive standing: donations,
// the seed ledger, content, polls, wall messages, creator ranking columns,
// user scores and partner sales counters. Identity and monetary balances are
// out of scope on purpose.
func cycleResetSteps() []resetStep {
	return []resetStep{
		{"delete donations", func(ctx context.Context, tx *gorm.DB) error {
			return repository.NewDonationRepository(tx).DeleteAll(ctx)
		}},
		{"delete seed events", func(ctx context.Context, tx *gorm.DB) error {
			return repository.NewSeedEventRepository(tx).DeleteAll(ctx)
		}},
		{"delete content", func(ctx context.Context, tx *gorm.DB) error {
			return repository.NewContentRepository(tx).DeleteAll(ctx)
		}},
		{"delete polls", func(ctx context.Context, tx *gorm.DB) error {
			return repository.NewEngagementRepository(tx).DeleteAllPolls(ctx)
		}},
		{"delete public messages", func(ctx context.Context, tx *gorm.DB) error {
			return repository.NewEngagementRepository(tx).DeleteAllMessages(ctx)
		}},
		{"reset creator ranking state", func(ctx context.Context, tx *gorm.DB) error {
			return repository.NewCreatorRepository(tx).ResetCompetitive(ctx)
		}},
		{"zero user scores", func(ctx context.Context, tx *gorm.DB) error {
			return repository.NewUserRepository(tx).ZeroScores(ctx)
		}},
		{"reset partner counters", func(ctx context.Context, tx *gorm.DB) error {
			return repository.NewPartnerRepository(tx).ResetCounters(ctx)
		}},
		{"delete cashback codes", func(ctx context.Context, tx *gorm.DB) error {
			return repository.NewPartnerRepository(tx).DeleteAllCashbackCodes(ctx)
		}},
	}
}

// ResetResult reports the period counters after a transition.
type ResetResult struct {
	CycleNumber  int  `json:"cycleNumber"`
	SeasonNumber int  `json:"seasonNumber"`
	SeasonReset  bool `json:"seasonReset"`
}

// TickResult reports what an automatic tick did, if anything.
type TickResult struct {
	Transitioned bool         `json:"transitioned"`
	Paused       bool         `json:"paused"`
	Reset        *ResetResult `json:"reset,omitempty"`
}

// CycleService owns the competitive period clock. Cycle resets advance the
// cycle counter; a season reset runs the same scope plus a season increment
// and a cycle counter rollback to 1.
type CycleService interface {
	Status(ctx context.Context) (*model.CycleConfig, error)
	// Tick applies a time-triggered transition when the cycle window has
	// elapsed. The paused flag suppresses it entirely.
	Tick(ctx context.Context, now time.Time) (*TickResult, error)
	ForceCycleReset(ctx context.Context) (*ResetResult, error)
	ForceSeasonReset(ctx context.Context) (*ResetResult, error)
	SetPaused(ctx context.Context, paused bool) error
}

type cycleService struct {
	db              *gorm.DB
	cycleLength     time.Duration
	cyclesPerSeason int

	// mu is the exclusive claim on CycleConfig for the duration of a reset.
	mu sync.Mutex
}

func NewCycleService(db *gorm.DB, cycleLengthDays, cyclesPerSeason int) CycleService {
	if cycleLengthDays <= 0 {
		cycleLengthDays = 30
	}
	if cyclesPerSeason <= 0 {
		cyclesPerSeason = 1
	}
	return &cycleService{
		db:              db,
		cycleLength:     time.Duration(cycleLengthDays) * 24 * time.Hour,
		cyclesPerSeason: cyclesPerSeason,
	}
}

func (s *cycleService) Status(ctx context.Context) (*model.CycleConfig, error) {
	return repository.NewCycleConfigRepository(s.db).Get(ctx)
}

func (s *cycleService) Tick(ctx context.Context, now time.Time) (*TickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := repository.NewCycleConfigRepository(s.db).Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.Paused {
		return &TickResult{Paused: true}, nil
	}
	if now.Sub(cfg.CycleStartedAt) < s.cycleLength {
		return &TickResult{}, nil
	}

	// The last cycle of a season rolls over into a season reset.
	season := cfg.CycleNumber >= s.cyclesPerSeason
	reset, err := s.reset(ctx, now, season)
	if err != nil {
		return nil, err
	}
	return &TickResult{Transitioned: true, Reset: reset}, nil
}

func (s *cycleService) ForceCycleReset(ctx context.Context) (*ResetResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reset(ctx, time.Now(), false)
}

func (s *cycleService) ForceSeasonReset(ctx context.Context) (*ResetResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reset(ctx, time.Now(), true)
}

func (s *cycleService) SetPaused(ctx context.Context, paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	repo := repository.NewCycleConfigRepository(s.db)
	cfg, err := repo.Get(ctx)
	if err != nil {
		return err
	}
	cfg.Paused = paused
	return repo.Save(ctx, cfg)
}

// reset runs the declarative step list and advances the period counters, all
// in one transaction. Callers must hold s.mu.
func (s *cycleService) reset(ctx context.Context, now time.Time, season bool) (*ResetResult, error) {
	var result ResetResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.NewCycleConfigRepository(tx)
		cfg, err := repo.Get(ctx)
		if err != nil {
			return err
		}

		for _, step := range cycleResetSteps() {
			if err := step.run(ctx, tx); err != nil {
				log.Printf("cycle: reset step %q failed: %v", step.name, err)
				return err
			}
		}

		if season {
			cfg.SeasonNumber++
			cfg.CycleNumber = 1
			cfg.SeasonStartedAt = now
		} else {
			cfg.CycleNumber++
		}
		cfg.CycleStartedAt = now
		if err := repo.Save(ctx, cfg); err != nil {
			return err
		}
		result = ResetResult{
			CycleNumber:  cfg.CycleNumber,
			SeasonNumber: cfg.SeasonNumber,
			SeasonReset:  season,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	kind := "cycle"
	if season {
		kind = "season"
	}
	log.Printf("cycle: %s reset complete, now season %d cycle %d", kind, result.SeasonNumber, result.CycleNumber)
	return &result, nil
}
