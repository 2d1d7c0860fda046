package service

import (
	"context"
	"sort"
	"time"

	"github.com/semearhq/semear-backend/internal/repository"
	"gorm.io/gorm"
)

// EligibilityService resolves, for a settlement window, who may receive a
// fund share and with what weight. Creators qualify by having at least one
// non-removed content row (weight = count of those rows); users qualify by
// having at least one cashback_released purchase inside the window (weight =
// sum of those purchase amounts).
type EligibilityService interface {
	EligibleCreators(ctx context.Context) ([]CohortMember, error)
	EligibleUsers(ctx context.Context, windowStart, windowEnd time.Time) ([]CohortMember, error)
}

type eligibilityService struct {
	db *gorm.DB
}

func NewEligibilityService(db *gorm.DB) EligibilityService {
	return &eligibilityService{db: db}
}

func (s *eligibilityService) EligibleCreators(ctx context.Context) ([]CohortMember, error) {
	counts, err := repository.NewContentRepository(s.db).ActiveCountsByCreator(ctx)
	if err != nil {
		return nil, err
	}
	return toSortedMembers(counts), nil
}

func (s *eligibilityService) EligibleUsers(ctx context.Context, windowStart, windowEnd time.Time) ([]CohortMember, error) {
	weights, err := repository.NewPurchaseRepository(s.db).ReleasedWeightsByUser(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	return toSortedMembers(weights), nil
}

// toSortedMembers orders by ID so downstream allocation is deterministic.
func toSortedMembers(weights map[uint64]int64) []CohortMember {
	members := make([]CohortMember, 0, len(weights))
	for id, w := range weights {
		if w <= 0 {
			continue
		}
		members = append(members, CohortMember{ID: id, Weight: w})
	}
	sort.Slice(members, func(a, b int) bool { return members[a].ID < members[b].ID })
	return members
}
