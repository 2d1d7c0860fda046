package service

import (
	"context"
	"log"
	"sort"

	"github.com/semearhq/semear-backend/internal/model"
	"github.com/semearhq/semear-backend/internal/ranking"
	"github.com/semearhq/semear-backend/internal/repository"
	"gorm.io/gorm"
)

// RankEntry is one row of the public ranking.
type RankEntry struct {
	CreatorID    uint64     `json:"creatorId"`
	DisplayName  string     `json:"displayName"`
	Score        int64      `json:"score"`
	Tier         model.Tier `json:"tier"`
	RankPosition int        `json:"rankPosition"`
}

// RankingService runs the full ranking pass: gather score inputs per
// creator, order them, derive tiers from rank position and persist the tier
// back on the creator row.
type RankingService interface {
	Ranking(ctx context.Context) ([]RankEntry, error)
}

type rankingService struct {
	db *gorm.DB
}

func NewRankingService(db *gorm.DB) RankingService {
	return &rankingService{db: db}
}

func (s *rankingService) Ranking(ctx context.Context) ([]RankEntry, error) {
	creatorRepo := repository.NewCreatorRepository(s.db)
	creators, err := creatorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(creators) == 0 {
		return []RankEntry{}, nil
	}

	entries := make([]RankEntry, 0, len(creators))
	for _, c := range creators {
		entries = append(entries, RankEntry{
			CreatorID:   c.ID,
			DisplayName: c.DisplayName,
			Score:       ranking.Score(s.inputsFor(ctx, c)),
		})
	}

	// Score descending, creator id as the stable secondary key.
	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].Score != entries[b].Score {
			return entries[a].Score > entries[b].Score
		}
		return entries[a].CreatorID < entries[b].CreatorID
	})

	total := len(entries)
	for i := range entries {
		entries[i].RankPosition = i + 1
		entries[i].Tier = ranking.TierFor(i+1, total)
	}

	// Persist tiers that changed; the ranking itself is served from memory.
	current := make(map[uint64]model.Tier, len(creators))
	for _, c := range creators {
		current[c.ID] = c.Tier
	}
	for _, e := range entries {
		if current[e.CreatorID] != e.Tier {
			if err := creatorRepo.UpdateTier(ctx, e.CreatorID, e.Tier); err != nil {
				log.Printf("ranking: persisting tier for creator %d: %v", e.CreatorID, err)
			}
		}
	}
	return entries, nil
}

// inputsFor gathers the score sub-terms. Each term is sourced independently;
// a failed fetch defaults that term to zero and is logged so one missing
// signal cannot block the whole ranking pass.
func (s *rankingService) inputsFor(ctx context.Context, c model.Creator) ranking.Inputs {
	in := ranking.Inputs{
		SeedsReceived: c.SeedsReceived,
		ManualPoints:  c.ManualPoints,
	}

	contentRepo := repository.NewContentRepository(s.db)
	if views, err := contentRepo.SumViewsByCreator(ctx, c.ID); err != nil {
		log.Printf("ranking: content views for creator %d unavailable, defaulting to 0: %v", c.ID, err)
	} else {
		in.ContentViews = views
	}

	engRepo := repository.NewEngagementRepository(s.db)
	if polls, err := engRepo.CountPollsByCreator(ctx, c.ID); err != nil {
		log.Printf("ranking: poll count for creator %d unavailable, defaulting to 0: %v", c.ID, err)
	} else {
		in.Polls = polls
	}
	if msgs, err := engRepo.CountMessagesByCreator(ctx, c.ID); err != nil {
		log.Printf("ranking: message count for creator %d unavailable, defaulting to 0: %v", c.ID, err)
	} else {
		in.PublicMessages = msgs
	}
	return in
}
