package service

import (
	"context"
	"testing"
	"time"

	"github.com/semearhq/semear-backend/internal/model"
	"github.com/semearhq/semear-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForceCycleResetClearsCompetitiveState(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	creator := seedCreator(t, db, "alice")
	require.NoError(t, db.Model(&model.Creator{}).Where("id = ?", creator.ID).
		Updates(map[string]interface{}{
			"tier":           model.TierSupreme,
			"seeds_received": 500,
			"manual_points":  40,
			"balance_cents":  1234,
		}).Error)

	user := seedUser(t, db, "carla")
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{"score": 77, "seed_balance": 20, "balance_cents": 900}).Error)

	require.NoError(t, db.Create(&model.Donation{DonorID: user.ID, CreatorID: creator.ID, Seeds: 10}).Error)
	require.NoError(t, db.Create(&model.SeedEvent{RecipientType: "creator", RecipientID: creator.ID, Delta: 10, Reason: model.SeedEventDonationIn}).Error)
	seedContent(t, db, creator.ID, 2, 100)
	require.NoError(t, db.Create(&model.Poll{CreatorID: creator.ID, Question: "q"}).Error)
	require.NoError(t, db.Create(&model.PublicMessage{CreatorID: creator.ID, SenderID: user.ID, Body: "hi"}).Error)

	partner := &model.Partner{Name: "acme", SalesCount: 9, RemittedCents: 800, CashbackCodesIssued: 3}
	require.NoError(t, db.Create(partner).Error)
	require.NoError(t, db.Create(&model.CashbackCode{PartnerID: partner.ID, Code: "abc"}).Error)

	svc := NewCycleService(db, 30, 3)
	result, err := svc.ForceCycleReset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.CycleNumber)
	assert.Equal(t, 1, result.SeasonNumber)
	assert.False(t, result.SeasonReset)

	var c model.Creator
	require.NoError(t, db.First(&c, creator.ID).Error)
	assert.Equal(t, model.TierNovice, c.Tier)
	assert.Zero(t, c.SeedsReceived)
	assert.Zero(t, c.ManualPoints)
	// Non-competitive state survives the reset.
	assert.Equal(t, "alice", c.DisplayName)
	assert.Equal(t, "alice@example.com", c.Email)
	assert.Equal(t, int64(1234), c.BalanceCents)

	var u model.User
	require.NoError(t, db.First(&u, user.ID).Error)
	assert.Zero(t, u.Score)
	assert.Equal(t, "carla", u.DisplayName)
	assert.Equal(t, "carla@example.com", u.Email)
	assert.Equal(t, int64(900), u.BalanceCents)

	for _, m := range []interface{}{&model.Donation{}, &model.SeedEvent{}, &model.Content{}, &model.Poll{}, &model.PublicMessage{}, &model.CashbackCode{}} {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		assert.Zero(t, n, "%T rows should be gone", m)
	}

	var p model.Partner
	require.NoError(t, db.First(&p, partner.ID).Error)
	assert.Zero(t, p.SalesCount)
	assert.Zero(t, p.RemittedCents)
	assert.Zero(t, p.CashbackCodesIssued)
}

func TestForceSeasonResetAdvancesSeason(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	svc := NewCycleService(db, 30, 3)
	_, err := svc.ForceCycleReset(ctx)
	require.NoError(t, err)
	_, err = svc.ForceCycleReset(ctx)
	require.NoError(t, err)

	result, err := svc.ForceSeasonReset(ctx)
	require.NoError(t, err)
	assert.True(t, result.SeasonReset)
	assert.Equal(t, 2, result.SeasonNumber)
	assert.Equal(t, 1, result.CycleNumber)
}

func TestTickBeforeWindowElapsedDoesNothing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	svc := NewCycleService(db, 30, 3)
	tick, err := svc.Tick(ctx, time.Now())
	require.NoError(t, err)
	assert.False(t, tick.Transitioned)
	assert.False(t, tick.Paused)
}

func TestTickAfterWindowElapsedResets(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	repo := repository.NewCycleConfigRepository(db)
	cfg, err := repo.Get(ctx)
	require.NoError(t, err)
	cfg.CycleStartedAt = time.Now().Add(-31 * 24 * time.Hour)
	require.NoError(t, repo.Save(ctx, cfg))

	svc := NewCycleService(db, 30, 3)
	tick, err := svc.Tick(ctx, time.Now())
	require.NoError(t, err)
	require.True(t, tick.Transitioned)
	require.NotNil(t, tick.Reset)
	assert.Equal(t, 2, tick.Reset.CycleNumber)
	assert.False(t, tick.Reset.SeasonReset)
}

func TestTickRollsIntoSeasonResetOnLastCycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	repo := repository.NewCycleConfigRepository(db)
	cfg, err := repo.Get(ctx)
	require.NoError(t, err)
	cfg.CycleNumber = 3
	cfg.CycleStartedAt = time.Now().Add(-31 * 24 * time.Hour)
	require.NoError(t, repo.Save(ctx, cfg))

	svc := NewCycleService(db, 30, 3)
	tick, err := svc.Tick(ctx, time.Now())
	require.NoError(t, err)
	require.True(t, tick.Transitioned)
	assert.True(t, tick.Reset.SeasonReset)
	assert.Equal(t, 2, tick.Reset.SeasonNumber)
	assert.Equal(t, 1, tick.Reset.CycleNumber)
}

func TestTickPausedSuppressesTransitions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	repo := repository.NewCycleConfigRepository(db)
	cfg, err := repo.Get(ctx)
	require.NoError(t, err)
	cfg.CycleStartedAt = time.Now().Add(-365 * 24 * time.Hour)
	cfg.Paused = true
	require.NoError(t, repo.Save(ctx, cfg))

	svc := NewCycleService(db, 30, 3)
	tick, err := svc.Tick(ctx, time.Now())
	require.NoError(t, err)
	assert.True(t, tick.Paused)
	assert.False(t, tick.Transitioned)

	after, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, after.CycleNumber)
}
