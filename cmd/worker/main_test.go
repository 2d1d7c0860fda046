package main

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/semearhq/semear-backend/internal/model"
	"github.com/semearhq/semear-backend/internal/repository"
	"github.com/semearhq/semear-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newWorkerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, model.Migrate(db))
	return db
}

// A fund coming due on the same pass as a cycle boundary must be settled
// against the cohorts that earned it, not against the emptied tables left
// behind by the reset.
func TestRunOnceSettlesDueFundsBeforeCycleReset(t *testing.T) {
	db := newWorkerTestDB(t)
	ctx := context.Background()

	creator := &model.Creator{DisplayName: "ana", Email: "ana@example.com", Tier: model.TierNovice}
	require.NoError(t, db.Create(creator).Error)
	require.NoError(t, db.Create(&model.Content{CreatorID: creator.ID, Title: "post"}).Error)

	user := &model.User{DisplayName: "bob", Email: "bob@example.com"}
	require.NoError(t, db.Create(user).Error)

	now := time.Now()
	windowStart := now.Add(-48 * time.Hour)
	windowEnd := now.Add(-1 * time.Hour)
	require.NoError(t, db.Create(&model.Purchase{
		UserID:      user.ID,
		PartnerID:   1,
		AmountCents: 1000,
		Status:      model.PurchaseStatusCashbackReleased,
		CreatedAt:   now.Add(-24 * time.Hour),
	}).Error)

	fund := &model.Fund{CycleNumber: 1, TotalCents: 10000, WindowStart: windowStart, WindowEnd: windowEnd}
	require.NoError(t, db.Create(fund).Error)

	// The cycle window has long elapsed, so this pass also transitions.
	started := now.Add(-40 * 24 * time.Hour)
	require.NoError(t, db.Create(&model.CycleConfig{
		ID:              model.CycleConfigID,
		CycleNumber:     1,
		SeasonNumber:    1,
		CycleStartedAt:  started,
		SeasonStartedAt: started,
	}).Error)

	locks := service.NewFundLocks()
	runOnce(ctx,
		service.NewCycleService(db, 30, 3),
		service.NewSettlementService(db, 5000, locks),
		repository.NewFundRepository(db),
	)

	var gotCreator model.Creator
	require.NoError(t, db.First(&gotCreator, creator.ID).Error)
	assert.Equal(t, int64(5000), gotCreator.BalanceCents)

	var gotUser model.User
	require.NoError(t, db.First(&gotUser, user.ID).Error)
	assert.Equal(t, int64(5000), gotUser.BalanceCents)

	var gotFund model.Fund
	require.NoError(t, db.First(&gotFund, fund.ID).Error)
	assert.True(t, gotFund.Distributed)

	// The reset still ran on the same pass, after settlement.
	var contentCount int64
	require.NoError(t, db.Model(&model.Content{}).Count(&contentCount).Error)
	assert.Zero(t, contentCount)

	var cfg model.CycleConfig
	require.NoError(t, db.First(&cfg, model.CycleConfigID).Error)
	assert.Equal(t, 2, cfg.CycleNumber)
}
