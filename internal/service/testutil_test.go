package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/semearhq/semear-backend/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see a different :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, model.Migrate(db))
	return db
}

func seedCreator(t *testing.T, db *gorm.DB, name string) *model.Creator {
	t.Helper()
	c := &model.Creator{
		DisplayName: name,
		Email:       name + "@example.com",
		Tier:        model.TierNovice,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	u := &model.User{
		DisplayName: name,
		Email:       name + "@example.com",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedContent(t *testing.T, db *gorm.DB, creatorID uint64, n int, viewsEach int64) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, db.Create(&model.Content{
			CreatorID: creatorID,
			Title:     "content",
			ViewCount: viewsEach,
		}).Error)
	}
}

func seedReleasedPurchase(t *testing.T, db *gorm.DB, userID uint64, cents int64, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&model.Purchase{
		UserID:      userID,
		PartnerID:   1,
		AmountCents: cents,
		Status:      model.PurchaseStatusCashbackReleased,
		CreatedAt:   at,
	}).Error)
}

func seedFund(t *testing.T, db *gorm.DB, totalCents int64, windowStart, windowEnd time.Time) *model.Fund {
	t.Helper()
	f := &model.Fund{
		CycleNumber: 1,
		TotalCents:  totalCents,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
	}
	require.NoError(t, db.Create(f).Error)
	return f
}

func closedWindow() (time.Time, time.Time) {
	now := time.Now()
	return now.Add(-2 * time.Hour), now.Add(-1 * time.Hour)
}
