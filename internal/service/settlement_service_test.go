package service

import (
	"context"
	"testing"
	"time"

	"github.com/semearhq/semear-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettleScenario(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	start, end := closedWindow()

	// Fund of 100.00, two creators with content counts 3 and 1, one user
	// with released purchase weight 100.00 inside the window.
	creatorA := seedCreator(t, db, "alice")
	creatorB := seedCreator(t, db, "bruno")
	seedContent(t, db, creatorA.ID, 3, 10)
	seedContent(t, db, creatorB.ID, 1, 10)
	user := seedUser(t, db, "carla")
	seedReleasedPurchase(t, db, user.ID, 10000, start.Add(10*time.Minute))
	fund := seedFund(t, db, 10000, start, end)

	svc := NewSettlementService(db, 5000, NewFundLocks())
	result, err := svc.Settle(ctx, fund.ID)
	require.NoError(t, err)

	assert.True(t, result.Settled)
	assert.Equal(t, 2, result.CreatorDistributions)
	assert.Equal(t, 1, result.UserDistributions)
	assert.Equal(t, int64(10000), result.TotalDistributedCents)

	var a, b model.Creator
	require.NoError(t, db.First(&a, creatorA.ID).Error)
	require.NoError(t, db.First(&b, creatorB.ID).Error)
	assert.Equal(t, int64(3750), a.BalanceCents)
	assert.Equal(t, int64(1250), b.BalanceCents)

	var u model.User
	require.NoError(t, db.First(&u, user.ID).Error)
	assert.Equal(t, int64(5000), u.BalanceCents)

	var f model.Fund
	require.NoError(t, db.First(&f, fund.ID).Error)
	assert.True(t, f.Distributed)
}

func TestSettleIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	start, end := closedWindow()

	creator := seedCreator(t, db, "alice")
	seedContent(t, db, creator.ID, 2, 0)
	fund := seedFund(t, db, 5000, start, end)

	svc := NewSettlementService(db, 5000, NewFundLocks())
	first, err := svc.Settle(ctx, fund.ID)
	require.NoError(t, err)
	require.True(t, first.Settled)

	second, err := svc.Settle(ctx, fund.ID)
	require.NoError(t, err)
	assert.False(t, second.Settled)
	assert.True(t, second.AlreadySettled)

	var rows int64
	require.NoError(t, db.Model(&model.Distribution{}).Where("fund_id = ?", fund.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	var c model.Creator
	require.NoError(t, db.First(&c, creator.ID).Error)
	assert.Equal(t, int64(5000), c.BalanceCents, "second call must not credit again")
}

func TestSettleWindowStillOpen(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now()

	seedContent(t, db, seedCreator(t, db, "alice").ID, 1, 0)
	fund := seedFund(t, db, 5000, now.Add(-time.Hour), now.Add(time.Hour))

	svc := NewSettlementService(db, 5000, NewFundLocks())
	result, err := svc.Settle(ctx, fund.ID)
	require.NoError(t, err)
	assert.False(t, result.Settled)
	assert.Equal(t, "window_open", result.Reason)

	var f model.Fund
	require.NoError(t, db.First(&f, fund.ID).Error)
	assert.False(t, f.Distributed)
}

func TestSettleEmptyUserCohortGoesToCreators(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	start, end := closedWindow()

	creatorA := seedCreator(t, db, "alice")
	creatorB := seedCreator(t, db, "bruno")
	seedContent(t, db, creatorA.ID, 3, 0)
	seedContent(t, db, creatorB.ID, 1, 0)
	fund := seedFund(t, db, 10000, start, end)

	svc := NewSettlementService(db, 5000, NewFundLocks())
	result, err := svc.Settle(ctx, fund.ID)
	require.NoError(t, err)
	require.True(t, result.Settled)

	// The user half is not dropped: the whole fund goes to creators.
	assert.Equal(t, int64(10000), result.TotalDistributedCents)
	assert.Equal(t, 0, result.UserDistributions)

	var a, b model.Creator
	require.NoError(t, db.First(&a, creatorA.ID).Error)
	require.NoError(t, db.First(&b, creatorB.ID).Error)
	assert.Equal(t, int64(7500), a.BalanceCents)
	assert.Equal(t, int64(2500), b.BalanceCents)
}

func TestSettleEmptyCreatorCohortGoesToUsers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	start, end := closedWindow()

	user := seedUser(t, db, "carla")
	seedReleasedPurchase(t, db, user.ID, 2500, start.Add(5*time.Minute))
	fund := seedFund(t, db, 10000, start, end)

	svc := NewSettlementService(db, 5000, NewFundLocks())
	result, err := svc.Settle(ctx, fund.ID)
	require.NoError(t, err)
	require.True(t, result.Settled)
	assert.Equal(t, int64(10000), result.TotalDistributedCents)

	var u model.User
	require.NoError(t, db.First(&u, user.ID).Error)
	assert.Equal(t, int64(10000), u.BalanceCents)
}

func TestSettleBothCohortsEmptyRequeues(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	start, end := closedWindow()
	fund := seedFund(t, db, 10000, start, end)

	svc := NewSettlementService(db, 5000, NewFundLocks())
	result, err := svc.Settle(ctx, fund.ID)
	require.NoError(t, err)
	assert.False(t, result.Settled)
	assert.True(t, result.Requeued)

	// The rollback must leave the fund claimable and the ledger empty.
	var f model.Fund
	require.NoError(t, db.First(&f, fund.ID).Error)
	assert.False(t, f.Distributed)
	var rows int64
	require.NoError(t, db.Model(&model.Distribution{}).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestSettleConservesAwkwardTotals(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	start, end := closedWindow()

	for _, name := range []string{"a", "b", "c"} {
		seedContent(t, db, seedCreator(t, db, name).ID, 1, 0)
	}
	fund := seedFund(t, db, 101, start, end)

	svc := NewSettlementService(db, 5000, NewFundLocks())
	result, err := svc.Settle(ctx, fund.ID)
	require.NoError(t, err)
	require.True(t, result.Settled)
	assert.Equal(t, int64(101), result.TotalDistributedCents)

	var sum int64
	require.NoError(t, db.Model(&model.Distribution{}).
		Where("fund_id = ?", fund.ID).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&sum).Error)
	assert.Equal(t, int64(101), sum)
}

func TestSettlePerFundShareOverride(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	start, end := closedWindow()

	creator := seedCreator(t, db, "alice")
	seedContent(t, db, creator.ID, 1, 0)
	user := seedUser(t, db, "carla")
	seedReleasedPurchase(t, db, user.ID, 100, start.Add(time.Minute))

	override := 3000
	fund := seedFund(t, db, 10000, start, end)
	require.NoError(t, db.Model(&model.Fund{}).
		Where("id = ?", fund.ID).
		Update("creator_share_bps", override).Error)

	svc := NewSettlementService(db, 5000, NewFundLocks())
	result, err := svc.Settle(ctx, fund.ID)
	require.NoError(t, err)
	require.True(t, result.Settled)

	var c model.Creator
	require.NoError(t, db.First(&c, creator.ID).Error)
	assert.Equal(t, int64(3000), c.BalanceCents)
	var u model.User
	require.NoError(t, db.First(&u, user.ID).Error)
	assert.Equal(t, int64(7000), u.BalanceCents)
}

func TestSettleOldestDue(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now()

	seedContent(t, db, seedCreator(t, db, "alice").ID, 1, 0)
	older := seedFund(t, db, 100, now.Add(-4*time.Hour), now.Add(-3*time.Hour))
	seedFund(t, db, 200, now.Add(-2*time.Hour), now.Add(-1*time.Hour))

	svc := NewSettlementService(db, 5000, NewFundLocks())
	result, err := svc.SettleOldestDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, older.ID, result.FundID)
	assert.True(t, result.Settled)
}

func TestSettleOldestDueNoneLeft(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettlementService(db, 5000, NewFundLocks())
	_, err := svc.SettleOldestDue(context.Background())
	assert.ErrorIs(t, err, ErrNoPendingFund)
}

func TestPreviewDoesNotWrite(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	start, end := closedWindow()

	creator := seedCreator(t, db, "alice")
	seedContent(t, db, creator.ID, 2, 0)
	fund := seedFund(t, db, 10000, start, end)

	svc := NewSettlementService(db, 5000, NewFundLocks())
	preview, err := svc.Preview(ctx, fund.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), preview.TotalToDistribute)
	require.Len(t, preview.CreatorShares, 1)
	assert.Equal(t, int64(10000), preview.CreatorShares[0].AmountCents)

	var f model.Fund
	require.NoError(t, db.First(&f, fund.ID).Error)
	assert.False(t, f.Distributed)
	var rows int64
	require.NoError(t, db.Model(&model.Distribution{}).Count(&rows).Error)
	assert.Zero(t, rows)
	var c model.Creator
	require.NoError(t, db.First(&c, creator.ID).Error)
	assert.Zero(t, c.BalanceCents)
}

func TestSettleUnknownFund(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettlementService(db, 5000, NewFundLocks())
	_, err := svc.Settle(context.Background(), 404)
	assert.ErrorIs(t, err, ErrFundNotFound)
}
