package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/notify"
	"github.com/rafaelbressan/marmitas.top/repository"
)

func newBroadcastService(db *gorm.DB, now time.Time) (*BroadcastService, *captureDispatcher) {
	dispatcher := &captureDispatcher{}
	svc := NewBroadcastService(db,
		repository.NewSellerRepository(db),
		repository.NewSellingLocationRepository(db),
		dispatcher, zap.NewNop(),
		12*time.Hour, 96*time.Hour)
	svc.Now = fixedClock(now)
	return svc, dispatcher
}

func TestArriveDefaultDuration(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, dispatcher := newBroadcastService(db, now)

	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	loc := seedLocation(t, db, seller, -27.59, -48.55)

	sp, err := svc.Arrive(seller.ID, loc.ID, nil)
	require.NoError(t, err)

	assert.True(t, sp.CurrentlyActive)
	require.NotNil(t, sp.CurrentLocationID)
	assert.Equal(t, loc.ID, *sp.CurrentLocationID)
	require.NotNil(t, sp.LeavingAt)
	assert.WithinDuration(t, now.Add(12*time.Hour), *sp.LeavingAt, time.Second)
	assert.Equal(t, []string{"seller_arrival"}, dispatcher.names())
}

func TestArriveRejectsBadLeavingTimes(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newBroadcastService(db, now)

	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	loc := seedLocation(t, db, seller, -27.59, -48.55)

	past := now.Add(-time.Minute)
	_, err := svc.Arrive(seller.ID, loc.ID, &past)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	tooFar := now.Add(96*time.Hour + time.Minute)
	_, err = svc.Arrive(seller.ID, loc.ID, &tooFar)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	edge := now.Add(96 * time.Hour)
	_, err = svc.Arrive(seller.ID, loc.ID, &edge)
	assert.NoError(t, err)
}

func TestArriveSomeoneElsesLocation(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newBroadcastService(db, time.Now())

	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	other := seedSeller(t, db, seedUser(t, db, "Bia"), true)
	otherLoc := seedLocation(t, db, other, -27.59, -48.55)

	_, err := svc.Arrive(seller.ID, otherLoc.ID, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArriveWhileBroadcastingElsewhere(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newBroadcastService(db, now)

	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	locA := seedLocation(t, db, seller, -27.59, -48.55)
	locB := seedLocation(t, db, seller, -27.60, -48.56)

	_, err := svc.Arrive(seller.ID, locA.ID, nil)
	require.NoError(t, err)

	_, err = svc.Arrive(seller.ID, locB.ID, nil)
	assert.ErrorIs(t, err, ErrAlreadyBroadcastingElsewhere)

	// re-arriving at the same location refreshes the window instead
	later := now.Add(20 * time.Hour)
	refreshed := later.Add(2 * time.Hour)
	svc.Now = fixedClock(later)
	sp, err := svc.Arrive(seller.ID, locA.ID, &refreshed)
	require.NoError(t, err)
	assert.WithinDuration(t, refreshed, *sp.LeavingAt, time.Second)
}

func TestArriveAfterExpiredBroadcast(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newBroadcastService(db, now)

	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	locA := seedLocation(t, db, seller, -27.59, -48.55)
	locB := seedLocation(t, db, seller, -27.60, -48.56)

	_, err := svc.Arrive(seller.ID, locA.ID, nil)
	require.NoError(t, err)

	// 13h later the 12h broadcast at A is stale; B must be claimable
	svc.Now = fixedClock(now.Add(13 * time.Hour))
	sp, err := svc.Arrive(seller.ID, locB.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, locB.ID, *sp.CurrentLocationID)
}

func TestLeaveClearsBroadcastState(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, dispatcher := newBroadcastService(db, now)

	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	loc := seedLocation(t, db, seller, -27.59, -48.55)

	_, err := svc.Arrive(seller.ID, loc.ID, nil)
	require.NoError(t, err)

	sp, err := svc.Leave(seller.ID, 0)
	require.NoError(t, err)

	assert.False(t, sp.CurrentlyActive)
	assert.Nil(t, sp.CurrentLocationID)
	assert.Nil(t, sp.ArrivedAt)
	assert.Nil(t, sp.LeavingAt)
	assert.Equal(t, []string{"seller_arrival", "seller_departure"}, dispatcher.names())
}

func TestLeaveWhenNotBroadcasting(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newBroadcastService(db, time.Now())

	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)

	_, err := svc.Leave(seller.ID, 0)
	assert.ErrorIs(t, err, ErrNotBroadcasting)
}

func TestLeaveWrongLocation(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newBroadcastService(db, time.Now())

	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	locA := seedLocation(t, db, seller, -27.59, -48.55)
	locB := seedLocation(t, db, seller, -27.60, -48.56)

	_, err := svc.Arrive(seller.ID, locA.ID, nil)
	require.NoError(t, err)

	_, err = svc.Leave(seller.ID, locB.ID)
	assert.ErrorIs(t, err, ErrWrongLocation)
}

func TestCheckExpiry(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newBroadcastService(db, now)

	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	loc := seedLocation(t, db, seller, -27.59, -48.55)

	_, err := svc.Arrive(seller.ID, loc.ID, nil)
	require.NoError(t, err)

	expired, err := svc.CheckExpiry(seller.ID)
	require.NoError(t, err)
	assert.False(t, expired)

	svc.Now = fixedClock(now.Add(12 * time.Hour))
	expired, err = svc.CheckExpiry(seller.ID)
	require.NoError(t, err)
	assert.True(t, expired)

	sp := reloadSeller(t, db, seller.ID)
	assert.False(t, sp.CurrentlyActive)
	assert.Nil(t, sp.LeavingAt)

	// second pass is a no-op
	expired, err = svc.CheckExpiry(seller.ID)
	require.NoError(t, err)
	assert.False(t, expired)
}

func TestStatusAppliesLazyExpiry(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newBroadcastService(db, now)

	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	loc := seedLocation(t, db, seller, -27.59, -48.55)

	_, err := svc.Arrive(seller.ID, loc.ID, nil)
	require.NoError(t, err)

	svc.Now = fixedClock(now.Add(24 * time.Hour))
	sp, err := svc.Status(seller.ID)
	require.NoError(t, err)
	assert.False(t, sp.CurrentlyActive)
}

func TestSweepExpired(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newBroadcastService(db, now)

	stale := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	fresh := seedSeller(t, db, seedUser(t, db, "Bia"), true)
	staleLoc := seedLocation(t, db, stale, -27.59, -48.55)
	freshLoc := seedLocation(t, db, fresh, -27.60, -48.56)

	_, err := svc.Arrive(stale.ID, staleLoc.ID, nil)
	require.NoError(t, err)

	svc.Now = fixedClock(now.Add(20 * time.Hour))
	_, err = svc.Arrive(fresh.ID, freshLoc.ID, nil)
	require.NoError(t, err)

	svc.SweepExpired()

	assert.False(t, reloadSeller(t, db, stale.ID).CurrentlyActive)
	assert.True(t, reloadSeller(t, db, fresh.ID).CurrentlyActive)
}

var _ notify.Dispatcher = (*captureDispatcher)(nil)
