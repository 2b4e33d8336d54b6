package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
	"github.com/rafaelbressan/marmitas.top/repository"
)

// seedBroadcasting creates a verified seller broadcasting at (lat, lng)
// until leavingAt.
func seedBroadcasting(t *testing.T, db *gorm.DB, name string, lat, lng float64, now, leavingAt time.Time, verified bool) *entity.SellerProfile {
	t.Helper()
	seller := seedSeller(t, db, seedUser(t, db, name), verified)
	loc := seedLocation(t, db, seller, lat, lng)
	require.NoError(t, db.Model(seller).Updates(map[string]any{
		"currently_active":    true,
		"current_location_id": loc.ID,
		"arrived_at":          now,
		"leaving_at":          leavingAt,
	}).Error)
	return seller
}

func TestFindActiveSellersNear(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := NewGeoService(repository.NewSellerRepository(db))
	svc.Now = fixedClock(now)

	later := now.Add(4 * time.Hour)
	// distances from the search point (-27.5935, -48.5585):
	near := seedBroadcasting(t, db, "Perto", -27.5935, -48.5585, now, later, true)
	mid := seedBroadcasting(t, db, "Media", -27.6025, -48.5585, now, later, true) // ~1km south
	seedBroadcasting(t, db, "Longe", -27.9535, -48.5585, now, later, true)        // ~40km south
	seedBroadcasting(t, db, "NaoVerificado", -27.5935, -48.5585, now, later, false)
	seedBroadcasting(t, db, "Expirado", -27.5935, -48.5585, now.Add(-8*time.Hour), now.Add(-time.Hour), true)
	seedSeller(t, db, seedUser(t, db, "Parado"), true)

	got, err := svc.FindActiveSellersNear(-27.5935, -48.5585, 5)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, near.ID, got[0].Seller.ID)
	assert.Equal(t, mid.ID, got[1].Seller.ID)
	assert.Less(t, got[0].DistanceKm, got[1].DistanceKm)
	assert.InDelta(t, 1.0, got[1].DistanceKm, 0.1)
}

func TestFindActiveSellersNearValidatesCoordinates(t *testing.T) {
	db := newTestDB(t)
	svc := NewGeoService(repository.NewSellerRepository(db))

	_, err := svc.FindActiveSellersNear(91, 0, 5)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)

	_, err = svc.FindActiveSellersNear(0, -181, 5)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestFindActiveSellersInBounds(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := NewGeoService(repository.NewSellerRepository(db))
	svc.Now = fixedClock(now)

	later := now.Add(4 * time.Hour)
	inside := seedBroadcasting(t, db, "Dentro", -27.60, -48.55, now, later, true)
	seedBroadcasting(t, db, "Fora", -27.80, -48.55, now, later, true)

	got, err := svc.FindActiveSellersInBounds(-27.55, -48.50, -27.65, -48.60, 0)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, inside.ID, got[0].ID)
	require.NotNil(t, got[0].CurrentLocation)
	assert.True(t, got[0].CurrentLocation.HasCoordinates())
}
