package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/repository"
)

func newLocationService(db *gorm.DB) *SellingLocationService {
	return NewSellingLocationService(
		repository.NewSellingLocationRepository(db),
		repository.NewSellerRepository(db),
	)
}

func TestLocationCreateLimit(t *testing.T) {
	db := newTestDB(t)
	svc := newLocationService(db)
	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(seller.ID, LocationInput{Name: fmt.Sprintf("Ponto %d", i)})
		require.NoError(t, err)
	}

	_, err := svc.Create(seller.ID, LocationInput{Name: "Ponto 4"})
	assert.ErrorIs(t, err, ErrLocationLimit)

	// deleting one frees a slot
	locs, err := svc.List(seller.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(seller.ID, locs[0].ID))

	_, err = svc.Create(seller.ID, LocationInput{Name: "Ponto 4"})
	assert.NoError(t, err)
}

func TestLocationCreateValidatesCoordinates(t *testing.T) {
	db := newTestDB(t)
	svc := newLocationService(db)
	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)

	lat, lng := 95.0, -48.55
	_, err := svc.Create(seller.ID, LocationInput{Name: "Ponto", Latitude: &lat, Longitude: &lng})
	assert.ErrorIs(t, err, ErrInvalidCoordinates)

	// coordinates are optional for address-only points
	_, err = svc.Create(seller.ID, LocationInput{Name: "Ponto", Address: "Rua X, 1"})
	assert.NoError(t, err)
}

func TestLocationDeleteWhileBroadcasting(t *testing.T) {
	db := newTestDB(t)
	svc := newLocationService(db)
	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	loc := seedLocation(t, db, seller, -27.59, -48.55)

	require.NoError(t, db.Model(seller).Updates(map[string]any{
		"currently_active":    true,
		"current_location_id": loc.ID,
	}).Error)

	assert.ErrorIs(t, svc.Delete(seller.ID, loc.ID), ErrLocationInUse)

	require.NoError(t, db.Model(seller).Updates(map[string]any{
		"currently_active":    false,
		"current_location_id": nil,
	}).Error)
	assert.NoError(t, svc.Delete(seller.ID, loc.ID))
}

func TestLocationOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newLocationService(db)
	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	other := seedSeller(t, db, seedUser(t, db, "Bia"), true)
	loc := seedLocation(t, db, seller, -27.59, -48.55)

	_, err := svc.Get(other.ID, loc.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(other.ID, loc.ID, LocationInput{Name: "Roubo"})
	assert.ErrorIs(t, err, ErrNotFound)
}
