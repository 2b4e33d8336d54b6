package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
	"github.com/rafaelbressan/marmitas.top/repository"
)

func newFavoriteService(db *gorm.DB) *FavoriteService {
	return NewFavoriteService(db,
		repository.NewFavoriteRepository(db),
		repository.NewDishRepository(db),
		repository.NewSellerRepository(db),
	)
}

func TestFavoriteToggleSeller(t *testing.T) {
	db := newTestDB(t)
	svc := newFavoriteService(db)
	user := seedUser(t, db, "Carla")
	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)

	favorited, err := svc.Toggle(user.ID, entity.FavoritableSeller, seller.ID)
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.Equal(t, 1, reloadSeller(t, db, seller.ID).FollowersCount)

	favorited, err = svc.Toggle(user.ID, entity.FavoritableSeller, seller.ID)
	require.NoError(t, err)
	assert.False(t, favorited)
	assert.Equal(t, 0, reloadSeller(t, db, seller.ID).FollowersCount)
}

func TestFavoriteToggleDish(t *testing.T) {
	db := newTestDB(t)
	svc := newFavoriteService(db)
	user := seedUser(t, db, "Carla")
	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	dish := seedDish(t, db, seller, "Feijoada")

	favorited, err := svc.Toggle(user.ID, entity.FavoritableDish, dish.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	var got entity.Dish
	require.NoError(t, db.First(&got, dish.ID).Error)
	assert.Equal(t, 1, got.FavoritesCount)

	ok, err := svc.IsFavorited(user.ID, entity.FavoritableDish, dish.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFavoriteToggleGuards(t *testing.T) {
	db := newTestDB(t)
	svc := newFavoriteService(db)
	user := seedUser(t, db, "Carla")

	_, err := svc.Toggle(user.ID, "restaurant", 1)
	assert.ErrorIs(t, err, ErrInvalidFavoritable)

	_, err = svc.Toggle(user.ID, entity.FavoritableSeller, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavoriteListByType(t *testing.T) {
	db := newTestDB(t)
	svc := newFavoriteService(db)
	user := seedUser(t, db, "Carla")
	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	dish := seedDish(t, db, seller, "Feijoada")

	_, err := svc.Toggle(user.ID, entity.FavoritableSeller, seller.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(user.ID, entity.FavoritableDish, dish.ID)
	require.NoError(t, err)

	all, err := svc.List(user.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	dishes, err := svc.List(user.ID, entity.FavoritableDish)
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.Equal(t, dish.ID, dishes[0].FavoritableID)
}
