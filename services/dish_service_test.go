package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelbressan/marmitas.top/repository"
)

func TestDishCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewDishService(repository.NewDishRepository(db))
	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)

	dish, err := svc.Create(seller.ID, DishInput{
		Name:      "Feijoada",
		BasePrice: 25,
		Tags:      []string{"gluten_free", "picante", "vegan"},
	})
	require.NoError(t, err)
	assert.True(t, dish.Active)
	// unrecognized tags are dropped
	assert.Equal(t, []string{"gluten_free", "vegan"}, dish.Tags)

	// an explicit false must survive the column's true default
	hidden := false
	draft, err := svc.Create(seller.ID, DishInput{
		Name: "Moqueca", BasePrice: 30, Active: &hidden,
	})
	require.NoError(t, err)
	assert.False(t, draft.Active)

	reloaded, err := svc.Dishes.FindByID(draft.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Active)

	visible, err := svc.List(seller.ID, true)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Feijoada", visible[0].Name)
}

func TestDishOwnershipGuard(t *testing.T) {
	db := newTestDB(t)
	svc := NewDishService(repository.NewDishRepository(db))
	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	other := seedSeller(t, db, seedUser(t, db, "Beto"), true)

	dish, err := svc.Create(seller.ID, DishInput{Name: "Feijoada", BasePrice: 25})
	require.NoError(t, err)

	_, err = svc.Update(other.ID, dish.ID, DishInput{Name: "Roubada", BasePrice: 1})
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(other.ID, dish.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
