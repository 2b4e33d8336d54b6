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

func newMenuService(db *gorm.DB, now time.Time) *MenuService {
	svc := NewMenuService(repository.NewMenuRepository(db), repository.NewDishRepository(db))
	svc.Now = fixedClock(now)
	return svc
}

func seedDish(t *testing.T, db *gorm.DB, seller *entity.SellerProfile, name string) *entity.Dish {
	t.Helper()
	dish := &entity.Dish{SellerProfileID: seller.ID, Name: name, BasePrice: 20, Active: true}
	require.NoError(t, db.Create(dish).Error)
	return dish
}

func TestMenuCreateValidatesWindow(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	svc := newMenuService(db, now)
	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)

	_, err := svc.Create(seller.ID, MenuInput{
		Title:          "Semana invertida",
		AvailableFrom:  now.AddDate(0, 0, 7),
		AvailableUntil: now,
	})
	assert.ErrorIs(t, err, ErrInvalidMenuWindow)

	menu, err := svc.Create(seller.ID, MenuInput{
		Title:          "Semana 11",
		AvailableFrom:  now,
		AvailableUntil: now.AddDate(0, 0, 7),
	})
	require.NoError(t, err)
	assert.True(t, menu.Active)

	// an explicit false must survive the column's true default
	draft := false
	unpublished, err := svc.Create(seller.ID, MenuInput{
		Title:          "Rascunho",
		AvailableFrom:  now.AddDate(0, 0, 7),
		AvailableUntil: now.AddDate(0, 0, 14),
		Active:         &draft,
	})
	require.NoError(t, err)
	assert.False(t, unpublished.Active)

	reloaded, err := svc.Menus.FindByID(unpublished.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Active)
}

func TestMenuSoftDeleteAndRestore(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	svc := newMenuService(db, now)
	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)

	menu, err := svc.Create(seller.ID, MenuInput{
		Title: "Semana 11", AvailableFrom: now, AvailableUntil: now.AddDate(0, 0, 7),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(seller.ID, menu.ID))

	// tombstoned: regular lookups miss it, the any-state lookup still hits
	_, err = svc.Update(seller.ID, menu.ID, MenuInput{
		Title: "x", AvailableFrom: now, AvailableUntil: now.AddDate(0, 0, 7),
	})
	assert.ErrorIs(t, err, ErrNotFound)

	restored, err := svc.Restore(seller.ID, menu.ID)
	require.NoError(t, err)
	assert.Equal(t, "Semana 11", restored.Title)
	assert.False(t, restored.DeletedAt.Valid)
}

func TestMenuOwnershipGuard(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	svc := newMenuService(db, now)
	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	other := seedSeller(t, db, seedUser(t, db, "Bia"), true)

	menu, err := svc.Create(seller.ID, MenuInput{
		Title: "Semana 11", AvailableFrom: now, AvailableUntil: now.AddDate(0, 0, 7),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(other.ID, menu.ID), ErrNotFound)
}

func TestMenuAddDish(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	svc := newMenuService(db, now)
	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	other := seedSeller(t, db, seedUser(t, db, "Bia"), true)
	dish := seedDish(t, db, seller, "Feijoada")
	foreignDish := seedDish(t, db, other, "Moqueca")

	menu, err := svc.Create(seller.ID, MenuInput{
		Title: "Semana 11", AvailableFrom: now, AvailableUntil: now.AddDate(0, 0, 7),
	})
	require.NoError(t, err)

	_, err = svc.AddDish(seller.ID, menu.ID, MenuDishInput{DishID: dish.ID, AvailableQuantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddDish(seller.ID, menu.ID, MenuDishInput{DishID: foreignDish.ID, AvailableQuantity: 5})
	assert.ErrorIs(t, err, ErrNotFound)

	md, err := svc.AddDish(seller.ID, menu.ID, MenuDishInput{DishID: dish.ID, AvailableQuantity: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, md.RemainingQuantity)

	_, err = svc.AddDish(seller.ID, menu.ID, MenuDishInput{DishID: dish.ID, AvailableQuantity: 3})
	assert.ErrorIs(t, err, ErrDishAlreadyOnMenu)
}

func TestMenuConsumeAndRestock(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	svc := newMenuService(db, now)
	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	dish := seedDish(t, db, seller, "Feijoada")

	menu, err := svc.Create(seller.ID, MenuInput{
		Title: "Semana 11", AvailableFrom: now, AvailableUntil: now.AddDate(0, 0, 7),
	})
	require.NoError(t, err)
	md, err := svc.AddDish(seller.ID, menu.ID, MenuDishInput{DishID: dish.ID, AvailableQuantity: 3})
	require.NoError(t, err)

	md, err = svc.Consume(seller.ID, md.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, md.RemainingQuantity)

	_, err = svc.Consume(seller.ID, md.ID, 2)
	assert.ErrorIs(t, err, ErrQuantityExhausted)

	md, err = svc.Consume(seller.ID, md.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, md.RemainingQuantity)
	assert.False(t, md.Available())

	// restock never exceeds the original quantity
	_, err = svc.Restock(seller.ID, md.ID, 4)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	md, err = svc.Restock(seller.ID, md.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, md.RemainingQuantity)
}

func TestMenuCurrent(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	svc := newMenuService(db, now)
	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)

	_, err := svc.Create(seller.ID, MenuInput{
		Title: "Passada", AvailableFrom: now.AddDate(0, 0, -14), AvailableUntil: now.AddDate(0, 0, -7),
	})
	require.NoError(t, err)
	current, err := svc.Create(seller.ID, MenuInput{
		Title: "Atual", AvailableFrom: now.AddDate(0, 0, -1), AvailableUntil: now.AddDate(0, 0, 6),
	})
	require.NoError(t, err)

	got, err := svc.Current(seller.ID)
	require.NoError(t, err)
	assert.Equal(t, current.ID, got.ID)

	inactive := false
	_, err = svc.Update(seller.ID, current.ID, MenuInput{
		Title: "Atual", AvailableFrom: current.AvailableFrom, AvailableUntil: current.AvailableUntil,
		Active: &inactive,
	})
	require.NoError(t, err)

	_, err = svc.Current(seller.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMenuDuplicate(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	svc := newMenuService(db, now)
	seller := seedSeller(t, db, seedUser(t, db, "Ana"), true)
	dish := seedDish(t, db, seller, "Feijoada")

	menu, err := svc.Create(seller.ID, MenuInput{
		Title: "Semana 11", AvailableFrom: now, AvailableUntil: now.AddDate(0, 0, 7),
	})
	require.NoError(t, err)
	md, err := svc.AddDish(seller.ID, menu.ID, MenuDishInput{DishID: dish.ID, AvailableQuantity: 10})
	require.NoError(t, err)
	_, err = svc.Consume(seller.ID, md.ID, 7)
	require.NoError(t, err)

	dup, err := svc.Duplicate(seller.ID, menu.ID)
	require.NoError(t, err)

	assert.False(t, dup.Active)
	assert.True(t, dup.AvailableFrom.Equal(menu.AvailableFrom.AddDate(0, 0, 7)))
	require.Len(t, dup.WeeklyMenuDishes, 1)
	// quantities reset on the copy
	assert.Equal(t, 10, dup.WeeklyMenuDishes[0].RemainingQuantity)
}
