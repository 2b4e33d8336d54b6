package services

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafaelbressan/marmitas.top/entity"
	"github.com/rafaelbressan/marmitas.top/notify"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory database per test. TranslateError must
// stay on: the duplicate-review guard keys off gorm.ErrDuplicatedKey.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, testDBSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.SellerProfile{}, &entity.SellingLocation{},
		&entity.Dish{}, &entity.WeeklyMenu{}, &entity.WeeklyMenuDish{},
		&entity.Review{}, &entity.ReviewHelpful{},
		&entity.Favorite{}, &entity.DeviceToken{},
	))
	return db
}

// captureDispatcher records enqueued events synchronously.
type captureDispatcher struct {
	mu     sync.Mutex
	events []notify.Event
}

func (d *captureDispatcher) Enqueue(e notify.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
}

func (d *captureDispatcher) names() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Name())
	}
	return out
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func seedUser(t *testing.T, db *gorm.DB, name string) *entity.User {
	t.Helper()
	u := &entity.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", strings.ToLower(name)),
		Password: "irrelevant",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedSeller(t *testing.T, db *gorm.DB, user *entity.User, verified bool) *entity.SellerProfile {
	t.Helper()
	sp := &entity.SellerProfile{
		UserID:       user.ID,
		BusinessName: "Marmitas da " + user.Name,
		City:         "Florianópolis",
		State:        "SC",
		Verified:     verified,
	}
	require.NoError(t, db.Create(sp).Error)
	return sp
}

func seedLocation(t *testing.T, db *gorm.DB, seller *entity.SellerProfile, lat, lng float64) *entity.SellingLocation {
	t.Helper()
	loc := &entity.SellingLocation{
		SellerProfileID: seller.ID,
		Name:            "Ponto",
		Address:         "Rua das Marmitas, 1",
		Latitude:        &lat,
		Longitude:       &lng,
	}
	require.NoError(t, db.Create(loc).Error)
	return loc
}

func reloadSeller(t *testing.T, db *gorm.DB, id uint) *entity.SellerProfile {
	t.Helper()
	var sp entity.SellerProfile
	require.NoError(t, db.First(&sp, id).Error)
	return &sp
}
