package configs

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(cfg *Config) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBSource)
	default:
		dialector = sqlite.Open(cfg.DBSource)
	}

	// TranslateError gives us gorm.ErrDuplicatedKey on unique violations,
	// which the review uniqueness guard depends on.
	database, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		Log().Fatal("failed to connect database", zap.Error(err))
	}
	db = database
}

func SetupDatabase() {
	err := db.AutoMigrate(
		&entity.User{},
		&entity.SellerProfile{}, &entity.SellingLocation{},
		&entity.Dish{}, &entity.WeeklyMenu{}, &entity.WeeklyMenuDish{},
		&entity.Review{}, &entity.ReviewHelpful{},
		&entity.Favorite{}, &entity.DeviceToken{},
	)
	if err != nil {
		Log().Fatal("migration failed", zap.Error(err))
	}
}
