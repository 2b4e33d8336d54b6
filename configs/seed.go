package configs

import (
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rafaelbressan/marmitas.top/entity"
)

// SeedAdmin creates the first admin account from environment, once.
func SeedAdmin() error {
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		Log().Warn("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		Log().Info("admin already exists", zap.String("email", email))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Name:     "Admin",
		Email:    email,
		Password: string(hash),
		IsAdmin:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	Log().Info("seeded admin", zap.String("email", email))
	return nil
}
