// repository/user_repository.go
package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rafaelbressan/marmitas.top/entity"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *entity.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	err := r.DB.Preload("SellerProfile").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

func (r *UserRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).Updates(updates).Error
}

// ---- device tokens ----

func (r *UserRepository) UpsertDeviceToken(userID uint, token, platform string) error {
	var existing entity.DeviceToken
	err := r.DB.Where("token = ?", token).First(&existing).Error
	if err == nil {
		return r.DB.Model(&existing).Updates(map[string]any{
			"user_id":  userID,
			"platform": platform,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.DB.Create(&entity.DeviceToken{UserID: userID, Token: token, Platform: platform}).Error
}

func (r *UserRepository) DeleteDeviceToken(userID uint, token string) error {
	return r.DB.Unscoped().
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&entity.DeviceToken{}).Error
}
