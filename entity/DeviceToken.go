package entity

import (
	"gorm.io/gorm"
)

// DeviceToken is a push registration. Delivery itself happens outside this
// backend; we only store the handles the dispatcher would fan out to.
type DeviceToken struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null" json:"userId"`
	User     User   `json:"-"`
	Token    string `gorm:"uniqueIndex;not null" json:"token"`
	Platform string `json:"platform"` // ios | android | web
}
