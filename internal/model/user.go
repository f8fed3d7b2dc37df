package model

import (
	"time"
)

type User struct {
	ID        uint64  `gorm:"primaryKey"`
	Email     string  `gorm:"type:varchar(255);uniqueIndex:idx_users_email;not null"`
	Password  string  `gorm:"type:varchar(255);not null"`
	Nickname  string  `gorm:"type:varchar(12);uniqueIndex:idx_users_nickname;not null"`
	Role      string  `gorm:"type:varchar(16);not null;default:'USER'"`
	ImageID   *uint64 `gorm:"index:idx_users_image_id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Image *Image `gorm:"foreignKey:ImageID;references:ID"`
}

func (User) TableName() string {
	return "users"
}

// ProfileImageURL 未设置头像时返回 fallback
func (u *User) ProfileImageURL(fallback string) string {
	if u.Image != nil && u.Image.URL != "" {
		return u.Image.URL
	}
	return fallback
}
