package model

import (
	"time"
)

// ImageSource 图片来源，只有 POST 图片在解除挂载后会被清理
type ImageSource string

const (
	ImageSourcePost       ImageSource = "POST"
	ImageSourceProfile    ImageSource = "PROFILE"
	ImageSourceStandalone ImageSource = "STANDALONE"
)

type Image struct {
	ID        uint64      `gorm:"primaryKey" json:"id"`
	URL       string      `gorm:"type:varchar(512);not null" json:"url"`
	Source    ImageSource `gorm:"type:varchar(16);not null;default:'POST'" json:"source"`
	CreatedAt time.Time   `gorm:"index:idx_images_created_at" json:"created_at"`
}

func (Image) TableName() string {
	return "images"
}

type PostImage struct {
	ID      uint64 `gorm:"primaryKey" json:"id"`
	PostID  uint64 `gorm:"not null;index:idx_post_images_post_id" json:"post_id"`
	ImageID uint64 `gorm:"not null;index:idx_post_images_image_id" json:"image_id"`

	Image Image `gorm:"foreignKey:ImageID;references:ID"`
}

func (PostImage) TableName() string {
	return "post_images"
}
