package types

import (
	"time"

	"github.com/inoxmetalart/backend/internal/jsoncol"
)

type GalleryItem struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Title         string      `gorm:"size:255;not null" json:"title"`
	Description   string      `gorm:"type:text" json:"description"`
	Category      string      `gorm:"size:100;not null;index" json:"category"`
	Color         string      `gorm:"size:100" json:"color"`
	Finish        string      `gorm:"size:100" json:"finish"`
	Features      jsoncol.List `gorm:"type:text" json:"features"`
	ImagePath     string      `gorm:"size:500" json:"image_path"`
	ThumbnailPath string      `gorm:"size:500" json:"thumbnail_path"`
	Status        string      `gorm:"size:20;default:'active';index" json:"status"`
	SortOrder     int         `gorm:"default:0" json:"sort_order"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}

func (GalleryItem) TableName() string { return "galleries" }
