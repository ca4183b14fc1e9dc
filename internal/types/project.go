package types

import (
	"time"

	"github.com/inoxmetalart/backend/internal/jsoncol"
)

type Project struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	Title            string      `gorm:"size:255;not null" json:"title"`
	Description      string      `gorm:"type:text" json:"description"`
	ShortDescription string      `gorm:"size:500" json:"short_description"`
	Category         string      `gorm:"size:100;not null;index" json:"category"`
	Client           string      `gorm:"size:255" json:"client"`
	Location         string      `gorm:"size:255" json:"location"`
	Area             string      `gorm:"size:100" json:"area"`
	CompletionDate   string      `gorm:"size:100" json:"completion_date"`
	Features         jsoncol.List `gorm:"type:text" json:"features"`
	Technologies     jsoncol.List `gorm:"type:text" json:"technologies"`
	MainImagePath    string      `gorm:"size:500" json:"main_image_path"`
	GalleryImages    jsoncol.List `gorm:"type:text" json:"gallery_images"`
	Status           string      `gorm:"size:20;default:'active';index" json:"status"`
	SortOrder        int         `gorm:"default:0" json:"sort_order"`
	IsFeatured       bool        `gorm:"default:false;index" json:"is_featured"`
	CreatedAt        time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"not null" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }
