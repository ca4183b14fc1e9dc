package types

import (
	"time"

	"github.com/inoxmetalart/backend/internal/jsoncol"
)

// Product is the superset catalog schema: the original revision plus the
// columns the products migration added (images, videos, specifications,
// detailed, price).
type Product struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	Name           string      `gorm:"size:255;not null;index" json:"name"`
	Category       string      `gorm:"size:100;not null;index" json:"category"`
	Description    string      `gorm:"type:text" json:"description"`
	Features       jsoncol.List `gorm:"type:text" json:"features"`
	ImagePath      string      `gorm:"size:500" json:"image_path"`
	Images         jsoncol.List `gorm:"type:text" json:"images"`
	Videos         jsoncol.List `gorm:"type:text" json:"videos"`
	Specifications jsoncol.Map  `gorm:"type:text" json:"specifications"`
	Detailed       jsoncol.Map  `gorm:"type:text" json:"detailed"`
	Price          *float64    `json:"price,omitempty"`
	Status         string      `gorm:"size:20;default:'active';index" json:"status"`
	CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
