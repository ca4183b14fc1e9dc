package types

import (
	"time"

	"github.com/inoxmetalart/backend/internal/jsoncol"
)

// Application is an inbound lead submitted through the public contact form.
// This is the superset of the two schema revisions found upstream; the
// older description-only shape folds into AdditionalInfo.
type Application struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	CompanyName    string      `gorm:"size:255;not null" json:"company_name"`
	ContactPerson  string      `gorm:"size:255;not null" json:"contact_person"`
	Email          string      `gorm:"size:255;not null" json:"email"`
	Phone          string      `gorm:"size:100;not null" json:"phone"`
	Country        string      `gorm:"size:100;not null" json:"country"`
	City           string      `gorm:"size:100;not null" json:"city"`
	ProductType    string      `gorm:"size:255;not null" json:"product_type"`
	Quantity       string      `gorm:"size:100;not null" json:"quantity"`
	Application    string      `gorm:"size:255;not null" json:"application"`
	Deadline       string      `gorm:"size:100" json:"deadline"`
	AdditionalInfo string      `gorm:"type:text" json:"additional_info"`
	FilePaths      jsoncol.List `gorm:"type:text" json:"file_paths"`
	IsProcessed    bool        `gorm:"default:false" json:"is_processed"`
	CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"not null" json:"updated_at"`
}

func (Application) TableName() string { return "applications" }
