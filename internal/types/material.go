package types

import (
	"time"

	"github.com/inoxmetalart/backend/internal/jsoncol"
)

// Material is a downloadable technical document: catalog, certificate,
// specification sheet.
type Material struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"size:255;not null;index" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Category    string      `gorm:"size:100;not null;index" json:"category"`
	FileType    string      `gorm:"size:50;not null" json:"file_type"`
	FileSize    string      `gorm:"size:50;not null" json:"file_size"`
	FilePath    string      `gorm:"size:500;not null" json:"file_path"`
	DownloadURL string      `gorm:"size:500" json:"download_url"`
	Tags        jsoncol.List `gorm:"type:text" json:"tags"`
	UploadDate  time.Time   `gorm:"not null;autoCreateTime" json:"upload_date"`
	Downloads   int         `gorm:"default:0" json:"downloads"`
	IsActive    bool        `gorm:"default:true;index" json:"is_active"`
	SortOrder   int         `gorm:"default:0" json:"sort_order"`
	IsFeatured  bool        `gorm:"default:false" json:"is_featured"`
}

func (Material) TableName() string { return "materials" }
