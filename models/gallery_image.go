package models

import (
	"time"

	"gorm.io/gorm"
)

type GalleryImage struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Title     string         `json:"title"`
	Category  string         `json:"category" gorm:"index"`
	URL       string         `json:"url" gorm:"not null"`
	Handle    string         `json:"-"`
	SortOrder int            `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
