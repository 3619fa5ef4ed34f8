package models

import (
	"time"

	"gorm.io/gorm"

	"lumen-cms/content"
)

// Project is a portfolio entry shown on the projects page.
type Project struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	Title       string          `json:"title" gorm:"not null"`
	Client      string          `json:"client"`
	Category    string          `json:"category" gorm:"index"`
	Summary     string          `json:"summary"`
	Body        content.Content `json:"body" gorm:"type:text"`
	ImageURL    string          `json:"image_url"`
	ImageHandle string          `json:"-"`
	VideoURL    string          `json:"video_url"`
	Year        int             `json:"year"`
	Published   bool            `json:"published" gorm:"default:false;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}
