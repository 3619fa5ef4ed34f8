package models

import (
	"time"

	"gorm.io/gorm"
)

type TeamMember struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Name        string         `json:"name" gorm:"not null"`
	Role        string         `json:"role"`
	Bio         string         `json:"bio"`
	PhotoURL    string         `json:"photo_url"`
	PhotoHandle string         `json:"-"`
	SortOrder   int            `json:"sort_order" gorm:"default:0"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
