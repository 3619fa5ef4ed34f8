package models

import (
	"time"

	"gorm.io/gorm"
)

type PodcastEpisode struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	Episode     int            `json:"episode" gorm:"uniqueIndex"`
	AudioURL    string         `json:"audio_url"`
	VideoURL    string         `json:"video_url"`
	CoverURL    string         `json:"cover_url"`
	CoverHandle string         `json:"-"`
	Published   bool           `json:"published" gorm:"default:false;index"`
	PublishedAt *time.Time     `json:"published_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
