package models

import "time"

// Preference is per-user UI preference state, one persisted key per
// user instead of the ad hoc per-page flags the admin pages used to
// keep.
type Preference struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Theme     string    `json:"theme" gorm:"default:'light'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
