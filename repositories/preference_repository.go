package repositories

import (
	"errors"

	"gorm.io/gorm"

	"lumen-cms/models"
)

type PreferenceRepository interface {
	GetByUserID(userID uint) (*models.Preference, error)
	Upsert(pref *models.Preference) error
}

type preferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) GetByUserID(userID uint) (*models.Preference, error) {
	var pref models.Preference
	err := r.db.Where("user_id = ?", userID).First(&pref).Error
	return &pref, err
}

func (r *preferenceRepository) Upsert(pref *models.Preference) error {
	var existing models.Preference
	err := r.db.Where("user_id = ?", pref.UserID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(pref).Error
	}
	if err != nil {
		return err
	}
	existing.Theme = pref.Theme
	return r.db.Save(&existing).Error
}
