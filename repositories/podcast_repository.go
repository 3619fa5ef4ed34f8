package repositories

import (
	"gorm.io/gorm"

	"lumen-cms/models"
)

type PodcastRepository interface {
	Create(episode *models.PodcastEpisode) error
	GetByID(id uint) (*models.PodcastEpisode, error)
	GetList(params models.ListParams, publicOnly bool) ([]models.PodcastEpisode, int64, error)
	Update(episode *models.PodcastEpisode) error
	Delete(id uint) error
}

type podcastRepository struct {
	db *gorm.DB
}

func NewPodcastRepository(db *gorm.DB) PodcastRepository {
	return &podcastRepository{db: db}
}

func (r *podcastRepository) Create(episode *models.PodcastEpisode) error {
	return r.db.Create(episode).Error
}

func (r *podcastRepository) GetByID(id uint) (*models.PodcastEpisode, error) {
	var episode models.PodcastEpisode
	err := r.db.First(&episode, id).Error
	return &episode, err
}

func (r *podcastRepository) GetList(params models.ListParams, publicOnly bool) ([]models.PodcastEpisode, int64, error) {
	var episodes []models.PodcastEpisode
	var total int64

	query := r.db.Model(&models.PodcastEpisode{})
	if publicOnly {
		query = query.Where("published = ?", true)
	}

	query.Count(&total)

	offset := (params.Page - 1) * params.Limit
	err := query.Order("episode desc").
		Offset(offset).Limit(params.Limit).Find(&episodes).Error
	return episodes, total, err
}

func (r *podcastRepository) Update(episode *models.PodcastEpisode) error {
	return r.db.Save(episode).Error
}

func (r *podcastRepository) Delete(id uint) error {
	return r.db.Delete(&models.PodcastEpisode{}, id).Error
}
