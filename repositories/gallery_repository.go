package repositories

import (
	"gorm.io/gorm"

	"lumen-cms/models"
)

type GalleryRepository interface {
	Create(image *models.GalleryImage) error
	GetByID(id uint) (*models.GalleryImage, error)
	GetList(params models.ListParams) ([]models.GalleryImage, int64, error)
	Update(image *models.GalleryImage) error
	Delete(id uint) error
}

type galleryRepository struct {
	db *gorm.DB
}

func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) Create(image *models.GalleryImage) error {
	return r.db.Create(image).Error
}

func (r *galleryRepository) GetByID(id uint) (*models.GalleryImage, error) {
	var image models.GalleryImage
	err := r.db.First(&image, id).Error
	return &image, err
}

func (r *galleryRepository) GetList(params models.ListParams) ([]models.GalleryImage, int64, error) {
	var images []models.GalleryImage
	var total int64

	query := r.db.Model(&models.GalleryImage{})
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	query.Count(&total)

	offset := (params.Page - 1) * params.Limit
	err := query.Order("sort_order asc, created_at desc").
		Offset(offset).Limit(params.Limit).Find(&images).Error
	return images, total, err
}

func (r *galleryRepository) Update(image *models.GalleryImage) error {
	return r.db.Save(image).Error
}

func (r *galleryRepository) Delete(id uint) error {
	return r.db.Delete(&models.GalleryImage{}, id).Error
}
