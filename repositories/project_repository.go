package repositories

import (
	"gorm.io/gorm"

	"lumen-cms/models"
)

type ProjectRepository interface {
	Create(project *models.Project) error
	GetByID(id uint) (*models.Project, error)
	GetList(params models.ListParams, publicOnly bool) ([]models.Project, int64, error)
	Update(project *models.Project) error
	Delete(id uint) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *projectRepository) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, id).Error
	return &project, err
}

func (r *projectRepository) GetList(params models.ListParams, publicOnly bool) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	query := r.db.Model(&models.Project{})
	if publicOnly {
		query = query.Where("published = ?", true)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	query.Count(&total)

	offset := (params.Page - 1) * params.Limit
	err := query.Order("year desc, created_at desc").
		Offset(offset).Limit(params.Limit).Find(&projects).Error
	return projects, total, err
}

func (r *projectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

func (r *projectRepository) Delete(id uint) error {
	return r.db.Delete(&models.Project{}, id).Error
}
