package repositories

import (
	"gorm.io/gorm"

	"lumen-cms/models"
)

type TeamRepository interface {
	Create(member *models.TeamMember) error
	GetByID(id uint) (*models.TeamMember, error)
	GetAll() ([]models.TeamMember, error)
	Update(member *models.TeamMember) error
	Delete(id uint) error
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(member *models.TeamMember) error {
	return r.db.Create(member).Error
}

func (r *teamRepository) GetByID(id uint) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.db.First(&member, id).Error
	return &member, err
}

func (r *teamRepository) GetAll() ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := r.db.Order("sort_order asc, created_at asc").Find(&members).Error
	return members, err
}

func (r *teamRepository) Update(member *models.TeamMember) error {
	return r.db.Save(member).Error
}

func (r *teamRepository) Delete(id uint) error {
	return r.db.Delete(&models.TeamMember{}, id).Error
}
