package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"lumen-cms/content"
	"lumen-cms/media"
	"lumen-cms/models"
	"lumen-cms/repositories"
)

type ProjectService interface {
	CreateProject(req models.ProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, id uint, req models.ProjectRequest) (*models.Project, error)
	GetProject(id uint, isPublic bool) (*models.Project, error)
	GetProjects(params models.ListParams, isPublic bool) ([]models.Project, int64, error)
	DeleteProject(ctx context.Context, id uint) error
}

type projectService struct {
	projectRepo repositories.ProjectRepository
	media       *media.Adapter
	notifier    ChangeNotifier
}

func NewProjectService(projectRepo repositories.ProjectRepository, uploads *media.Adapter, notifier ChangeNotifier) ProjectService {
	return &projectService{projectRepo: projectRepo, media: uploads, notifier: notifier}
}

func (s *projectService) CreateProject(req models.ProjectRequest) (*models.Project, error) {
	project := &models.Project{
		Title:       req.Title,
		Client:      req.Client,
		Category:    req.Category,
		Summary:     req.Summary,
		Body:        sanitizeBody(req.Body),
		ImageURL:    req.ImageURL,
		ImageHandle: req.ImageHandle,
		VideoURL:    req.VideoURL,
		Year:        req.Year,
		Published:   req.Published,
	}
	if project.Year == 0 {
		project.Year = time.Now().Year()
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, err
	}
	s.changed()
	return project, nil
}

func (s *projectService) UpdateProject(ctx context.Context, id uint, req models.ProjectRequest) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	oldHandle := project.ImageHandle

	project.Title = req.Title
	project.Client = req.Client
	project.Category = req.Category
	project.Summary = req.Summary
	if !req.Body.IsZero() {
		project.Body = sanitizeBody(req.Body)
	}
	if req.ImageURL != "" {
		project.ImageURL = req.ImageURL
		project.ImageHandle = req.ImageHandle
	}
	project.VideoURL = req.VideoURL
	if req.Year != 0 {
		project.Year = req.Year
	}
	project.Published = req.Published

	if err := s.projectRepo.Update(project); err != nil {
		return nil, err
	}

	if oldHandle != "" && project.ImageHandle != oldHandle {
		s.media.Cleanup(ctx, oldHandle)
	}

	s.changed()
	return project, nil
}

func (s *projectService) GetProject(id uint, isPublic bool) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if isPublic && !project.Published {
		return nil, ErrNotFound
	}
	return project, nil
}

func (s *projectService) GetProjects(params models.ListParams, isPublic bool) ([]models.Project, int64, error) {
	return s.projectRepo.GetList(params, isPublic)
}

func (s *projectService) DeleteProject(ctx context.Context, id uint) error {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.projectRepo.Delete(id); err != nil {
		return err
	}

	s.media.Cleanup(ctx, project.ImageHandle)
	if project.Body.Shape == content.ShapeBlocks && project.Body.Doc != nil {
		for _, handle := range project.Body.Doc.MediaHandles() {
			s.media.Cleanup(ctx, handle)
		}
	}

	s.changed()
	return nil
}

func (s *projectService) changed() {
	if s.notifier != nil {
		s.notifier.Notify("projects")
	}
}
