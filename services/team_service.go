package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lumen-cms/media"
	"lumen-cms/models"
	"lumen-cms/repositories"
)

type TeamService interface {
	CreateMember(req models.TeamMemberRequest) (*models.TeamMember, error)
	UpdateMember(ctx context.Context, id uint, req models.TeamMemberRequest) (*models.TeamMember, error)
	GetMembers() ([]models.TeamMember, error)
	DeleteMember(ctx context.Context, id uint) error
}

type teamService struct {
	teamRepo repositories.TeamRepository
	media    *media.Adapter
	notifier ChangeNotifier
}

func NewTeamService(teamRepo repositories.TeamRepository, uploads *media.Adapter, notifier ChangeNotifier) TeamService {
	return &teamService{teamRepo: teamRepo, media: uploads, notifier: notifier}
}

func (s *teamService) CreateMember(req models.TeamMemberRequest) (*models.TeamMember, error) {
	member := &models.TeamMember{
		Name:        req.Name,
		Role:        req.Role,
		Bio:         req.Bio,
		PhotoURL:    req.PhotoURL,
		PhotoHandle: req.PhotoHandle,
		SortOrder:   req.SortOrder,
	}
	if err := s.teamRepo.Create(member); err != nil {
		return nil, err
	}
	s.changed()
	return member, nil
}

func (s *teamService) UpdateMember(ctx context.Context, id uint, req models.TeamMemberRequest) (*models.TeamMember, error) {
	member, err := s.teamRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	oldHandle := member.PhotoHandle

	member.Name = req.Name
	member.Role = req.Role
	member.Bio = req.Bio
	if req.PhotoURL != "" {
		member.PhotoURL = req.PhotoURL
		member.PhotoHandle = req.PhotoHandle
	}
	member.SortOrder = req.SortOrder

	if err := s.teamRepo.Update(member); err != nil {
		return nil, err
	}

	if oldHandle != "" && member.PhotoHandle != oldHandle {
		s.media.Cleanup(ctx, oldHandle)
	}

	s.changed()
	return member, nil
}

func (s *teamService) GetMembers() ([]models.TeamMember, error) {
	return s.teamRepo.GetAll()
}

func (s *teamService) DeleteMember(ctx context.Context, id uint) error {
	member, err := s.teamRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.teamRepo.Delete(id); err != nil {
		return err
	}

	s.media.Cleanup(ctx, member.PhotoHandle)
	s.changed()
	return nil
}

func (s *teamService) changed() {
	if s.notifier != nil {
		s.notifier.Notify("team")
	}
}
