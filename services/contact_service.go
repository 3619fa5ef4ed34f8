package services

import (
	"errors"

	"gorm.io/gorm"

	"lumen-cms/models"
	"lumen-cms/repositories"
)

type ContactService interface {
	SubmitMessage(req models.ContactRequest) (*models.ContactMessage, error)
	GetMessages(params models.ListParams, unreadOnly bool) ([]models.ContactMessage, int64, error)
	MarkRead(id uint) (*models.ContactMessage, error)
	DeleteMessage(id uint) error
}

type contactService struct {
	contactRepo repositories.ContactRepository
}

func NewContactService(contactRepo repositories.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

func (s *contactService) SubmitMessage(req models.ContactRequest) (*models.ContactMessage, error) {
	message := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.contactRepo.Create(message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *contactService) GetMessages(params models.ListParams, unreadOnly bool) ([]models.ContactMessage, int64, error) {
	return s.contactRepo.GetList(params, unreadOnly)
}

func (s *contactService) MarkRead(id uint) (*models.ContactMessage, error) {
	message, err := s.contactRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	message.Read = true
	if err := s.contactRepo.Update(message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *contactService) DeleteMessage(id uint) error {
	if err := s.contactRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
