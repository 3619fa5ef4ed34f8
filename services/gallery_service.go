package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lumen-cms/media"
	"lumen-cms/models"
	"lumen-cms/repositories"
)

type GalleryService interface {
	CreateImage(req models.GalleryImageRequest) (*models.GalleryImage, error)
	UpdateImage(ctx context.Context, id uint, req models.GalleryImageRequest) (*models.GalleryImage, error)
	GetImages(params models.ListParams) ([]models.GalleryImage, int64, error)
	DeleteImage(ctx context.Context, id uint) error
}

type galleryService struct {
	galleryRepo repositories.GalleryRepository
	media       *media.Adapter
	notifier    ChangeNotifier
}

func NewGalleryService(galleryRepo repositories.GalleryRepository, uploads *media.Adapter, notifier ChangeNotifier) GalleryService {
	return &galleryService{galleryRepo: galleryRepo, media: uploads, notifier: notifier}
}

func (s *galleryService) CreateImage(req models.GalleryImageRequest) (*models.GalleryImage, error) {
	image := &models.GalleryImage{
		Title:     req.Title,
		Category:  req.Category,
		URL:       req.URL,
		Handle:    req.Handle,
		SortOrder: req.SortOrder,
	}
	if err := s.galleryRepo.Create(image); err != nil {
		return nil, err
	}
	s.changed()
	return image, nil
}

func (s *galleryService) UpdateImage(ctx context.Context, id uint, req models.GalleryImageRequest) (*models.GalleryImage, error) {
	image, err := s.galleryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	oldHandle := image.Handle

	image.Title = req.Title
	image.Category = req.Category
	if req.URL != "" {
		image.URL = req.URL
		image.Handle = req.Handle
	}
	image.SortOrder = req.SortOrder

	if err := s.galleryRepo.Update(image); err != nil {
		return nil, err
	}

	if oldHandle != "" && image.Handle != oldHandle {
		s.media.Cleanup(ctx, oldHandle)
	}

	s.changed()
	return image, nil
}

func (s *galleryService) GetImages(params models.ListParams) ([]models.GalleryImage, int64, error) {
	return s.galleryRepo.GetList(params)
}

func (s *galleryService) DeleteImage(ctx context.Context, id uint) error {
	image, err := s.galleryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.galleryRepo.Delete(id); err != nil {
		return err
	}

	s.media.Cleanup(ctx, image.Handle)
	s.changed()
	return nil
}

func (s *galleryService) changed() {
	if s.notifier != nil {
		s.notifier.Notify("gallery")
	}
}
