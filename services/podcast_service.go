package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"lumen-cms/media"
	"lumen-cms/models"
	"lumen-cms/repositories"
)

type PodcastService interface {
	CreateEpisode(req models.PodcastEpisodeRequest) (*models.PodcastEpisode, error)
	UpdateEpisode(ctx context.Context, id uint, req models.PodcastEpisodeRequest) (*models.PodcastEpisode, error)
	GetEpisode(id uint, isPublic bool) (*models.PodcastEpisode, error)
	GetEpisodes(params models.ListParams, isPublic bool) ([]models.PodcastEpisode, int64, error)
	DeleteEpisode(ctx context.Context, id uint) error
}

type podcastService struct {
	podcastRepo repositories.PodcastRepository
	media       *media.Adapter
	notifier    ChangeNotifier
}

func NewPodcastService(podcastRepo repositories.PodcastRepository, uploads *media.Adapter, notifier ChangeNotifier) PodcastService {
	return &podcastService{podcastRepo: podcastRepo, media: uploads, notifier: notifier}
}

func (s *podcastService) CreateEpisode(req models.PodcastEpisodeRequest) (*models.PodcastEpisode, error) {
	episode := &models.PodcastEpisode{
		Title:       req.Title,
		Description: req.Description,
		Episode:     req.Episode,
		AudioURL:    req.AudioURL,
		VideoURL:    req.VideoURL,
		CoverURL:    req.CoverURL,
		CoverHandle: req.CoverHandle,
		Published:   req.Published,
	}
	if episode.Published {
		now := time.Now()
		episode.PublishedAt = &now
	}

	if err := s.podcastRepo.Create(episode); err != nil {
		return nil, err
	}
	s.changed()
	return episode, nil
}

func (s *podcastService) UpdateEpisode(ctx context.Context, id uint, req models.PodcastEpisodeRequest) (*models.PodcastEpisode, error) {
	episode, err := s.podcastRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	oldHandle := episode.CoverHandle

	episode.Title = req.Title
	episode.Description = req.Description
	if req.Episode != 0 {
		episode.Episode = req.Episode
	}
	episode.AudioURL = req.AudioURL
	episode.VideoURL = req.VideoURL
	if req.CoverURL != "" {
		episode.CoverURL = req.CoverURL
		episode.CoverHandle = req.CoverHandle
	}
	if req.Published && !episode.Published {
		now := time.Now()
		episode.PublishedAt = &now
	}
	episode.Published = req.Published

	if err := s.podcastRepo.Update(episode); err != nil {
		return nil, err
	}

	if oldHandle != "" && episode.CoverHandle != oldHandle {
		s.media.Cleanup(ctx, oldHandle)
	}

	s.changed()
	return episode, nil
}

func (s *podcastService) GetEpisode(id uint, isPublic bool) (*models.PodcastEpisode, error) {
	episode, err := s.podcastRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if isPublic && !episode.Published {
		return nil, ErrNotFound
	}
	return episode, nil
}

func (s *podcastService) GetEpisodes(params models.ListParams, isPublic bool) ([]models.PodcastEpisode, int64, error) {
	return s.podcastRepo.GetList(params, isPublic)
}

func (s *podcastService) DeleteEpisode(ctx context.Context, id uint) error {
	episode, err := s.podcastRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.podcastRepo.Delete(id); err != nil {
		return err
	}

	s.media.Cleanup(ctx, episode.CoverHandle)
	s.changed()
	return nil
}

func (s *podcastService) changed() {
	if s.notifier != nil {
		s.notifier.Notify("podcast")
	}
}
