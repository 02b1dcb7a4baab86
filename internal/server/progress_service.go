package server

import (
	"context"
	"time"

	"github.com/parsa-mehek/LinkingLink-client/internal/models"
	"github.com/parsa-mehek/LinkingLink-client/pkg/logger"
)

//go:generate mockgen -source=progress_service.go -destination=mock_progress_repository.go -package=server

type ProgressRepository interface {
	CreateEntry(ctx context.Context, userID int64, req models.ProgressRequest, createdAt time.Time) (models.ProgressEntry, error)
	ListEntries(ctx context.Context, userID int64) ([]models.ProgressEntry, error)
}

type ProgressService struct {
	repo   ProgressRepository
	logger logger.Logger
	now    func() time.Time
}

func NewProgressService(repo ProgressRepository, logger logger.Logger) *ProgressService {
	return &ProgressService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// List возвращает записи пользователя, пустой список вместо nil
func (s *ProgressService) List(ctx context.Context, userID int64) ([]models.ProgressEntry, error) {
	entries, err := s.repo.ListEntries(ctx, userID)
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []models.ProgressEntry{}
	}

	return entries, nil
}

// Add проверяет запрос и сохраняет запись. Дату и id назначает сервер.
func (s *ProgressService) Add(ctx context.Context, userID int64, req models.ProgressRequest) (models.ProgressEntry, error) {
	if err := req.Validate(); err != nil {
		return models.ProgressEntry{}, err
	}

	entry, err := s.repo.CreateEntry(ctx, userID, req, s.now().UTC())
	if err != nil {
		return models.ProgressEntry{}, err
	}

	s.logger.Debugf("Добавлена запись %s пользователя %d", entry.ID, userID)

	return entry, nil
}
