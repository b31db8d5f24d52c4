// Package feedback содержит логику бизнес-уровня для отзывов о сервисе.
package feedback

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// Repository описывает контракт для работы с отзывами в базе данных.
type Repository interface {
	CreateFeedback(ctx context.Context, feedback models.Feedback) (string, error)
	HasSubmittedFeedback(ctx context.Context, userUID string) (bool, error)
}

// Service — бизнес-логика отзывов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Submit сохраняет отзыв пользователя.
func (s *Service) Submit(ctx context.Context, userUID string, req models.DummyFeedback) (string, error) {
	feedback := models.Feedback{
		ID:             uuid.New().String(),
		UserUID:        userUID,
		Text:           req.Text,
		AllowPublicUse: req.AllowPublicUse,
	}

	id, err := s.repo.CreateFeedback(ctx, feedback)
	if err != nil {
		return "", err
	}
	s.log.Info("feedback submitted", slog.String("id", id), slog.String("user_uid", userUID))
	return id, nil
}

// HasSubmitted сообщает, оставлял ли пользователь отзыв. Используется,
// чтобы не показывать форму повторно.
func (s *Service) HasSubmitted(ctx context.Context, userUID string) (bool, error) {
	return s.repo.HasSubmittedFeedback(ctx, userUID)
}
