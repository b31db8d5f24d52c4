// Package task содержит логику бизнес-уровня для задач подготовки к свадьбе.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// Repository описывает контракт для работы с задачами в базе данных.
type Repository interface {
	CreateTask(ctx context.Context, task models.Task) (string, error)
	ListTasks(ctx context.Context, weddingID string) ([]*models.Task, error)
	UpdateTask(ctx context.Context, task models.Task, id string) (int, error)
	RemoveTask(ctx context.Context, id string) (int, error)
}

// WeddingResolver находит свадьбу пользователя.
type WeddingResolver interface {
	ReadWeddingByUserUID(ctx context.Context, userUID string) (*models.Wedding, error)
}

// Cache описывает контракт кеша.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service — бизнес-логика задач подготовки.
type Service struct {
	repo     Repository
	weddings WeddingResolver
	cache    Cache
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, weddings WeddingResolver, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, weddings: weddings, cache: cache, log: log}
}

func cacheKey(weddingID string) string {
	return fmt.Sprintf("tasks:%s", weddingID)
}

func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	due, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid due date: %w", err)
	}
	return &due, nil
}

// Create добавляет задачу в план свадьбы пользователя.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyTask) (string, error) {
	wedding, err := s.weddings.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return "", err
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return "", err
	}

	task := models.Task{
		ID:         uuid.New().String(),
		WeddingID:  wedding.ID,
		Title:      req.Title,
		Category:   req.Category,
		AssignedTo: req.AssignedTo,
		DueDate:    dueDate,
		Status:     req.Status,
		Priority:   req.Priority,
		Notes:      req.Notes,
	}

	id, err := s.repo.CreateTask(ctx, task)
	if err != nil {
		return "", err
	}
	s.log.Info("created task", slog.String("id", id), slog.String("wedding_id", wedding.ID))

	if err := s.cache.Invalidate(cacheKey(wedding.ID)); err != nil {
		s.log.Warn("failed to invalidate tasks cache", sl.Err(err))
	}
	return id, nil
}

// List возвращает задачи свадьбы пользователя, сначала пробуя кеш.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.Task, error) {
	wedding, err := s.weddings.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return nil, err
	}

	var result []*models.Task
	found, err := s.cache.Get(cacheKey(wedding.ID), &result)
	if err != nil {
		s.log.Warn("failed to read tasks from cache", sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListTasks(ctx, wedding.ID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(wedding.ID), result, time.Hour); err != nil {
		s.log.Warn("failed to cache tasks", sl.Err(err))
	}
	return result, nil
}

// Update обновляет задачу и возвращает количество изменённых строк.
func (s *Service) Update(ctx context.Context, userUID, id string, req models.DummyTask) (int, error) {
	wedding, err := s.weddings.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return 0, err
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return 0, err
	}

	task := models.Task{
		Title:      req.Title,
		Category:   req.Category,
		AssignedTo: req.AssignedTo,
		DueDate:    dueDate,
		Status:     req.Status,
		Priority:   req.Priority,
		Notes:      req.Notes,
	}
	count, err := s.repo.UpdateTask(ctx, task, id)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Invalidate(cacheKey(wedding.ID)); err != nil {
		s.log.Warn("failed to invalidate tasks cache", sl.Err(err))
	}
	return count, nil
}

// Remove удаляет задачу и возвращает количество удалённых строк.
func (s *Service) Remove(ctx context.Context, userUID, id string) (int, error) {
	wedding, err := s.weddings.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.RemoveTask(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Invalidate(cacheKey(wedding.ID)); err != nil {
		s.log.Warn("failed to invalidate tasks cache", sl.Err(err))
	}
	return count, nil
}
