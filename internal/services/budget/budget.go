// Package budget содержит логику бизнес-уровня для бюджета свадьбы.
package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// Repository описывает контракт для работы со статьями бюджета в базе данных.
type Repository interface {
	CreateBudgetItem(ctx context.Context, item models.BudgetItem) (string, error)
	ListBudgetItems(ctx context.Context, weddingID string) ([]*models.BudgetItem, error)
	UpdateBudgetItem(ctx context.Context, item models.BudgetItem, id string) (int, error)
	RemoveBudgetItem(ctx context.Context, id string) (int, error)
	SumBudget(ctx context.Context, weddingID string) (*models.BudgetSummary, error)
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

// Service — бизнес-логика бюджета свадьбы.
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
	return fmt.Sprintf("budget:%s", weddingID)
}

// Create добавляет статью бюджета.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyBudgetItem) (string, error) {
	wedding, err := s.weddings.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return "", err
	}

	item := models.BudgetItem{
		ID:            uuid.New().String(),
		WeddingID:     wedding.ID,
		Category:      req.Category,
		ItemName:      req.ItemName,
		ActualCost:    req.ActualCost,
		Paid:          req.Paid,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}

	id, err := s.repo.CreateBudgetItem(ctx, item)
	if err != nil {
		return "", err
	}
	s.log.Info("created budget item", slog.String("id", id), slog.String("wedding_id", wedding.ID))

	if err := s.cache.Invalidate(cacheKey(wedding.ID)); err != nil {
		s.log.Warn("failed to invalidate budget cache", sl.Err(err))
	}
	return id, nil
}

// List возвращает статьи бюджета свадьбы пользователя, сначала пробуя кеш.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.BudgetItem, error) {
	wedding, err := s.weddings.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return nil, err
	}

	var result []*models.BudgetItem
	found, err := s.cache.Get(cacheKey(wedding.ID), &result)
	if err != nil {
		s.log.Warn("failed to read budget from cache", sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListBudgetItems(ctx, wedding.ID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(wedding.ID), result, time.Hour); err != nil {
		s.log.Warn("failed to cache budget", sl.Err(err))
	}
	return result, nil
}

// Update обновляет статью бюджета и возвращает количество изменённых строк.
func (s *Service) Update(ctx context.Context, userUID, id string, req models.DummyBudgetItem) (int, error) {
	wedding, err := s.weddings.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return 0, err
	}

	item := models.BudgetItem{
		Category:      req.Category,
		ItemName:      req.ItemName,
		ActualCost:    req.ActualCost,
		Paid:          req.Paid,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	count, err := s.repo.UpdateBudgetItem(ctx, item, id)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Invalidate(cacheKey(wedding.ID)); err != nil {
		s.log.Warn("failed to invalidate budget cache", sl.Err(err))
	}
	return count, nil
}

// Remove удаляет статью бюджета и возвращает количество удалённых строк.
func (s *Service) Remove(ctx context.Context, userUID, id string) (int, error) {
	wedding, err := s.weddings.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.RemoveBudgetItem(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Invalidate(cacheKey(wedding.ID)); err != nil {
		s.log.Warn("failed to invalidate budget cache", sl.Err(err))
	}
	return count, nil
}

// Summary считает итоги бюджета: общая и оплаченная суммы и разбивка
// по категориям.
func (s *Service) Summary(ctx context.Context, userUID string) (*models.BudgetSummary, error) {
	wedding, err := s.weddings.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return nil, err
	}
	return s.repo.SumBudget(ctx, wedding.ID)
}
