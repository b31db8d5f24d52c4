// Package wedding содержит логику бизнес-уровня для работы со свадьбой —
// корневой записью всех данных пользователя.
package wedding

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// Repository описывает контракт для работы со свадьбами в базе данных.
type Repository interface {
	CreateWedding(ctx context.Context, wedding models.Wedding) (string, error)
	ReadWeddingByUserUID(ctx context.Context, userUID string) (*models.Wedding, error)
	UpdateWedding(ctx context.Context, wedding models.Wedding, id string) (int, error)
}

// Cache описывает контракт кеша.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service — бизнес-логика работы со свадьбой пользователя.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

func cacheKey(userUID string) string {
	return fmt.Sprintf("wedding:%s", userUID)
}

// Create создаёт свадьбу пользователя из данных запроса.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyWedding) (string, error) {
	weddingDate, err := time.Parse("2006-01-02", req.WeddingDate)
	if err != nil {
		return "", fmt.Errorf("invalid wedding date: %w", err)
	}

	wedding := models.Wedding{
		ID:           uuid.New().String(),
		UserUID:      userUID,
		Partner1Name: req.Partner1Name,
		Partner2Name: req.Partner2Name,
		WeddingDate:  weddingDate,
		GuestCount:   req.GuestCount,
		CeremonyType: req.CeremonyType,
		TotalBudget:  req.TotalBudget,
	}

	id, err := s.repo.CreateWedding(ctx, wedding)
	if err != nil {
		return "", err
	}
	s.log.Info("created wedding", slog.String("id", id), slog.String("user_uid", userUID))

	if err := s.cache.Invalidate(cacheKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate wedding cache", sl.Err(err))
	}
	return id, nil
}

// Read возвращает свадьбу пользователя, сначала пробуя кеш.
func (s *Service) Read(ctx context.Context, userUID string) (*models.Wedding, error) {
	var result *models.Wedding
	found, err := s.cache.Get(cacheKey(userUID), &result)
	if err != nil {
		s.log.Warn("failed to read wedding from cache", sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(userUID), result, time.Hour); err != nil {
		s.log.Warn("failed to cache wedding", sl.Err(err))
	}
	return result, nil
}

// Update обновляет свадьбу пользователя и возвращает количество изменённых строк.
func (s *Service) Update(ctx context.Context, userUID string, req models.DummyWedding) (int, error) {
	weddingDate, err := time.Parse("2006-01-02", req.WeddingDate)
	if err != nil {
		return 0, fmt.Errorf("invalid wedding date: %w", err)
	}

	current, err := s.repo.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return 0, err
	}

	wedding := models.Wedding{
		Partner1Name: req.Partner1Name,
		Partner2Name: req.Partner2Name,
		WeddingDate:  weddingDate,
		GuestCount:   req.GuestCount,
		CeremonyType: req.CeremonyType,
		TotalBudget:  req.TotalBudget,
	}
	count, err := s.repo.UpdateWedding(ctx, wedding, current.ID)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Invalidate(cacheKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate wedding cache", sl.Err(err))
	}
	return count, nil
}
