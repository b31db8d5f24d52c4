// Package guest содержит логику бизнес-уровня для списка гостей свадьбы.
package guest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// Repository описывает контракт для работы с гостями в базе данных.
type Repository interface {
	CreateGuest(ctx context.Context, guest models.Guest) (string, error)
	ListGuests(ctx context.Context, weddingID string) ([]*models.Guest, error)
	UpdateGuest(ctx context.Context, guest models.Guest, id string) (int, error)
	RemoveGuest(ctx context.Context, id string) (int, error)
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

// Service — бизнес-логика списка гостей.
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
	return fmt.Sprintf("guests:%s", weddingID)
}

// Create добавляет гостя в список свадьбы пользователя.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyGuest) (string, error) {
	wedding, err := s.weddings.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return "", err
	}

	guest := models.Guest{
		ID:                  uuid.New().String(),
		WeddingID:           wedding.ID,
		Name:                req.Name,
		Email:               optional(req.Email),
		Phone:               optional(req.Phone),
		RSVPStatus:          req.RSVPStatus,
		PlusOne:             req.PlusOne,
		DietaryRestrictions: optional(req.DietaryRestrictions),
		TableNumber:         req.TableNumber,
		Address:             optional(req.Address),
		Notes:               optional(req.Notes),
	}

	id, err := s.repo.CreateGuest(ctx, guest)
	if err != nil {
		return "", err
	}
	s.log.Info("created guest", slog.String("id", id), slog.String("wedding_id", wedding.ID))

	if err := s.cache.Invalidate(cacheKey(wedding.ID)); err != nil {
		s.log.Warn("failed to invalidate guests cache", sl.Err(err))
	}
	return id, nil
}

// List возвращает гостей свадьбы пользователя, сначала пробуя кеш.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.Guest, error) {
	wedding, err := s.weddings.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return nil, err
	}

	var result []*models.Guest
	found, err := s.cache.Get(cacheKey(wedding.ID), &result)
	if err != nil {
		s.log.Warn("failed to read guests from cache", sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListGuests(ctx, wedding.ID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(wedding.ID), result, time.Hour); err != nil {
		s.log.Warn("failed to cache guests", sl.Err(err))
	}
	return result, nil
}

// Update обновляет гостя и возвращает количество изменённых строк.
func (s *Service) Update(ctx context.Context, userUID, id string, req models.DummyGuest) (int, error) {
	wedding, err := s.weddings.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return 0, err
	}

	guest := models.Guest{
		Name:                req.Name,
		Email:               optional(req.Email),
		Phone:               optional(req.Phone),
		RSVPStatus:          req.RSVPStatus,
		PlusOne:             req.PlusOne,
		DietaryRestrictions: optional(req.DietaryRestrictions),
		TableNumber:         req.TableNumber,
		Address:             optional(req.Address),
		Notes:               optional(req.Notes),
	}
	count, err := s.repo.UpdateGuest(ctx, guest, id)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Invalidate(cacheKey(wedding.ID)); err != nil {
		s.log.Warn("failed to invalidate guests cache", sl.Err(err))
	}
	return count, nil
}

// Remove удаляет гостя и возвращает количество удалённых строк.
func (s *Service) Remove(ctx context.Context, userUID, id string) (int, error) {
	wedding, err := s.weddings.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.RemoveGuest(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Invalidate(cacheKey(wedding.ID)); err != nil {
		s.log.Warn("failed to invalidate guests cache", sl.Err(err))
	}
	return count, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
