// Package timeline содержит логику бизнес-уровня для тайм-плана дня свадьбы.
package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// Repository описывает контракт для работы с блоками тайм-плана в базе данных.
type Repository interface {
	CreateTimelineBlock(ctx context.Context, block models.TimelineBlock) (string, error)
	ListTimelineBlocks(ctx context.Context, weddingID string) ([]*models.TimelineBlock, error)
	UpdateTimelineBlock(ctx context.Context, block models.TimelineBlock, id string) (int, error)
	RemoveTimelineBlock(ctx context.Context, id string) (int, error)
	ReorderTimelineBlocks(ctx context.Context, weddingID string, blockIDs []string) error
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

// Service — бизнес-логика тайм-плана дня свадьбы.
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
	return fmt.Sprintf("timeline:%s", weddingID)
}

// Create добавляет блок в конец тайм-плана.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyTimelineBlock) (string, error) {
	wedding, err := s.weddings.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return "", err
	}

	block := models.TimelineBlock{
		ID:              uuid.New().String(),
		WeddingID:       wedding.ID,
		Time:            req.Time,
		Title:           req.Title,
		Description:     optional(req.Description),
		Location:        optional(req.Location),
		DurationMinutes: req.DurationMinutes,
	}

	id, err := s.repo.CreateTimelineBlock(ctx, block)
	if err != nil {
		return "", err
	}
	s.log.Info("created timeline block", slog.String("id", id), slog.String("wedding_id", wedding.ID))

	if err := s.cache.Invalidate(cacheKey(wedding.ID)); err != nil {
		s.log.Warn("failed to invalidate timeline cache", sl.Err(err))
	}
	return id, nil
}

// List возвращает блоки тайм-плана в порядке показа, сначала пробуя кеш.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.TimelineBlock, error) {
	wedding, err := s.weddings.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return nil, err
	}

	var result []*models.TimelineBlock
	found, err := s.cache.Get(cacheKey(wedding.ID), &result)
	if err != nil {
		s.log.Warn("failed to read timeline from cache", sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListTimelineBlocks(ctx, wedding.ID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(wedding.ID), result, time.Hour); err != nil {
		s.log.Warn("failed to cache timeline", sl.Err(err))
	}
	return result, nil
}

// Update обновляет блок тайм-плана и возвращает количество изменённых строк.
func (s *Service) Update(ctx context.Context, userUID, id string, req models.DummyTimelineBlock) (int, error) {
	wedding, err := s.weddings.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return 0, err
	}

	block := models.TimelineBlock{
		Time:            req.Time,
		Title:           req.Title,
		Description:     optional(req.Description),
		Location:        optional(req.Location),
		DurationMinutes: req.DurationMinutes,
	}
	count, err := s.repo.UpdateTimelineBlock(ctx, block, id)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Invalidate(cacheKey(wedding.ID)); err != nil {
		s.log.Warn("failed to invalidate timeline cache", sl.Err(err))
	}
	return count, nil
}

// Remove удаляет блок тайм-плана и возвращает количество удалённых строк.
func (s *Service) Remove(ctx context.Context, userUID, id string) (int, error) {
	wedding, err := s.weddings.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.RemoveTimelineBlock(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Invalidate(cacheKey(wedding.ID)); err != nil {
		s.log.Warn("failed to invalidate timeline cache", sl.Err(err))
	}
	return count, nil
}

// Reorder переустанавливает порядок блоков согласно списку идентификаторов.
func (s *Service) Reorder(ctx context.Context, userUID string, req models.DummyTimelineReorder) error {
	wedding, err := s.weddings.ReadWeddingByUserUID(ctx, userUID)
	if err != nil {
		return err
	}

	if err := s.repo.ReorderTimelineBlocks(ctx, wedding.ID, req.BlockIDs); err != nil {
		return err
	}
	s.log.Info("reordered timeline blocks",
		slog.String("wedding_id", wedding.ID), slog.Int("count", len(req.BlockIDs)))

	if err := s.cache.Invalidate(cacheKey(wedding.ID)); err != nil {
		s.log.Warn("failed to invalidate timeline cache", sl.Err(err))
	}
	return nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
