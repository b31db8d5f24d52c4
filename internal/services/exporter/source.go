package exporter

import (
	"context"

	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// Source адаптирует сервисы разделов к контракту DataSource.
type Source struct {
	Weddings interface {
		Read(ctx context.Context, userUID string) (*models.Wedding, error)
	}
	Guests interface {
		List(ctx context.Context, userUID string) ([]*models.Guest, error)
	}
	Tasks interface {
		List(ctx context.Context, userUID string) ([]*models.Task, error)
	}
	Budget interface {
		List(ctx context.Context, userUID string) ([]*models.BudgetItem, error)
	}
	Vendors interface {
		List(ctx context.Context, userUID string) ([]*models.Vendor, error)
	}
	Timeline interface {
		List(ctx context.Context, userUID string) ([]*models.TimelineBlock, error)
	}
}

// ReadWedding возвращает свадьбу пользователя.
func (s Source) ReadWedding(ctx context.Context, userUID string) (*models.Wedding, error) {
	return s.Weddings.Read(ctx, userUID)
}

// ListGuests возвращает гостей.
func (s Source) ListGuests(ctx context.Context, userUID string) ([]*models.Guest, error) {
	return s.Guests.List(ctx, userUID)
}

// ListTasks возвращает задачи.
func (s Source) ListTasks(ctx context.Context, userUID string) ([]*models.Task, error) {
	return s.Tasks.List(ctx, userUID)
}

// ListBudgetItems возвращает статьи бюджета.
func (s Source) ListBudgetItems(ctx context.Context, userUID string) ([]*models.BudgetItem, error) {
	return s.Budget.List(ctx, userUID)
}

// ListVendors возвращает подрядчиков.
func (s Source) ListVendors(ctx context.Context, userUID string) ([]*models.Vendor, error) {
	return s.Vendors.List(ctx, userUID)
}

// ListTimeline возвращает блоки тайм-плана.
func (s Source) ListTimeline(ctx context.Context, userUID string) ([]*models.TimelineBlock, error) {
	return s.Timeline.List(ctx, userUID)
}
