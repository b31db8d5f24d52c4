// Package dashboard собирает сводку по свадьбе для главного экрана:
// свадьба и пять списков, загружаемых параллельно.
package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// Summary — сводка для главного экрана. Упавший раздел приходит пустым
// (свадьба — nil), остальные данные при этом показываются.
type Summary struct {
	Wedding     *models.Wedding         `json:"wedding"`
	Guests      []*models.Guest         `json:"guests"`
	Tasks       []*models.Task          `json:"tasks"`
	BudgetItems []*models.BudgetItem    `json:"budget_items"`
	Vendors     []*models.Vendor        `json:"vendors"`
	Timeline    []*models.TimelineBlock `json:"timeline"`
}

// WeddingReader возвращает свадьбу пользователя.
type WeddingReader interface {
	Read(ctx context.Context, userUID string) (*models.Wedding, error)
}

// GuestLister возвращает список гостей.
type GuestLister interface {
	List(ctx context.Context, userUID string) ([]*models.Guest, error)
}

// TaskLister возвращает список задач.
type TaskLister interface {
	List(ctx context.Context, userUID string) ([]*models.Task, error)
}

// BudgetLister возвращает статьи бюджета.
type BudgetLister interface {
	List(ctx context.Context, userUID string) ([]*models.BudgetItem, error)
}

// VendorLister возвращает список подрядчиков.
type VendorLister interface {
	List(ctx context.Context, userUID string) ([]*models.Vendor, error)
}

// TimelineLister возвращает блоки тайм-плана.
type TimelineLister interface {
	List(ctx context.Context, userUID string) ([]*models.TimelineBlock, error)
}

// Service загружает сводку для главного экрана.
type Service struct {
	weddings WeddingReader
	guests   GuestLister
	tasks    TaskLister
	budget   BudgetLister
	vendors  VendorLister
	timeline TimelineLister
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(weddings WeddingReader, guests GuestLister, tasks TaskLister,
	budget BudgetLister, vendors VendorLister, timeline TimelineLister,
	log *slog.Logger) *Service {
	return &Service{
		weddings: weddings,
		guests:   guests,
		tasks:    tasks,
		budget:   budget,
		vendors:  vendors,
		timeline: timeline,
		log:      log,
	}
}

// Load собирает сводку. Все разделы, включая свадьбу, загружаются
// параллельно; ошибка одного раздела логируется и не валит остальные.
func (s *Service) Load(ctx context.Context, userUID string) (*Summary, error) {
	summary := &Summary{
		Guests:      []*models.Guest{},
		Tasks:       []*models.Task{},
		BudgetItems: []*models.BudgetItem{},
		Vendors:     []*models.Vendor{},
		Timeline:    []*models.TimelineBlock{},
	}

	var wg sync.WaitGroup
	wg.Add(6)

	go func() {
		defer wg.Done()
		if wedding, err := s.weddings.Read(ctx, userUID); err != nil {
			s.log.Warn("dashboard: failed to load wedding", sl.Err(err))
		} else {
			summary.Wedding = wedding
		}
	}()
	go func() {
		defer wg.Done()
		if guests, err := s.guests.List(ctx, userUID); err != nil {
			s.log.Warn("dashboard: failed to load guests", sl.Err(err))
		} else if guests != nil {
			summary.Guests = guests
		}
	}()
	go func() {
		defer wg.Done()
		if tasks, err := s.tasks.List(ctx, userUID); err != nil {
			s.log.Warn("dashboard: failed to load tasks", sl.Err(err))
		} else if tasks != nil {
			summary.Tasks = tasks
		}
	}()
	go func() {
		defer wg.Done()
		if items, err := s.budget.List(ctx, userUID); err != nil {
			s.log.Warn("dashboard: failed to load budget", sl.Err(err))
		} else if items != nil {
			summary.BudgetItems = items
		}
	}()
	go func() {
		defer wg.Done()
		if vendors, err := s.vendors.List(ctx, userUID); err != nil {
			s.log.Warn("dashboard: failed to load vendors", sl.Err(err))
		} else if vendors != nil {
			summary.Vendors = vendors
		}
	}()
	go func() {
		defer wg.Done()
		if blocks, err := s.timeline.List(ctx, userUID); err != nil {
			s.log.Warn("dashboard: failed to load timeline", sl.Err(err))
		} else if blocks != nil {
			summary.Timeline = blocks
		}
	}()

	wg.Wait()
	return summary, nil
}
