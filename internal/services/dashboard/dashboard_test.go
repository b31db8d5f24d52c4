package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// MockWeddingReader реализует интерфейс WeddingReader
type MockWeddingReader struct {
	mock.Mock
}

func (m *MockWeddingReader) Read(ctx context.Context, userUID string) (*models.Wedding, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wedding), args.Error(1)
}

// MockGuestLister реализует интерфейс GuestLister
type MockGuestLister struct {
	mock.Mock
}

func (m *MockGuestLister) List(ctx context.Context, userUID string) ([]*models.Guest, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Guest), args.Error(1)
}

// MockTaskLister реализует интерфейс TaskLister
type MockTaskLister struct {
	mock.Mock
}

func (m *MockTaskLister) List(ctx context.Context, userUID string) ([]*models.Task, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

// MockBudgetLister реализует интерфейс BudgetLister
type MockBudgetLister struct {
	mock.Mock
}

func (m *MockBudgetLister) List(ctx context.Context, userUID string) ([]*models.BudgetItem, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BudgetItem), args.Error(1)
}

// MockVendorLister реализует интерфейс VendorLister
type MockVendorLister struct {
	mock.Mock
}

func (m *MockVendorLister) List(ctx context.Context, userUID string) ([]*models.Vendor, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vendor), args.Error(1)
}

// MockTimelineLister реализует интерфейс TimelineLister
type MockTimelineLister struct {
	mock.Mock
}

func (m *MockTimelineLister) List(ctx context.Context, userUID string) ([]*models.TimelineBlock, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TimelineBlock), args.Error(1)
}

func TestService_Load(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	wedding := &models.Wedding{ID: "w1", UserUID: "user123"}

	t.Run("успешная загрузка всех разделов", func(t *testing.T) {
		weddings := new(MockWeddingReader)
		guests := new(MockGuestLister)
		tasks := new(MockTaskLister)
		budget := new(MockBudgetLister)
		vendors := new(MockVendorLister)
		timeline := new(MockTimelineLister)

		weddings.On("Read", mock.Anything, "user123").Return(wedding, nil)
		guests.On("List", mock.Anything, "user123").
			Return([]*models.Guest{{ID: "g1", Name: "Анна"}}, nil)
		tasks.On("List", mock.Anything, "user123").
			Return([]*models.Task{{ID: "t1", Title: "Выбрать зал"}}, nil)
		budget.On("List", mock.Anything, "user123").
			Return([]*models.BudgetItem{{ID: "b1", ItemName: "Торт"}}, nil)
		vendors.On("List", mock.Anything, "user123").
			Return([]*models.Vendor{{ID: "v1", Name: "Фотограф"}}, nil)
		timeline.On("List", mock.Anything, "user123").
			Return([]*models.TimelineBlock{{ID: "tb1", Title: "Церемония"}}, nil)

		svc := New(weddings, guests, tasks, budget, vendors, timeline, logger)
		summary, err := svc.Load(context.Background(), "user123")

		require.NoError(t, err)
		assert.Equal(t, wedding, summary.Wedding)
		assert.Len(t, summary.Guests, 1)
		assert.Len(t, summary.Tasks, 1)
		assert.Len(t, summary.BudgetItems, 1)
		assert.Len(t, summary.Vendors, 1)
		assert.Len(t, summary.Timeline, 1)
	})

	t.Run("ошибка одного списка не валит остальные", func(t *testing.T) {
		weddings := new(MockWeddingReader)
		guests := new(MockGuestLister)
		tasks := new(MockTaskLister)
		budget := new(MockBudgetLister)
		vendors := new(MockVendorLister)
		timeline := new(MockTimelineLister)

		weddings.On("Read", mock.Anything, "user123").Return(wedding, nil)
		guests.On("List", mock.Anything, "user123").
			Return(nil, errors.New("db error"))
		tasks.On("List", mock.Anything, "user123").
			Return([]*models.Task{{ID: "t1"}}, nil)
		budget.On("List", mock.Anything, "user123").
			Return([]*models.BudgetItem{{ID: "b1"}}, nil)
		vendors.On("List", mock.Anything, "user123").
			Return([]*models.Vendor{{ID: "v1"}}, nil)
		timeline.On("List", mock.Anything, "user123").
			Return([]*models.TimelineBlock{{ID: "tb1"}}, nil)

		svc := New(weddings, guests, tasks, budget, vendors, timeline, logger)
		summary, err := svc.Load(context.Background(), "user123")

		require.NoError(t, err)
		assert.Empty(t, summary.Guests)
		assert.Len(t, summary.Tasks, 1)
		assert.Len(t, summary.BudgetItems, 1)
		assert.Len(t, summary.Vendors, 1)
		assert.Len(t, summary.Timeline, 1)
	})

	t.Run("ошибка чтения свадьбы не валит сводку", func(t *testing.T) {
		weddings := new(MockWeddingReader)
		guests := new(MockGuestLister)
		tasks := new(MockTaskLister)
		budget := new(MockBudgetLister)
		vendors := new(MockVendorLister)
		timeline := new(MockTimelineLister)

		weddings.On("Read", mock.Anything, "user123").
			Return(nil, errors.New("network error"))
		guests.On("List", mock.Anything, "user123").
			Return([]*models.Guest{{ID: "g1"}}, nil)
		tasks.On("List", mock.Anything, "user123").
			Return([]*models.Task{{ID: "t1"}}, nil)
		budget.On("List", mock.Anything, "user123").
			Return([]*models.BudgetItem{{ID: "b1"}}, nil)
		vendors.On("List", mock.Anything, "user123").
			Return([]*models.Vendor{{ID: "v1"}}, nil)
		timeline.On("List", mock.Anything, "user123").
			Return([]*models.TimelineBlock{{ID: "tb1"}}, nil)

		svc := New(weddings, guests, tasks, budget, vendors, timeline, logger)
		summary, err := svc.Load(context.Background(), "user123")

		require.NoError(t, err)
		assert.Nil(t, summary.Wedding)
		assert.Len(t, summary.Guests, 1)
		assert.Len(t, summary.Tasks, 1)
		assert.Len(t, summary.BudgetItems, 1)
		assert.Len(t, summary.Vendors, 1)
		assert.Len(t, summary.Timeline, 1)
	})
}
