package exporter

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// MockDataSource реализует интерфейс DataSource
type MockDataSource struct {
	mock.Mock
}

func (m *MockDataSource) ReadWedding(ctx context.Context, userUID string) (*models.Wedding, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wedding), args.Error(1)
}

func (m *MockDataSource) ListGuests(ctx context.Context, userUID string) ([]*models.Guest, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Guest), args.Error(1)
}

func (m *MockDataSource) ListTasks(ctx context.Context, userUID string) ([]*models.Task, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *MockDataSource) ListBudgetItems(ctx context.Context, userUID string) ([]*models.BudgetItem, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BudgetItem), args.Error(1)
}

func (m *MockDataSource) ListVendors(ctx context.Context, userUID string) ([]*models.Vendor, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vendor), args.Error(1)
}

func (m *MockDataSource) ListTimeline(ctx context.Context, userUID string) ([]*models.TimelineBlock, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TimelineBlock), args.Error(1)
}

func TestBudgetDocument(t *testing.T) {
	wedding := &models.Wedding{Partner1Name: "Анна", Partner2Name: "Борис"}
	generatedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("статьи группируются по категориям с итогами", func(t *testing.T) {
		items := []*models.BudgetItem{
			{Category: "Catering", ItemName: "Dinner", ActualCost: 3000, Paid: true, PaymentMethod: "card"},
			{Category: "Venue", ItemName: "Hall rental", ActualCost: 5000, Paid: true, PaymentMethod: "card"},
			{Category: "Catering", ItemName: "Cake", ActualCost: 450},
		}

		doc := budgetDocument(wedding, items, generatedAt)

		assert.Equal(t, "Анна & Борис", doc.Subtitle)
		require.Len(t, doc.Groups, 2)
		// порядок категорий по первому появлению
		assert.Equal(t, "Catering", doc.Groups[0].Title)
		assert.Len(t, doc.Groups[0].Rows, 2)
		assert.Equal(t, "3450.00", doc.Groups[0].Subtotal)
		assert.Equal(t, "Venue", doc.Groups[1].Title)
		assert.Equal(t, "5000.00", doc.Groups[1].Subtotal)
		assert.Equal(t, "8450.00", doc.Total)
	})

	t.Run("пустой бюджет даёт нулевой итог", func(t *testing.T) {
		doc := budgetDocument(wedding, nil, generatedAt)

		assert.Empty(t, doc.Groups)
		assert.Equal(t, "0.00", doc.Total)
	})
}

func TestService_BudgetPDF_EmptyBudget(t *testing.T) {
	source := new(MockDataSource)
	source.On("ReadWedding", mock.Anything, "user123").
		Return(&models.Wedding{Partner1Name: "Анна", Partner2Name: "Борис"}, nil)
	source.On("ListBudgetItems", mock.Anything, "user123").
		Return([]*models.BudgetItem{}, nil)

	svc := New(source)
	file, err := svc.BudgetPDF(context.Background(), "user123")

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF-")))
	source.AssertExpectations(t)
}

func TestService_CSV(t *testing.T) {
	t.Run("проекция колонок для гостей", func(t *testing.T) {
		email := "anna@example.com"
		source := new(MockDataSource)
		source.On("ListGuests", mock.Anything, "user123").
			Return([]*models.Guest{
				{Name: "Анна Иванова", Email: &email, RSVPStatus: "accepted", PlusOne: true},
			}, nil)

		svc := New(source)
		file, err := svc.CSV(context.Background(), "user123", SubjectGuests)

		require.NoError(t, err)
		lines := strings.Split(strings.TrimRight(string(file.Data), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t,
			"Name,Email,Phone,RSVP,Plus One,Dietary Restrictions,Table,Address,Notes",
			lines[0])
		assert.Equal(t, "Анна Иванова,anna@example.com,,accepted,yes,,,,", lines[1])
	})

	t.Run("пустой список даёт файл из одного заголовка", func(t *testing.T) {
		source := new(MockDataSource)
		source.On("ListGuests", mock.Anything, "user123").
			Return([]*models.Guest{}, nil)

		svc := New(source)
		file, err := svc.CSV(context.Background(), "user123", SubjectGuests)

		require.NoError(t, err)
		assert.Equal(t,
			"Name,Email,Phone,RSVP,Plus One,Dietary Restrictions,Table,Address,Notes\n",
			string(file.Data))
	})

	t.Run("неизвестная тема выгрузки", func(t *testing.T) {
		svc := New(new(MockDataSource))
		_, err := svc.CSV(context.Background(), "user123", "passports")

		assert.ErrorIs(t, err, ErrUnknownSubject)
	})
}
