package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/wedding-planner/internal/models"
	"github.com/magabrotheeeer/wedding-planner/internal/services/lifecycle"
)

// MockStatusChecker реализует интерфейс StatusChecker
type MockStatusChecker struct {
	mock.Mock
}

func (m *MockStatusChecker) CheckTrialStatus(ctx context.Context, userUID string) (lifecycle.Status, error) {
	args := m.Called(ctx, userUID)
	return args.Get(0).(lifecycle.Status), args.Error(1)
}

func TestAccountAccessMiddleware(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	tests := []struct {
		name           string
		method         string
		userUID        string
		setupMock      func(*MockStatusChecker)
		expectedStatus int
		nextCalled     bool
	}{
		{
			name:    "полный доступ пропускает запись",
			method:  http.MethodPost,
			userUID: "user123",
			setupMock: func(m *MockStatusChecker) {
				m.On("CheckTrialStatus", mock.Anything, "user123").
					Return(lifecycle.Status{
						AccountStatus: models.StatusTrialActive,
						HasAccess:     true,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			nextCalled:     true,
		},
		{
			name:    "только чтение пропускает GET",
			method:  http.MethodGet,
			userUID: "user123",
			setupMock: func(m *MockStatusChecker) {
				m.On("CheckTrialStatus", mock.Anything, "user123").
					Return(lifecycle.Status{
						AccountStatus: models.StatusTrialExpired,
						IsReadOnly:    true,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			nextCalled:     true,
		},
		{
			name:    "только чтение отклоняет запись",
			method:  http.MethodPost,
			userUID: "user123",
			setupMock: func(m *MockStatusChecker) {
				m.On("CheckTrialStatus", mock.Anything, "user123").
					Return(lifecycle.Status{
						AccountStatus: models.StatusPremiumCancelled,
						IsReadOnly:    true,
					}, nil)
			},
			expectedStatus: http.StatusForbidden,
			nextCalled:     false,
		},
		{
			name:    "заблокированный аккаунт не получает доступа",
			method:  http.MethodGet,
			userUID: "user123",
			setupMock: func(m *MockStatusChecker) {
				m.On("CheckTrialStatus", mock.Anything, "user123").
					Return(lifecycle.Status{
						AccountStatus: models.StatusSuspended,
					}, nil)
			},
			expectedStatus: http.StatusForbidden,
			nextCalled:     false,
		},
		{
			name:           "без идентификатора пользователя",
			method:         http.MethodGet,
			userUID:        "",
			setupMock:      func(_ *MockStatusChecker) {},
			expectedStatus: http.StatusUnauthorized,
			nextCalled:     false,
		},
		{
			name:    "ошибка чтения статуса",
			method:  http.MethodGet,
			userUID: "user123",
			setupMock: func(m *MockStatusChecker) {
				m.On("CheckTrialStatus", mock.Anything, "user123").
					Return(lifecycle.Status{}, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			nextCalled:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := new(MockStatusChecker)
			tt.setupMock(checker)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, "/api/v1/guests", nil)
			if tt.userUID != "" {
				req = req.WithContext(context.WithValue(req.Context(), UserUID, tt.userUID))
			}

			w := httptest.NewRecorder()
			AccountAccessMiddleware(logger, checker)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.nextCalled, nextCalled)
			checker.AssertExpectations(t)
		})
	}
}
