package status

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/wedding-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/wedding-planner/internal/models"
	"github.com/magabrotheeeer/wedding-planner/internal/services/lifecycle"
)

// MockService реализует интерфейс status.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CheckTrialStatus(ctx context.Context, userUID string) (lifecycle.Status, error) {
	args := m.Called(ctx, userUID)
	return args.Get(0).(lifecycle.Status), args.Error(1)
}

func TestStatusHandler(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	tests := []struct {
		name           string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "активный пробный период",
			userUID: "user123",
			setupMock: func(m *MockService) {
				m.On("CheckTrialStatus", mock.Anything, "user123").
					Return(lifecycle.Status{
						AccountStatus: models.StatusTrialActive,
						HasAccess:     true,
						DaysRemaining: 12,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"accountStatus":"trial_active","hasAccess":true,"isReadOnly":false,"daysRemaining":12}}`,
		},
		{
			name:    "режим только чтение",
			userUID: "user123",
			setupMock: func(m *MockService) {
				m.On("CheckTrialStatus", mock.Anything, "user123").
					Return(lifecycle.Status{
						AccountStatus: models.StatusTrialExpired,
						IsReadOnly:    true,
						DaysRemaining: 3,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"accountStatus":"trial_expired","hasAccess":false,"isReadOnly":true,"daysRemaining":3}}`,
		},
		{
			name:           "отсутствует авторизация",
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:    "ошибка сервиса",
			userUID: "user123",
			setupMock: func(m *MockService) {
				m.On("CheckTrialStatus", mock.Anything, "user123").
					Return(lifecycle.Status{}, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not read subscription status"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/account/status", nil)
			ctx := req.Context()
			if tt.userUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
