package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/wedding-planner/internal/stripe"
)

// MockService реализует интерфейс webhook.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) HandleWebhook(ctx context.Context, event *stripe.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func signPayload(payload []byte, secret string) string {
	timestamp := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", timestamp, payload)
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func TestWebhookHandler(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	const secret = "whsec_test"

	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed",` +
		`"data":{"object":{"id":"cs_1","customer":"cus_1","client_reference_id":"user123"}}}`)

	tests := []struct {
		name           string
		signature      string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "валидная подпись",
			signature: signPayload(payload, secret),
			setupMock: func(m *MockService) {
				m.On("HandleWebhook", mock.Anything, mock.MatchedBy(func(e *stripe.Event) bool {
					return e.Type == stripe.EventCheckoutCompleted &&
						e.Data.Object.ClientReferenceID == "user123"
				})).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"received":true}}`,
		},
		{
			name:           "неверная подпись",
			signature:      signPayload(payload, "whsec_wrong"),
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid signature"}`,
		},
		{
			name:           "подпись отсутствует",
			signature:      "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid signature"}`,
		},
		{
			name:      "ошибка обработки события",
			signature: signPayload(payload, secret),
			setupMock: func(m *MockService) {
				m.On("HandleWebhook", mock.Anything, mock.Anything).
					Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not process event"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService, secret)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/webhook", bytes.NewReader(payload))
			if tt.signature != "" {
				req.Header.Set("Stripe-Signature", tt.signature)
			}
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
