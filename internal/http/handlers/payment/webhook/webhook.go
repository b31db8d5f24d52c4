// Package webhook реализует HTTP-обработчик событий платёжного провайдера.
//
// Подпись запроса проверяется до разбора тела: событие с неверной
// подписью отклоняется без обращения к бизнес-логике.
package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/wedding-planner/internal/http/response"
	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
	"github.com/magabrotheeeer/wedding-planner/internal/stripe"
)

// maxBodySize ограничивает размер тела вебхука.
const maxBodySize = 1 << 16

// Handler управляет HTTP-запросами вебхуков провайдера.
type Handler struct {
	log           *slog.Logger
	service       Service
	webhookSecret string
}

// Service описывает интерфейс применения события к жизненному циклу аккаунта.
type Service interface {
	HandleWebhook(ctx context.Context, event *stripe.Event) error
}

// New создает новый Handler с переданными логгером, сервисом и секретом подписи.
func New(log *slog.Logger, service Service, webhookSecret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		webhookSecret: webhookSecret,
	}
}

// ServeHTTP godoc
// @Summary Вебхук платёжного провайдера
// @Tags Payment
// @Accept  json
// @Produce  json
// @Param Stripe-Signature header string true "Подпись запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Неверная подпись или тело"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payment/webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	event, err := stripe.ParseWebhook(payload, r.Header.Get("Stripe-Signature"), h.webhookSecret)
	if errors.Is(err, stripe.ErrInvalidSignature) {
		log.Error("webhook signature verification failed")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid signature"))
		return
	}
	if err != nil {
		log.Error("failed to parse webhook", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid webhook payload"))
		return
	}

	if err := h.service.HandleWebhook(r.Context(), event); err != nil {
		log.Error("failed to apply webhook event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not process event"))
		return
	}

	log.Info("webhook processed", slog.String("type", event.Type))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"received": true,
	}))
}
