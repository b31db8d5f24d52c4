// Package portal реализует HTTP-обработчик входа в портал управления
// подпиской у платёжного провайдера.
package portal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/wedding-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/wedding-planner/internal/http/response"
	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
	"github.com/magabrotheeeer/wedding-planner/internal/services/payment"
)

// Handler управляет HTTP-запросами на вход в портал подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс создания сессии портала.
type Service interface {
	OpenPortal(ctx context.Context, userUID string) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Портал управления подпиской
// @Tags Payment
// @Produce  json
// @Success 200 {object} map[string]any "URL портала"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "У пользователя нет подписки"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payment/portal [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.portal"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	url, err := h.service.OpenPortal(r.Context(), userUID)
	if errors.Is(err, payment.ErrNoCustomer) {
		log.Info("portal rejected, user has no billing customer")
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("no subscription to manage"))
		return
	}
	if err != nil {
		log.Error("failed to open portal", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not open billing portal"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"url": url,
	}))
}
