// Package banner реализует HTTP-обработчик выбора баннера для аккаунта.
//
// Ответ содержит ровно один элемент интерфейса: баннер пробного периода,
// баннер «только чтение», предупреждение об удалении или ничего.
package banner

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/wedding-planner/internal/gating"
	"github.com/magabrotheeeer/wedding-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/wedding-planner/internal/http/response"
	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
	"github.com/magabrotheeeer/wedding-planner/internal/services/lifecycle"
)

// StatusReader читает снимок статуса подписки пользователя.
type StatusReader interface {
	CheckTrialStatus(ctx context.Context, userUID string) (lifecycle.Status, error)
}

// Gate выбирает элемент интерфейса по снимку статуса.
type Gate interface {
	Resolve(status lifecycle.Status, userUID, sessionID string) gating.Affordance
}

// Handler управляет HTTP-запросами на выбор баннера.
type Handler struct {
	log    *slog.Logger
	status StatusReader
	gate   Gate
}

// New создает новый Handler с переданными логгером и сервисами.
func New(log *slog.Logger, status StatusReader, gate Gate) *Handler {
	return &Handler{
		log:    log,
		status: status,
		gate:   gate,
	}
}

// ServeHTTP godoc
// @Summary Баннер аккаунта
// @Tags Account
// @Produce  json
// @Param X-Session-ID header string false "Идентификатор сессии браузера"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /account/banner [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.banner"
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

	status, err := h.status.CheckTrialStatus(r.Context(), userUID)
	if err != nil {
		log.Error("failed to read subscription status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read subscription status"))
		return
	}

	sessionID := r.Header.Get("X-Session-ID")
	affordance := h.gate.Resolve(status, userUID, sessionID)

	render.JSON(w, r, response.StatusOKWithData(affordance))
}
