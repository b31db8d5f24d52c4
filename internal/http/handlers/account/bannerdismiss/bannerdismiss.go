// Package bannerdismiss реализует HTTP-обработчик закрытия предупреждения
// об удалении: до конца сессии оно больше не показывается.
package bannerdismiss

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/wedding-planner/internal/http/response"
)

// Handler управляет HTTP-запросами на закрытие предупреждения.
type Handler struct {
	log  *slog.Logger
	gate Gate
}

// Gate подавляет предупреждение для сессии.
type Gate interface {
	Dismiss(sessionID string)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, gate Gate) *Handler {
	return &Handler{
		log:  log,
		gate: gate,
	}
}

// ServeHTTP godoc
// @Summary Закрыть предупреждение об удалении
// @Tags Account
// @Produce  json
// @Param X-Session-ID header string true "Идентификатор сессии браузера"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Не передан идентификатор сессии"
// @Router /account/banner/dismiss [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.bannerdismiss"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		log.Error("session id header missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("X-Session-ID header is required"))
		return
	}

	h.gate.Dismiss(sessionID)
	log.Info("deletion warning dismissed", slog.String("session_id", sessionID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"dismissed": true,
	}))
}
