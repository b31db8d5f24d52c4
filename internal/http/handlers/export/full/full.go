// Package full реализует HTTP-обработчик полной выгрузки данных свадьбы
// одним JSON-файлом.
package full

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/wedding-planner/internal/export"
	"github.com/magabrotheeeer/wedding-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/wedding-planner/internal/http/response"
	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
	"github.com/magabrotheeeer/wedding-planner/internal/services/exporter"
)

// Handler управляет HTTP-запросами на полную выгрузку.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс сборки полной JSON-выгрузки.
type Service interface {
	FullJSON(ctx context.Context, userUID string) (*exporter.File, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Полная выгрузка данных в JSON
// @Tags Export
// @Produce  json
// @Success 200 {file} file "JSON-файл"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /export/full [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.export.full"
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

	file, err := h.service.FullJSON(r.Context(), userUID)
	if err != nil {
		log.Error("failed to build json export", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build export"))
		return
	}

	sink := export.HTTPSink{W: w}
	if err := sink.Write(file.Name, file.ContentType, file.Data); err != nil {
		log.Error("failed to write export body", sl.Err(err))
		return
	}
	log.Info("full export sent", slog.Int("size", len(file.Data)))
}
