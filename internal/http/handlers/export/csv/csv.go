// Package csv реализует HTTP-обработчик выгрузки раздела в CSV-файл.
//
// Раздел задаётся параметром запроса subject: guests, tasks, budget,
// vendors или timeline.
package csv

import (
	"context"
	"errors"
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

// Handler управляет HTTP-запросами на выгрузку CSV.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс сборки CSV-файла выгрузки.
type Service interface {
	CSV(ctx context.Context, userUID, subject string) (*exporter.File, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выгрузка раздела в CSV
// @Tags Export
// @Produce  text/csv
// @Param subject query string true "Раздел выгрузки" Enums(guests, tasks, budget, vendors, timeline)
// @Success 200 {file} file "CSV-файл"
// @Failure 400 {object} response.ErrorResponse "Неизвестный раздел"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /export/csv [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.export.csv"
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

	subject := r.URL.Query().Get("subject")
	file, err := h.service.CSV(r.Context(), userUID, subject)
	if errors.Is(err, exporter.ErrUnknownSubject) {
		log.Error("unknown export subject", slog.String("subject", subject))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown export subject"))
		return
	}
	if err != nil {
		log.Error("failed to build csv export", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build export"))
		return
	}

	sink := export.HTTPSink{W: w}
	if err := sink.Write(file.Name, file.ContentType, file.Data); err != nil {
		log.Error("failed to write export body", sl.Err(err))
		return
	}
	log.Info("csv export sent",
		slog.String("subject", subject), slog.Int("size", len(file.Data)))
}
