// Package pdf реализует HTTP-обработчик выгрузки бюджета в PDF-файл
// с группировкой по категориям и промежуточными итогами.
package pdf

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

// Handler управляет HTTP-запросами на выгрузку PDF.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс сборки PDF-файла бюджета.
type Service interface {
	BudgetPDF(ctx context.Context, userUID string) (*exporter.File, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выгрузка бюджета в PDF
// @Tags Export
// @Produce  application/pdf
// @Success 200 {file} file "PDF-файл"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /export/pdf [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.export.pdf"
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

	file, err := h.service.BudgetPDF(r.Context(), userUID)
	if err != nil {
		log.Error("failed to build pdf export", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build export"))
		return
	}

	sink := export.HTTPSink{W: w}
	if err := sink.Write(file.Name, file.ContentType, file.Data); err != nil {
		log.Error("failed to write export body", sl.Err(err))
		return
	}
	log.Info("pdf export sent", slog.Int("size", len(file.Data)))
}
