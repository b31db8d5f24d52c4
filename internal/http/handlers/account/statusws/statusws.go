// Package statusws реализует websocket-обработчик подписки на изменения
// статуса аккаунта.
//
// Для каждого соединения поднимается отдельный наблюдатель: он сразу
// отдаёт текущий снимок, а затем присылает только изменившиеся снимки.
package statusws

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/gorilla/websocket"

	"github.com/magabrotheeeer/wedding-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
	"github.com/magabrotheeeer/wedding-planner/internal/services/lifecycle"
)

// WatcherFunc создает наблюдатель статуса для пользователя.
type WatcherFunc func(userUID string) *lifecycle.Watcher

// Handler управляет websocket-подписками на статус подписки.
type Handler struct {
	log        *slog.Logger
	newWatcher WatcherFunc
	upgrader   websocket.Upgrader
}

// New создает новый Handler с переданными логгером и фабрикой наблюдателей.
func New(log *slog.Logger, newWatcher WatcherFunc) *Handler {
	return &Handler{
		log:        log,
		newWatcher: newWatcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// ServeHTTP godoc
// @Summary Поток изменений статуса подписки
// @Tags Account
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /account/status/ws [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.statusws"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", sl.Err(err))
		return
	}
	defer func() { _ = conn.Close() }()

	watcher := h.newWatcher(userUID)
	watcher.Start(r.Context())
	defer watcher.Close()

	updates, unsubscribe := watcher.Subscribe()
	defer unsubscribe()

	if snapshot, ok := watcher.Snapshot(); ok {
		if err := conn.WriteJSON(snapshot); err != nil {
			log.Error("failed to write initial snapshot", sl.Err(err))
			return
		}
	}

	// Читающий цикл нужен только чтобы заметить закрытие соединения.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-closed:
			log.Info("websocket closed by client", slog.String("user_uid", userUID))
			return
		case status, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(status); err != nil {
				log.Error("failed to write status update", sl.Err(err))
				return
			}
		}
	}
}
