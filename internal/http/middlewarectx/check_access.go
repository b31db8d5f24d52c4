package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/wedding-planner/internal/http/response"
	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
	"github.com/magabrotheeeer/wedding-planner/internal/services/lifecycle"
)

// StatusChecker определяет интерфейс для чтения статуса подписки пользователя.
type StatusChecker interface {
	CheckTrialStatus(ctx context.Context, userUID string) (lifecycle.Status, error)
}

// mutating сообщает, изменяет ли метод данные.
func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// AccountAccessMiddleware создает middleware, применяющий статус подписки
// к запросу: в режиме «только чтение» изменяющие запросы отклоняются
// с HTTP 403, заблокированные и удалённые аккаунты не получают доступа вовсе.
func AccountAccessMiddleware(log *slog.Logger, checker StatusChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userUID, ok := r.Context().Value(UserUID).(string)
			if !ok || userUID == "" {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			status, err := checker.CheckTrialStatus(r.Context(), userUID)
			if err != nil {
				log.Error("failed to get subscription status", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if !status.HasAccess && !status.IsReadOnly {
				log.Error("account has no access",
					slog.String("account_status", string(status.AccountStatus)))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("account is not active"))
				return
			}

			if status.IsReadOnly && mutating(r.Method) {
				log.Error("write rejected for read-only account",
					slog.String("user_uid", userUID))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("account is read-only, subscribe to make changes"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
