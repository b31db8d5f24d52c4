// Package lifecycle реализует жизненный цикл аккаунта: вычисление
// текущего статуса подписки с ленивыми переходами и наблюдение за его
// изменениями через периодический опрос и push-уведомления.
package lifecycle

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// Status — снимок статуса подписки пользователя на момент наблюдения.
// Именно эта структура отдаётся клиенту и рассылается подписчикам Watcher.
type Status struct {
	AccountStatus       models.AccountStatus `json:"accountStatus"`
	HasAccess           bool                 `json:"hasAccess"`
	IsReadOnly          bool                 `json:"isReadOnly"`
	DaysRemaining       int                  `json:"daysRemaining"`
	TrialEndsAt         *time.Time           `json:"trialEndsAt,omitempty"`
	DeletionScheduledAt *time.Time           `json:"deletionScheduledAt,omitempty"`
}

// Equal сравнивает два снимка по значению, включая даты.
func (s Status) Equal(other Status) bool {
	return s.AccountStatus == other.AccountStatus &&
		s.HasAccess == other.HasAccess &&
		s.IsReadOnly == other.IsReadOnly &&
		s.DaysRemaining == other.DaysRemaining &&
		timePtrEqual(s.TrialEndsAt, other.TrialEndsAt) &&
		timePtrEqual(s.DeletionScheduledAt, other.DeletionScheduledAt)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// UserRepository описывает контракт для чтения и обновления статуса пользователя.
type UserRepository interface {
	GetUserByUID(ctx context.Context, userUID string) (*models.User, error)
	UpdateAccountStatus(ctx context.Context, userUID string,
		status models.AccountStatus, deletionScheduledAt *time.Time) (int, error)
}

// ProfileNotifier рассылает push-уведомление об изменении профиля
// пользователя всем его открытым сессиям.
type ProfileNotifier interface {
	PublishProfileChanged(ctx context.Context, userUID string) error
}

// Service вычисляет статус подписки и выполняет ленивые переходы
// жизненного цикла при чтении.
type Service struct {
	users     UserRepository
	notifier  ProfileNotifier
	log       *slog.Logger
	graceDays int

	now func() time.Time
}

// New создает новый экземпляр Service. graceDays задаёт льготный период
// между истечением доступа и запланированным удалением данных.
func New(users UserRepository, notifier ProfileNotifier, log *slog.Logger, graceDays int) *Service {
	return &Service{
		users:     users,
		notifier:  notifier,
		log:       log,
		graceDays: graceDays,
		now:       time.Now,
	}
}

// CheckTrialStatus возвращает текущий снимок статуса подписки пользователя.
//
// Переход trial_active -> trial_expired выполняется лениво: если дата
// окончания пробного периода уже прошла, новый статус и дата удаления
// данных записываются в хранилище прямо при чтении, а открытые сессии
// пользователя получают push-уведомление.
func (s *Service) CheckTrialStatus(ctx context.Context, userUID string) (Status, error) {
	user, err := s.users.GetUserByUID(ctx, userUID)
	if err != nil {
		return Status{}, err
	}

	now := s.now().UTC()
	if user.AccountStatus == models.StatusTrialActive &&
		user.TrialEndsAt != nil && user.TrialEndsAt.Before(now) {
		deletionAt := now.AddDate(0, 0, s.graceDays)
		if _, err := s.users.UpdateAccountStatus(ctx, userUID,
			models.StatusTrialExpired, &deletionAt); err != nil {
			return Status{}, err
		}
		user.AccountStatus = models.StatusTrialExpired
		user.DeletionScheduledAt = &deletionAt
		s.log.Info("trial expired, account moved to read-only",
			slog.String("user_uid", userUID),
			slog.Time("deletion_scheduled_at", deletionAt))
		if err := s.notifier.PublishProfileChanged(ctx, userUID); err != nil {
			s.log.Warn("failed to publish profile change", sl.Err(err))
		}
	}

	return s.snapshot(user, now), nil
}

func (s *Service) snapshot(user *models.User, now time.Time) Status {
	status := Status{
		AccountStatus:       user.AccountStatus,
		TrialEndsAt:         user.TrialEndsAt,
		DeletionScheduledAt: user.DeletionScheduledAt,
	}
	switch user.AccountStatus {
	case models.StatusTrialActive, models.StatusPremiumActive:
		status.HasAccess = true
	case models.StatusTrialExpired, models.StatusPremiumCancelled:
		status.IsReadOnly = true
	}
	switch {
	case user.AccountStatus == models.StatusTrialActive && user.TrialEndsAt != nil:
		status.DaysRemaining = daysUntil(now, *user.TrialEndsAt)
	case status.IsReadOnly && user.DeletionScheduledAt != nil:
		status.DaysRemaining = daysUntil(now, *user.DeletionScheduledAt)
	}
	return status
}

// daysUntil считает оставшиеся полные дни с округлением вверх,
// отрицательные значения прижимаются к нулю.
func daysUntil(now, deadline time.Time) int {
	diff := deadline.Sub(now)
	if diff <= 0 {
		return 0
	}
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}
