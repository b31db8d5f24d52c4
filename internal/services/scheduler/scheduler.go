// Package scheduler содержит фоновые обходы жизненного цикла аккаунтов:
// перевод истёкших пробных периодов в режим «только чтение»,
// предупреждения о скором удалении данных и удаление просроченных данных.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/wedding-planner/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// UserRepository описывает выборки и переходы жизненного цикла в базе данных.
type UserRepository interface {
	FindExpiredTrials(ctx context.Context, now time.Time) ([]*models.User, error)
	FindUsersInDeletionWindow(ctx context.Context, now time.Time, window time.Duration) ([]*models.User, error)
	FindUsersDueForPurge(ctx context.Context, now time.Time) ([]*models.User, error)
	UpdateAccountStatus(ctx context.Context, userUID string,
		status models.AccountStatus, deletionScheduledAt *time.Time) (int, error)
	PurgeUserData(ctx context.Context, userUID string) error
}

// ProfileNotifier рассылает push-уведомление об изменении профиля.
type ProfileNotifier interface {
	PublishProfileChanged(ctx context.Context, userUID string) error
}

// Notification — сообщение для отправителя писем.
type Notification struct {
	Email               string     `json:"email"`
	Username            string     `json:"username"`
	DeletionScheduledAt *time.Time `json:"deletion_scheduled_at,omitempty"`
}

// Service — фоновые обходы жизненного цикла аккаунтов.
type Service struct {
	repo          UserRepository
	notifier      ProfileNotifier
	log           *slog.Logger
	graceDays     int
	warningWindow time.Duration
}

// New создает новый экземпляр Service.
func New(repo UserRepository, notifier ProfileNotifier, log *slog.Logger,
	graceDays, warningWindowDays int) *Service {
	return &Service{
		repo:          repo,
		notifier:      notifier,
		log:           log,
		graceDays:     graceDays,
		warningWindow: time.Duration(warningWindowDays) * 24 * time.Hour,
	}
}

// ExpireTrials периодически переводит истёкшие пробные периоды
// в trial_expired и публикует уведомления.
func (s *Service) ExpireTrials(ctx context.Context, channel *amqp.Channel) {
	s.runExpireTrials(ctx, channel)

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runExpireTrials(ctx, channel)
		}
	}
}

func (s *Service) runExpireTrials(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting sweep for expired trials")
	now := time.Now().UTC()
	users, err := s.repo.FindExpiredTrials(ctx, now)
	if err != nil {
		s.log.Error("failed to find expired trials", sl.Err(err))
		return
	}
	if len(users) == 0 {
		s.log.Info("no expired trials found")
		return
	}
	s.log.Info("found expired trials", slog.Int("count", len(users)))

	for _, user := range users {
		deletionAt := now.AddDate(0, 0, s.graceDays)
		if _, err := s.repo.UpdateAccountStatus(ctx, user.UID,
			models.StatusTrialExpired, &deletionAt); err != nil {
			s.log.Error("failed to expire trial", sl.Err(err))
			continue
		}
		if err := s.notifier.PublishProfileChanged(ctx, user.UID); err != nil {
			s.log.Warn("failed to publish profile change", sl.Err(err))
		}
		err = rabbitmq.PublishMessage(channel, "notifications", "trial_expired", Notification{
			Email:               user.Email,
			Username:            user.Username,
			DeletionScheduledAt: &deletionAt,
		})
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}

// WarnUpcomingDeletions раз в сутки публикует предупреждения пользователям,
// чья дата удаления данных попадает в окно предупреждения.
func (s *Service) WarnUpcomingDeletions(ctx context.Context, channel *amqp.Channel) {
	s.runWarnUpcomingDeletions(ctx, channel)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runWarnUpcomingDeletions(ctx, channel)
		}
	}
}

func (s *Service) runWarnUpcomingDeletions(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting sweep for upcoming deletions")
	users, err := s.repo.FindUsersInDeletionWindow(ctx, time.Now().UTC(), s.warningWindow)
	if err != nil {
		s.log.Error("failed to find users in deletion window", sl.Err(err))
		return
	}
	if len(users) == 0 {
		s.log.Info("no upcoming deletions found")
		return
	}
	s.log.Info("found upcoming deletions", slog.Int("count", len(users)))

	for _, user := range users {
		err = rabbitmq.PublishMessage(channel, "notifications", "deletion_warning", Notification{
			Email:               user.Email,
			Username:            user.Username,
			DeletionScheduledAt: user.DeletionScheduledAt,
		})
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}

// PurgeExpiredData раз в сутки удаляет данные аккаунтов, чья дата
// удаления наступила.
func (s *Service) PurgeExpiredData(ctx context.Context, channel *amqp.Channel) {
	s.runPurgeExpiredData(ctx, channel)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runPurgeExpiredData(ctx, channel)
		}
	}
}

func (s *Service) runPurgeExpiredData(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting sweep for overdue data purges")
	users, err := s.repo.FindUsersDueForPurge(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error("failed to find users due for purge", sl.Err(err))
		return
	}
	if len(users) == 0 {
		s.log.Info("no overdue purges found")
		return
	}
	s.log.Info("found overdue purges", slog.Int("count", len(users)))

	for _, user := range users {
		if err := s.repo.PurgeUserData(ctx, user.UID); err != nil {
			s.log.Error("failed to purge user data", sl.Err(err))
			continue
		}
		s.log.Info("purged user data", slog.String("user_uid", user.UID))
		if err := s.notifier.PublishProfileChanged(ctx, user.UID); err != nil {
			s.log.Warn("failed to publish profile change", sl.Err(err))
		}
		err = rabbitmq.PublishMessage(channel, "notifications", "purged", Notification{
			Email:    user.Email,
			Username: user.Username,
		})
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
