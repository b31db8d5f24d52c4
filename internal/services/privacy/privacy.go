// Package privacy содержит операции с персональными данными:
// подтверждённое удаление аккаунта и полную выгрузку данных.
package privacy

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
)

// Repository описывает контракт удаления данных пользователя.
type Repository interface {
	PurgeUserData(ctx context.Context, userUID string) error
}

// ProfileNotifier рассылает push-уведомление об изменении профиля.
type ProfileNotifier interface {
	PublishProfileChanged(ctx context.Context, userUID string) error
}

// Service — операции с персональными данными.
type Service struct {
	repo     Repository
	notifier ProfileNotifier
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, notifier ProfileNotifier, log *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, log: log}
}

// DeleteAccount удаляет все данные пользователя и помечает аккаунт
// удалённым. Подтверждение запроса проверяется на уровне обработчика,
// сюда попадают только подтверждённые удаления.
func (s *Service) DeleteAccount(ctx context.Context, userUID string) error {
	if err := s.repo.PurgeUserData(ctx, userUID); err != nil {
		return err
	}
	s.log.Info("account data purged", slog.String("user_uid", userUID))

	if err := s.notifier.PublishProfileChanged(ctx, userUID); err != nil {
		s.log.Warn("failed to publish profile change", sl.Err(err))
	}
	return nil
}
