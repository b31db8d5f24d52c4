// Package gating решает, какой элемент интерфейса показать пользователю
// в зависимости от статуса подписки: баннер пробного периода, баннер
// режима «только чтение» или предупреждение о скором удалении данных.
package gating

import (
	"time"

	"github.com/magabrotheeeer/wedding-planner/internal/models"
	"github.com/magabrotheeeer/wedding-planner/internal/services/lifecycle"
)

// Kind — вид показываемого элемента. Для любого статуса подписки
// выбирается ровно один.
type Kind string

const (
	// KindNone — ничего не показывать.
	KindNone Kind = "none"
	// KindTrialBanner — баннер пробного периода с остатком дней.
	KindTrialBanner Kind = "trial_banner"
	// KindReadOnlyBanner — баннер режима «только чтение».
	KindReadOnlyBanner Kind = "readonly_banner"
	// KindDeletionWarning — модальное предупреждение о скором удалении данных.
	KindDeletionWarning Kind = "deletion_warning"
)

// Affordance описывает выбранный элемент и данные для его отрисовки.
type Affordance struct {
	Kind              Kind `json:"kind"`
	DaysRemaining     int  `json:"daysRemaining,omitempty"`
	DaysUntilDeletion int  `json:"daysUntilDeletion,omitempty"`
}

// Service выбирает элемент интерфейса по снимку статуса подписки.
//
// Предупреждение об удалении показывается только внутри окна
// warningWindow перед датой удаления, не чаще одного раза в resurface
// на пользователя и подавляется до конца сессии после закрытия.
type Service struct {
	sessions      *SessionStore
	warningWindow time.Duration
	resurface     time.Duration

	now func() time.Time
}

// New создает новый экземпляр Service.
func New(sessions *SessionStore, warningWindowDays int, resurface time.Duration) *Service {
	return &Service{
		sessions:      sessions,
		warningWindow: time.Duration(warningWindowDays) * 24 * time.Hour,
		resurface:     resurface,
		now:           time.Now,
	}
}

// Resolve возвращает единственный элемент интерфейса для снимка статуса.
// userUID используется для троттлинга предупреждения, sessionID — для
// подавления после закрытия.
func (s *Service) Resolve(status lifecycle.Status, userUID, sessionID string) Affordance {
	now := s.now().UTC()

	switch status.AccountStatus {
	case models.StatusTrialActive:
		return Affordance{Kind: KindTrialBanner, DaysRemaining: status.DaysRemaining}
	case models.StatusTrialExpired, models.StatusPremiumCancelled:
		daysLeft := 0
		if status.DeletionScheduledAt != nil {
			daysLeft = daysUntil(now, *status.DeletionScheduledAt)
		}
		if s.shouldWarn(status, userUID, sessionID, now, daysLeft) {
			s.sessions.MarkWarned(userUID, now)
			return Affordance{Kind: KindDeletionWarning, DaysUntilDeletion: daysLeft}
		}
		return Affordance{Kind: KindReadOnlyBanner, DaysUntilDeletion: daysLeft}
	}
	return Affordance{Kind: KindNone}
}

// Dismiss подавляет предупреждение об удалении до конца сессии.
func (s *Service) Dismiss(sessionID string) {
	s.sessions.DismissWarning(sessionID)
}

func (s *Service) shouldWarn(status lifecycle.Status, userUID, sessionID string,
	now time.Time, daysLeft int) bool {
	if status.DeletionScheduledAt == nil || daysLeft == 0 {
		return false
	}
	if status.DeletionScheduledAt.Sub(now) > s.warningWindow {
		return false
	}
	if s.sessions.IsDismissed(sessionID) {
		return false
	}
	if warnedAt, ok := s.sessions.LastWarnedAt(userUID); ok && now.Sub(warnedAt) < s.resurface {
		return false
	}
	return true
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
