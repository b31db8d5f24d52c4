// Package payment содержит логику оплаты подписки: запуск checkout,
// портал управления подпиской и обработку вебхуков платёжного провайдера.
package payment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
	"github.com/magabrotheeeer/wedding-planner/internal/models"
	"github.com/magabrotheeeer/wedding-planner/internal/stripe"
)

// ErrNoCustomer возвращается, когда у пользователя ещё нет клиента
// у платёжного провайдера.
var ErrNoCustomer = errors.New("user has no billing customer yet")

// Provider описывает контракт платёжного провайдера.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (*stripe.PortalSession, error)
}

// UserRepository описывает контракт для обновления платёжных данных пользователя.
type UserRepository interface {
	GetUserByUID(ctx context.Context, userUID string) (*models.User, error)
	SetStripeCustomerID(ctx context.Context, userUID, customerID string) error
	ActivatePremium(ctx context.Context, userUID string, expiry time.Time) error
	FindUserByStripeCustomerID(ctx context.Context, customerID string) (*models.User, error)
	UpdateAccountStatus(ctx context.Context, userUID string,
		status models.AccountStatus, deletionScheduledAt *time.Time) (int, error)
}

// ProfileNotifier рассылает push-уведомление об изменении профиля.
type ProfileNotifier interface {
	PublishProfileChanged(ctx context.Context, userUID string) error
}

// URLs — адреса возврата после оплаты и портала.
type URLs struct {
	Success      string
	Cancel       string
	PortalReturn string
}

// Service — бизнес-логика оплаты подписки.
type Service struct {
	provider  Provider
	users     UserRepository
	notifier  ProfileNotifier
	log       *slog.Logger
	priceID   string
	urls      URLs
	graceDays int
}

// New создает новый экземпляр Service.
func New(provider Provider, users UserRepository, notifier ProfileNotifier,
	log *slog.Logger, priceID string, urls URLs, graceDays int) *Service {
	return &Service{
		provider:  provider,
		users:     users,
		notifier:  notifier,
		log:       log,
		priceID:   priceID,
		urls:      urls,
		graceDays: graceDays,
	}
}

// StartCheckout создаёт сессию оплаты и возвращает URL для перенаправления.
// Шаблонный идентификатор тарифа отклоняется до обращения к провайдеру.
func (s *Service) StartCheckout(ctx context.Context, userUID string) (string, error) {
	if stripe.IsPlaceholderPriceID(s.priceID) {
		return "", stripe.ErrPlaceholderPriceID
	}

	user, err := s.users.GetUserByUID(ctx, userUID)
	if err != nil {
		return "", err
	}

	params := stripe.CheckoutSessionParams{
		PriceID:       s.priceID,
		SuccessURL:    s.urls.Success,
		CancelURL:     s.urls.Cancel,
		UserUID:       userUID,
		CustomerEmail: user.Email,
	}
	if user.StripeCustomerID != nil {
		params.CustomerID = *user.StripeCustomerID
		params.CustomerEmail = ""
	}

	session, err := s.provider.CreateCheckoutSession(ctx, params)
	if err != nil {
		return "", err
	}
	s.log.Info("checkout session created",
		slog.String("user_uid", userUID), slog.String("session_id", session.ID))
	return session.URL, nil
}

// OpenPortal создаёт сессию портала управления подпиской.
func (s *Service) OpenPortal(ctx context.Context, userUID string) (string, error) {
	user, err := s.users.GetUserByUID(ctx, userUID)
	if err != nil {
		return "", err
	}
	if user.StripeCustomerID == nil {
		return "", ErrNoCustomer
	}

	session, err := s.provider.CreatePortalSession(ctx, *user.StripeCustomerID, s.urls.PortalReturn)
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// HandleWebhook применяет событие платёжного провайдера к жизненному
// циклу аккаунта.
func (s *Service) HandleWebhook(ctx context.Context, event *stripe.Event) error {
	switch event.Type {
	case stripe.EventCheckoutCompleted:
		return s.handleCheckoutCompleted(ctx, event)
	case stripe.EventSubscriptionDeleted:
		return s.handleSubscriptionDeleted(ctx, event)
	case stripe.EventInvoicePaymentFailed:
		s.log.Warn("invoice payment failed",
			slog.String("customer", event.Data.Object.Customer))
		return nil
	}
	s.log.Info("ignoring webhook event", slog.String("type", event.Type))
	return nil
}

// handleCheckoutCompleted переводит аккаунт в premium_active и очищает
// запланированное удаление данных.
func (s *Service) handleCheckoutCompleted(ctx context.Context, event *stripe.Event) error {
	userUID := event.Data.Object.ClientReferenceID
	customerID := event.Data.Object.Customer
	if userUID == "" || customerID == "" {
		s.log.Warn("checkout completed without references",
			slog.String("event_id", event.ID))
		return nil
	}

	if err := s.users.SetStripeCustomerID(ctx, userUID, customerID); err != nil {
		return err
	}

	expiry := time.Now().UTC().AddDate(0, 1, 0)
	if event.Data.Object.CurrentPeriodEnd > 0 {
		expiry = time.Unix(event.Data.Object.CurrentPeriodEnd, 0).UTC()
	}
	if err := s.users.ActivatePremium(ctx, userUID, expiry); err != nil {
		return err
	}
	s.log.Info("premium activated", slog.String("user_uid", userUID))

	if err := s.notifier.PublishProfileChanged(ctx, userUID); err != nil {
		s.log.Warn("failed to publish profile change", sl.Err(err))
	}
	return nil
}

// handleSubscriptionDeleted переводит аккаунт в premium_cancelled
// и назначает дату удаления данных через льготный период.
func (s *Service) handleSubscriptionDeleted(ctx context.Context, event *stripe.Event) error {
	user, err := s.users.FindUserByStripeCustomerID(ctx, event.Data.Object.Customer)
	if err != nil {
		return err
	}

	deletionAt := time.Now().UTC().AddDate(0, 0, s.graceDays)
	if _, err := s.users.UpdateAccountStatus(ctx, user.UID,
		models.StatusPremiumCancelled, &deletionAt); err != nil {
		return err
	}
	s.log.Info("subscription cancelled, account moved to read-only",
		slog.String("user_uid", user.UID),
		slog.Time("deletion_scheduled_at", deletionAt))

	if err := s.notifier.PublishProfileChanged(ctx, user.UID); err != nil {
		s.log.Warn("failed to publish profile change", sl.Err(err))
	}
	return nil
}
