// Package support пересылает обращения пользователей на почту поддержки.
package support

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
	"github.com/magabrotheeeer/wedding-planner/internal/lib/smtp"
	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// UserRepository читает данные пользователя для подстановки в письмо.
type UserRepository interface {
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
}

// Service отправляет обращения в поддержку по SMTP.
type Service struct {
	transport    smtp.TransportInterface
	users        UserRepository
	supportEmail string
	log          *slog.Logger
}

// New создает новый экземпляр Service.
func New(transport smtp.TransportInterface, users UserRepository, supportEmail string, log *slog.Logger) *Service {
	return &Service{
		transport:    transport,
		users:        users,
		supportEmail: supportEmail,
		log:          log,
	}
}

// Send пересылает обращение пользователя на почту поддержки.
func (s *Service) Send(ctx context.Context, userUID string, req models.DummySupportRequest) error {
	user, err := s.users.GetUserByUID(ctx, userUID)
	if err != nil {
		return fmt.Errorf("services.support.Send: %w", err)
	}
	username, userEmail := user.Username, user.Email

	subject := fmt.Sprintf("Обращение в поддержку: %s", req.Subject)
	bodyText := fmt.Sprintf("Пользователь: %s <%s>\n\n%s", username, userEmail, req.Text)

	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + s.supportEmail,
		"Reply-To: " + userEmail,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("Failed to connect to SMTP server", "error", sl.Err(err))
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		return err
	}
	if err := client.Rcpt(s.supportEmail); err != nil {
		return err
	}
	wc, err := client.Data()
	if err != nil {
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		return err
	}
	if err = wc.Close(); err != nil {
		return err
	}
	if err = client.Quit(); err != nil {
		return err
	}

	s.log.Info("support request forwarded", slog.String("from", userEmail))
	return nil
}
