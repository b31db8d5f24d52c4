// Package sender отправляет письма жизненного цикла аккаунта:
// окончание пробного периода, предупреждение о скором удалении данных
// и подтверждение удаления.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/wedding-planner/internal/lib/sl"
	"github.com/magabrotheeeer/wedding-planner/internal/lib/smtp"
	"github.com/magabrotheeeer/wedding-planner/internal/services/scheduler"
)

// Service отправляет письма по сообщениям из очередей уведомлений.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(transport smtp.TransportInterface, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendTrialExpired отправляет письмо об окончании пробного периода.
func (s *Service) SendTrialExpired(body []byte) error {
	message, err := s.decode(body)
	if err != nil {
		return err
	}

	subject := "Ваш пробный период завершился"
	bodyText := fmt.Sprintf(`Здравствуйте, %s!

Пробный период в планировщике свадеб завершился, аккаунт переведён в режим «только чтение».
Все ваши данные сохранены: оформите подписку, чтобы продолжить планирование.`,
		message.Username)
	if message.DeletionScheduledAt != nil {
		bodyText += fmt.Sprintf("\n\nБез подписки данные будут удалены %s.",
			message.DeletionScheduledAt.Format("02.01.2006"))
	}

	return s.sendEmail([]string{message.Email}, subject, bodyText)
}

// SendDeletionWarning отправляет предупреждение о скором удалении данных.
func (s *Service) SendDeletionWarning(body []byte) error {
	message, err := s.decode(body)
	if err != nil {
		return err
	}

	subject := "Ваши данные скоро будут удалены"
	when := "в ближайшие дни"
	if message.DeletionScheduledAt != nil {
		when = message.DeletionScheduledAt.Format("02.01.2006")
	}
	bodyText := fmt.Sprintf(`Здравствуйте, %s!

Данные вашей свадьбы будут удалены %s.
Оформите подписку, чтобы сохранить список гостей, бюджет и план дня,
или выгрузите данные в разделе экспорта.`, message.Username, when)

	return s.sendEmail([]string{message.Email}, subject, bodyText)
}

// SendPurged отправляет подтверждение удаления данных.
func (s *Service) SendPurged(body []byte) error {
	message, err := s.decode(body)
	if err != nil {
		return err
	}

	subject := "Данные вашего аккаунта удалены"
	bodyText := fmt.Sprintf(`Здравствуйте, %s!

Данные вашего аккаунта в планировщике свадеб удалены.
Спасибо, что были с нами.`, message.Username)

	return s.sendEmail([]string{message.Email}, subject, bodyText)
}

func (s *Service) decode(body []byte) (*scheduler.Notification, error) {
	var message scheduler.Notification
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return nil, fmt.Errorf("error unmarshalling message: %w", err)
	}
	return &message, nil
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
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
		s.log.Error("Failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("Failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("Failed to get Data writer", "error", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("Failed to write email body", "error", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("Failed to close Data writer", "error", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("Failed to quit SMTP client", "error", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
