// Package notifier отправляет письма подтверждения покупок по событиям
// из очереди purchase.completed.
package notifier

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/continental-academy/academy-api/internal/lib/sl"
	"github.com/continental-academy/academy-api/internal/lib/smtp"
	"github.com/continental-academy/academy-api/internal/models"
)

// Service потребляет события покупок и отправляет письма через SMTP.
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

// HandlePurchaseEvent обрабатывает одно сообщение очереди покупок.
// Используется как обработчик rabbitmq.ConsumeMessages.
func (s *Service) HandlePurchaseEvent(body []byte) error {
	var event models.PurchaseEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal purchase event", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject := "Potvrda kupovine - Continental Academy"
	bodyText := fmt.Sprintf(
		"Hvala na kupovini!\n\nStavka: %s\nIznos: %.2f %s\nBroj transakcije: %s\n\nPristup je aktiviran na vasem nalogu.",
		event.ItemName, event.Amount, strings.ToUpper(event.Currency), event.SessionID)

	return s.sendEmail([]string{event.Email}, subject, bodyText)
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
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", sl.Err(err))
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}
	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("purchase confirmation sent", "to", to)
	return nil
}
