// Package notifier собирает приложение-потребитель очереди покупок,
// отправляющее письма подтверждения по SMTP.
package notifier

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/continental-academy/academy-api/internal/config"
	"github.com/continental-academy/academy-api/internal/lib/rabbitmq"
	"github.com/continental-academy/academy-api/internal/lib/sl"
	"github.com/continental-academy/academy-api/internal/lib/smtp"
	notifierservice "github.com/continental-academy/academy-api/internal/services/notifier"
)

// App инкапсулирует соединение с брокером и сервис уведомлений.
type App struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	service *notifierservice.Service
	logger  *slog.Logger
}

// New подключается к RabbitMQ, объявляет очередь покупок и собирает
// сервис отправки писем.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)
	service := notifierservice.New(transport, logger)

	return &App{
		conn:    conn,
		ch:      ch,
		service: service,
		logger:  logger,
	}, nil
}

// Run запускает потребителя очереди покупок и блокируется до отмены
// контекста.
func (a *App) Run(ctx context.Context) error {
	if err := rabbitmq.ConsumeMessages(ctx, a.ch, rabbitmq.PurchasesQueue, a.service.HandlePurchaseEvent); err != nil {
		a.logger.Error("failed to start purchases consumer", sl.Err(err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("notifier shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	return nil
}
