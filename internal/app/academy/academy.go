// Package academy собирает HTTP-приложение платформы: базу данных,
// миграции, кеш, стартовые данные, платежного провайдера, брокер
// уведомлений, сервисы и маршруты.
package academy

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/streadway/amqp"

	"github.com/continental-academy/academy-api/internal/cache"
	"github.com/continental-academy/academy-api/internal/config"
	"github.com/continental-academy/academy-api/internal/lib/jwt"
	"github.com/continental-academy/academy-api/internal/lib/rabbitmq"
	"github.com/continental-academy/academy-api/internal/lib/sl"
	"github.com/continental-academy/academy-api/internal/migrations"
	"github.com/continental-academy/academy-api/internal/models"
	"github.com/continental-academy/academy-api/internal/paymentprovider"
	"github.com/continental-academy/academy-api/internal/seed"
	authservice "github.com/continental-academy/academy-api/internal/services/auth"
	catalogservice "github.com/continental-academy/academy-api/internal/services/catalog"
	entitlementservice "github.com/continental-academy/academy-api/internal/services/entitlement"
	paymentservice "github.com/continental-academy/academy-api/internal/services/payment"
	usersservice "github.com/continental-academy/academy-api/internal/services/users"
	"github.com/continental-academy/academy-api/internal/storage/repository"

	"github.com/go-chi/chi"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	amqpConn *amqp.Connection
	amqpChan *amqp.Channel
}

// purchasePublisher публикует события покупок в обменник RabbitMQ.
type purchasePublisher struct {
	ch *amqp.Channel
}

func (p *purchasePublisher) PublishPurchase(event models.PurchaseEvent) error {
	return rabbitmq.PublishMessage(p.ch, rabbitmq.PurchasesExchange, rabbitmq.PurchasesKey, event)
}

// New создает приложение: подключает хранилище, применяет миграции,
// подключает Redis, создает стартовые данные и собирает сервисы с
// маршрутами. Недоступность RabbitMQ не фатальна, уведомления о
// покупках в этом случае отключаются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	if err = seed.Run(ctx, db, logger); err != nil {
		return nil, err
	}

	var publisher paymentservice.Publisher
	var amqpConn *amqp.Connection
	var amqpChan *amqp.Channel
	if cfg.RabbitMQ.URL != "" {
		amqpConn, err = rabbitmq.Connect(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Warn("rabbitmq unavailable, purchase notifications disabled", sl.Err(err))
		} else {
			amqpChan, err = rabbitmq.SetupChannel(amqpConn)
			if err != nil {
				logger.Warn("rabbitmq channel setup failed, purchase notifications disabled", sl.Err(err))
				amqpConn.Close()
				amqpConn = nil
			} else {
				publisher = &purchasePublisher{ch: amqpChan}
			}
		}
	}

	jwtMaker := jwt.NewMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)
	providerClient := paymentprovider.NewClient(cfg.Stripe.APIKey)

	authService := authservice.New(db, jwtMaker)
	entitlementService := entitlementservice.New(db)
	catalogService := catalogservice.New(db, cacheRedis, logger)
	usersService := usersservice.New(db)
	paymentService := paymentservice.New(providerClient, db, publisher,
		cfg.Stripe.WebhookSecret, cfg.PublicClientURL, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, &Services{
		Auth:        authService,
		Entitlement: entitlementService,
		Catalog:     catalogService,
		Users:       usersService,
		Payment:     paymentService,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		amqpConn: amqpConn,
		amqpChan: amqpChan,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.amqpChan != nil {
			if closeErr := a.amqpChan.Close(); closeErr != nil {
				a.logger.Error("failed to close rabbitmq channel", sl.Err(closeErr))
			}
		}
		if a.amqpConn != nil {
			if closeErr := a.amqpConn.Close(); closeErr != nil {
				a.logger.Error("failed to close rabbitmq connection", sl.Err(closeErr))
			}
		}
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", sl.Err(closeErr))
		}
		return err
	}
}
