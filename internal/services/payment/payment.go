// Package payment содержит оркестрацию покупок: создание сессий оплаты
// с ценой из каталога, опрос их статуса и сверку вебхуков провайдера
// с идемпотентной выдачей прав доступа.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/continental-academy/academy-api/internal/lib/sl"
	"github.com/continental-academy/academy-api/internal/models"
	"github.com/continental-academy/academy-api/internal/paymentprovider"
)

// ErrInvalidSignature возвращается при непройденной проверке подписи
// вебхука. Обработчик отвечает 400 до какой-либо бизнес-логики.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// Provider определяет операции платежного провайдера.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params paymentprovider.CheckoutParams) (*paymentprovider.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*paymentprovider.CheckoutSession, error)
}

// Repository определяет методы хранилища, нужные оркестратору оплат.
type Repository interface {
	GetProgram(ctx context.Context, id string) (*models.Program, error)
	GetShopProduct(ctx context.Context, id string) (*models.ShopProduct, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	AddUserSubscription(ctx context.Context, userID, programID string) error
	AddProductPurchase(ctx context.Context, userID, productID string) error
	MarkProductUnavailable(ctx context.Context, id string) error
	CreatePayment(ctx context.Context, p *models.Payment) (int, error)
	GetPaymentBySession(ctx context.Context, sessionID string) (*models.Payment, error)
	MarkPaymentPaid(ctx context.Context, sessionID string) (bool, error)
}

// Publisher публикует события завершенных покупок в очередь уведомлений.
type Publisher interface {
	PublishPurchase(event models.PurchaseEvent) error
}

// CheckoutResult — ответ на создание сессии оплаты.
type CheckoutResult struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

// StatusResult — ответ на опрос статуса сессии оплаты.
type StatusResult struct {
	SessionID     string `json:"session_id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// Service реализует бизнес-логику оплат.
type Service struct {
	provider        Provider
	repo            Repository
	publisher       Publisher // nil отключает уведомления
	webhookSecret   string
	publicClientURL string
	log             *slog.Logger
}

// New создает новый экземпляр Service.
func New(provider Provider, repo Repository, publisher Publisher,
	webhookSecret, publicClientURL string, log *slog.Logger) *Service {
	return &Service{
		provider:        provider,
		repo:            repo,
		publisher:       publisher,
		webhookSecret:   webhookSecret,
		publicClientURL: publicClientURL,
		log:             log,
	}
}

// CreateSubscriptionCheckout создает сессию оплаты подписки на программу.
// Цена и валюта читаются из записи программы, а не из запроса клиента.
func (s *Service) CreateSubscriptionCheckout(ctx context.Context, user *models.User, programID, originURL string) (*CheckoutResult, error) {
	const op = "payment.CreateSubscriptionCheckout"

	program, err := s.repo.GetProgram(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	session, err := s.provider.CreateCheckoutSession(ctx, paymentprovider.CheckoutParams{
		Name:          program.Name,
		Amount:        program.Price,
		Currency:      program.Currency,
		SuccessURL:    s.origin(originURL) + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.origin(originURL) + "/payment-cancelled",
		CustomerEmail: user.Email,
		Metadata: map[string]string{
			"user_id":    user.ID,
			"program_id": program.ID,
			"type":       models.PaymentKindSubscription,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err = s.repo.CreatePayment(ctx, &models.Payment{
		SessionID: session.ID,
		UserID:    user.ID,
		ProgramID: program.ID,
		Kind:      models.PaymentKindSubscription,
		Amount:    program.Price,
		Currency:  program.Currency,
		Status:    models.PaymentStatusPending,
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &CheckoutResult{CheckoutURL: session.URL, SessionID: session.ID}, nil
}

// CreateProductCheckout создает сессию оплаты товара магазина.
// Проданный товар купить нельзя.
func (s *Service) CreateProductCheckout(ctx context.Context, user *models.User, productID, originURL string) (*CheckoutResult, error) {
	const op = "payment.CreateProductCheckout"

	product, err := s.repo.GetShopProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !product.IsAvailable {
		return nil, fmt.Errorf("%s: product is sold: %w", op, models.ErrConflict)
	}

	session, err := s.provider.CreateCheckoutSession(ctx, paymentprovider.CheckoutParams{
		Name:          product.Title,
		Amount:        product.Price,
		Currency:      product.Currency,
		SuccessURL:    s.origin(originURL) + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.origin(originURL) + "/shop",
		CustomerEmail: user.Email,
		Metadata: map[string]string{
			"user_id":    user.ID,
			"product_id": product.ID,
			"type":       models.PaymentKindProduct,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err = s.repo.CreatePayment(ctx, &models.Payment{
		SessionID: session.ID,
		UserID:    user.ID,
		ProductID: product.ID,
		Kind:      models.PaymentKindProduct,
		Amount:    product.Price,
		Currency:  product.Currency,
		Status:    models.PaymentStatusPending,
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &CheckoutResult{CheckoutURL: session.URL, SessionID: session.ID}, nil
}

// Status опрашивает провайдера о сессии. Оплаченная сессия применяет
// права доступа немедленно, не дожидаясь вебхука. Повторный опрос
// ничего не меняет.
func (s *Service) Status(ctx context.Context, sessionID string) (*StatusResult, error) {
	const op = "payment.Status"

	session, err := s.provider.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if session.PaymentStatus == paymentprovider.PaymentStatusPaid {
		if err = s.settle(ctx, session); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return &StatusResult{
		SessionID:     session.ID,
		Status:        session.Status,
		PaymentStatus: session.PaymentStatus,
	}, nil
}

// HandleWebhook сверяет событие провайдера. Подпись проверяется по
// сырому телу до разбора JSON; непройденная проверка дает
// ErrInvalidSignature и ничего не меняет. Событие с неизвестным
// покупателем подтверждается без каких-либо изменений.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	const op = "payment.HandleWebhook"

	if err := paymentprovider.VerifySignature(body, signature, s.webhookSecret, paymentprovider.DefaultTolerance); err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}

	var event paymentprovider.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if event.Type != paymentprovider.EventCheckoutCompleted {
		return nil
	}
	session := event.Data.Object
	if session.PaymentStatus != paymentprovider.PaymentStatusPaid {
		return nil
	}
	if err := s.settle(ctx, &session); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// settle применяет последствия оплаченной сессии: идемпотентную выдачу
// прав, перевод платежной записи в paid и публикацию события покупки.
func (s *Service) settle(ctx context.Context, session *paymentprovider.CheckoutSession) error {
	user, err := s.resolvePurchaser(ctx, session)
	if err != nil {
		return err
	}
	if user == nil {
		s.log.Warn("webhook purchaser not resolved, skipping",
			slog.String("session_id", session.ID))
		return nil
	}

	kind := session.Metadata["type"]
	var itemID, itemName string
	var amount float64
	var currency string

	switch kind {
	case models.PaymentKindSubscription:
		itemID = session.Metadata["program_id"]
		if itemID == "" {
			s.log.Warn("paid session without program_id, skipping",
				slog.String("session_id", session.ID))
			return nil
		}
		if err = s.repo.AddUserSubscription(ctx, user.ID, itemID); err != nil {
			return err
		}
		if program, perr := s.repo.GetProgram(ctx, itemID); perr == nil {
			itemName = program.Name
			amount = program.Price
			currency = program.Currency
		}
	case models.PaymentKindProduct:
		itemID = session.Metadata["product_id"]
		if itemID == "" {
			s.log.Warn("paid session without product_id, skipping",
				slog.String("session_id", session.ID))
			return nil
		}
		if err = s.repo.AddProductPurchase(ctx, user.ID, itemID); err != nil {
			return err
		}
		if err = s.repo.MarkProductUnavailable(ctx, itemID); err != nil {
			return err
		}
		if product, perr := s.repo.GetShopProduct(ctx, itemID); perr == nil {
			itemName = product.Title
			amount = product.Price
			currency = product.Currency
		}
	default:
		s.log.Warn("paid session with unknown purchase type, skipping",
			slog.String("session_id", session.ID), slog.String("type", kind))
		return nil
	}

	firstTime, err := s.repo.MarkPaymentPaid(ctx, session.ID)
	if err != nil {
		return err
	}
	if !firstTime || s.publisher == nil {
		return nil
	}

	event := models.PurchaseEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Kind:      kind,
		ItemID:    itemID,
		ItemName:  itemName,
		Amount:    amount,
		Currency:  currency,
		PaidAt:    time.Now().UTC(),
		SessionID: session.ID,
	}
	if err = s.publisher.PublishPurchase(event); err != nil {
		s.log.Error("failed to publish purchase event", sl.Err(err),
			slog.String("session_id", session.ID))
	}
	return nil
}

// resolvePurchaser находит покупателя: сначала по user_id из метаданных
// сессии, затем по email покупателя без учета регистра. Возвращает
// nil без ошибки, если покупатель не найден.
func (s *Service) resolvePurchaser(ctx context.Context, session *paymentprovider.CheckoutSession) (*models.User, error) {
	if userID := session.Metadata["user_id"]; userID != "" {
		user, err := s.repo.GetUser(ctx, userID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
	}
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		user, err := s.repo.GetUserByEmail(ctx, session.CustomerDetails.Email)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

// origin возвращает базовый URL клиента для redirect-ссылок.
func (s *Service) origin(originURL string) string {
	if originURL != "" {
		return originURL
	}
	return s.publicClientURL
}
