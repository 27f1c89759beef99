package payment_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/continental-academy/academy-api/internal/models"
	"github.com/continental-academy/academy-api/internal/paymentprovider"
	"github.com/continental-academy/academy-api/internal/services/payment"
)

// Мок для Provider
type ProviderMock struct {
	mock.Mock
}

func (m *ProviderMock) CreateCheckoutSession(ctx context.Context, params paymentprovider.CheckoutParams) (*paymentprovider.CheckoutSession, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.CheckoutSession), args.Error(1)
}

func (m *ProviderMock) GetCheckoutSession(ctx context.Context, sessionID string) (*paymentprovider.CheckoutSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.CheckoutSession), args.Error(1)
}

// Мок для Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) GetProgram(ctx context.Context, id string) (*models.Program, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Program), args.Error(1)
}

func (m *RepoMock) GetShopProduct(ctx context.Context, id string) (*models.ShopProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShopProduct), args.Error(1)
}

func (m *RepoMock) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) AddUserSubscription(ctx context.Context, userID, programID string) error {
	args := m.Called(ctx, userID, programID)
	return args.Error(0)
}

func (m *RepoMock) AddProductPurchase(ctx context.Context, userID, productID string) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *RepoMock) MarkProductUnavailable(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RepoMock) CreatePayment(ctx context.Context, p *models.Payment) (int, error) {
	args := m.Called(ctx, p)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) GetPaymentBySession(ctx context.Context, sessionID string) (*models.Payment, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *RepoMock) MarkPaymentPaid(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

// Мок для Publisher
type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) PublishPurchase(event models.PurchaseEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

const webhookSecret = "whsec_test"

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func signBody(t *testing.T, body []byte, secret string) string {
	t.Helper()
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(fmt.Appendf(nil, "%d.%s", ts, body))
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func completedEvent(t *testing.T, session paymentprovider.CheckoutSession) []byte {
	t.Helper()
	event := paymentprovider.WebhookEvent{
		ID:   "evt_1",
		Type: paymentprovider.EventCheckoutCompleted,
	}
	event.Data.Object = session
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return body
}

func TestService_CreateSubscriptionCheckout(t *testing.T) {
	provider := new(ProviderMock)
	repo := new(RepoMock)
	svc := payment.New(provider, repo, nil, webhookSecret, "https://academy.example", newNoopLogger())

	user := &models.User{ID: "u1", Email: "buyer@example.com"}
	program := &models.Program{ID: "p1", Name: "TikTok Mastery", Price: 199.99, Currency: "EUR"}

	repo.On("GetProgram", mock.Anything, "p1").Return(program, nil).Once()
	provider.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(params paymentprovider.CheckoutParams) bool {
		return params.Amount == 199.99 &&
			params.Currency == "EUR" &&
			params.CustomerEmail == "buyer@example.com" &&
			params.Metadata["program_id"] == "p1" &&
			params.Metadata["user_id"] == "u1" &&
			params.Metadata["type"] == models.PaymentKindSubscription
	})).Return(&paymentprovider.CheckoutSession{ID: "cs_1", URL: "https://pay.example/cs_1"}, nil).Once()
	repo.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p *models.Payment) bool {
		return p.SessionID == "cs_1" && p.Status == models.PaymentStatusPending &&
			p.Kind == models.PaymentKindSubscription && p.Amount == 199.99
	})).Return(1, nil).Once()

	result, err := svc.CreateSubscriptionCheckout(context.Background(), user, "p1", "")
	require.NoError(t, err)
	assert.Equal(t, "cs_1", result.SessionID)
	assert.Equal(t, "https://pay.example/cs_1", result.CheckoutURL)

	provider.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestService_CreateProductCheckout_SoldProduct(t *testing.T) {
	provider := new(ProviderMock)
	repo := new(RepoMock)
	svc := payment.New(provider, repo, nil, webhookSecret, "https://academy.example", newNoopLogger())

	repo.On("GetShopProduct", mock.Anything, "pr1").
		Return(&models.ShopProduct{ID: "pr1", IsAvailable: false}, nil).Once()

	_, err := svc.CreateProductCheckout(context.Background(),
		&models.User{ID: "u1"}, "pr1", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConflict)

	provider.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestService_HandleWebhook_InvalidSignature(t *testing.T) {
	provider := new(ProviderMock)
	repo := new(RepoMock)
	svc := payment.New(provider, repo, nil, webhookSecret, "https://academy.example", newNoopLogger())

	body := completedEvent(t, paymentprovider.CheckoutSession{ID: "cs_1"})

	err := svc.HandleWebhook(context.Background(), body, signBody(t, body, "wrong-secret"))
	require.Error(t, err)
	assert.ErrorIs(t, err, payment.ErrInvalidSignature)

	repo.AssertNotCalled(t, "MarkPaymentPaid", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "AddUserSubscription", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_HandleWebhook_SubscriptionGrant(t *testing.T) {
	provider := new(ProviderMock)
	repo := new(RepoMock)
	publisher := new(PublisherMock)
	svc := payment.New(provider, repo, publisher, webhookSecret, "https://academy.example", newNoopLogger())

	user := &models.User{ID: "u1", Email: "buyer@example.com"}
	session := paymentprovider.CheckoutSession{
		ID:            "cs_1",
		Status:        "complete",
		PaymentStatus: paymentprovider.PaymentStatusPaid,
		Metadata: map[string]string{
			"user_id":    "u1",
			"program_id": "p1",
			"type":       models.PaymentKindSubscription,
		},
	}
	body := completedEvent(t, session)

	repo.On("GetUser", mock.Anything, "u1").Return(user, nil).Once()
	repo.On("AddUserSubscription", mock.Anything, "u1", "p1").Return(nil).Once()
	repo.On("GetProgram", mock.Anything, "p1").
		Return(&models.Program{ID: "p1", Name: "TikTok Mastery", Price: 199.99, Currency: "EUR"}, nil).Once()
	repo.On("MarkPaymentPaid", mock.Anything, "cs_1").Return(true, nil).Once()
	publisher.On("PublishPurchase", mock.MatchedBy(func(event models.PurchaseEvent) bool {
		return event.UserID == "u1" && event.ItemID == "p1" &&
			event.Kind == models.PaymentKindSubscription && event.ItemName == "TikTok Mastery"
	})).Return(nil).Once()

	err := svc.HandleWebhook(context.Background(), body, signBody(t, body, webhookSecret))
	require.NoError(t, err)

	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestService_HandleWebhook_DuplicateDelivery(t *testing.T) {
	provider := new(ProviderMock)
	repo := new(RepoMock)
	publisher := new(PublisherMock)
	svc := payment.New(provider, repo, publisher, webhookSecret, "https://academy.example", newNoopLogger())

	session := paymentprovider.CheckoutSession{
		ID:            "cs_1",
		PaymentStatus: paymentprovider.PaymentStatusPaid,
		Metadata: map[string]string{
			"user_id":    "u1",
			"program_id": "p1",
			"type":       models.PaymentKindSubscription,
		},
	}
	body := completedEvent(t, session)

	repo.On("GetUser", mock.Anything, "u1").
		Return(&models.User{ID: "u1", Email: "buyer@example.com"}, nil).Once()
	repo.On("AddUserSubscription", mock.Anything, "u1", "p1").Return(nil).Once()
	repo.On("GetProgram", mock.Anything, "p1").
		Return(&models.Program{ID: "p1", Name: "TikTok Mastery"}, nil).Once()
	repo.On("MarkPaymentPaid", mock.Anything, "cs_1").Return(false, nil).Once()

	err := svc.HandleWebhook(context.Background(), body, signBody(t, body, webhookSecret))
	require.NoError(t, err)

	publisher.AssertNotCalled(t, "PublishPurchase", mock.Anything)
	repo.AssertExpectations(t)
}

func TestService_HandleWebhook_UnknownPurchaser(t *testing.T) {
	provider := new(ProviderMock)
	repo := new(RepoMock)
	svc := payment.New(provider, repo, nil, webhookSecret, "https://academy.example", newNoopLogger())

	session := paymentprovider.CheckoutSession{
		ID:              "cs_1",
		PaymentStatus:   paymentprovider.PaymentStatusPaid,
		Metadata:        map[string]string{"user_id": "ghost", "type": models.PaymentKindSubscription},
		CustomerDetails: &paymentprovider.CustomerDetails{Email: "ghost@example.com"},
	}
	body := completedEvent(t, session)

	repo.On("GetUser", mock.Anything, "ghost").Return(nil, models.ErrNotFound).Once()
	repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, models.ErrNotFound).Once()

	err := svc.HandleWebhook(context.Background(), body, signBody(t, body, webhookSecret))
	require.NoError(t, err)

	repo.AssertNotCalled(t, "AddUserSubscription", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "MarkPaymentPaid", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestService_HandleWebhook_IgnoresUnpaidSession(t *testing.T) {
	provider := new(ProviderMock)
	repo := new(RepoMock)
	svc := payment.New(provider, repo, nil, webhookSecret, "https://academy.example", newNoopLogger())

	session := paymentprovider.CheckoutSession{ID: "cs_1", PaymentStatus: "unpaid"}
	body := completedEvent(t, session)

	err := svc.HandleWebhook(context.Background(), body, signBody(t, body, webhookSecret))
	require.NoError(t, err)

	repo.AssertNotCalled(t, "MarkPaymentPaid", mock.Anything, mock.Anything)
}

func TestService_Status_SettlesPaidProduct(t *testing.T) {
	provider := new(ProviderMock)
	repo := new(RepoMock)
	svc := payment.New(provider, repo, nil, webhookSecret, "https://academy.example", newNoopLogger())

	session := &paymentprovider.CheckoutSession{
		ID:            "cs_2",
		Status:        "complete",
		PaymentStatus: paymentprovider.PaymentStatusPaid,
		Metadata: map[string]string{
			"user_id":    "u1",
			"product_id": "pr1",
			"type":       models.PaymentKindProduct,
		},
	}

	provider.On("GetCheckoutSession", mock.Anything, "cs_2").Return(session, nil).Once()
	repo.On("GetUser", mock.Anything, "u1").
		Return(&models.User{ID: "u1", Email: "buyer@example.com"}, nil).Once()
	repo.On("AddProductPurchase", mock.Anything, "u1", "pr1").Return(nil).Once()
	repo.On("MarkProductUnavailable", mock.Anything, "pr1").Return(nil).Once()
	repo.On("GetShopProduct", mock.Anything, "pr1").
		Return(&models.ShopProduct{ID: "pr1", Title: "Aged account"}, nil).Once()
	repo.On("MarkPaymentPaid", mock.Anything, "cs_2").Return(true, nil).Once()

	result, err := svc.Status(context.Background(), "cs_2")
	require.NoError(t, err)
	assert.Equal(t, paymentprovider.PaymentStatusPaid, result.PaymentStatus)

	provider.AssertExpectations(t)
	repo.AssertExpectations(t)
}
