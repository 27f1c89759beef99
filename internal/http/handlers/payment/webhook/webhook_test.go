package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	paymentservice "github.com/continental-academy/academy-api/internal/services/payment"
)

// Мок сервиса сверки вебхуков
type PaymentServiceMock struct {
	mock.Mock
}

func (m *PaymentServiceMock) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	args := m.Called(ctx, body, signature)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestWebhookHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		signature      string
		serviceErr     error
		wantStatusCode int
		wantDetail     string
	}{
		{
			name:           "valid event",
			signature:      "t=123,v1=abc",
			serviceErr:     nil,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid signature",
			signature:      "t=123,v1=bad",
			serviceErr:     paymentservice.ErrInvalidSignature,
			wantStatusCode: http.StatusBadRequest,
			wantDetail:     "invalid signature",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(PaymentServiceMock)
			serviceMock.On("HandleWebhook", mock.Anything, []byte(`{"type":"checkout.session.completed"}`), tt.signature).
				Return(tt.serviceErr).Once()

			handler := New(newNoopLogger(), serviceMock)

			req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook",
				bytes.NewReader([]byte(`{"type":"checkout.session.completed"}`)))
			req.Header.Set("Stripe-Signature", tt.signature)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, got["detail"])
			} else {
				assert.Equal(t, true, got["received"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
