package register

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

	"github.com/continental-academy/academy-api/internal/models"
)

// Мок сервиса регистрации
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenResponse), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		setupMocks     func(s *AuthServiceMock)
		wantStatusCode int
		wantDetail     string
	}{
		{
			name: "valid registration",
			requestBody: models.RegisterRequest{
				Name:     "Test User",
				Email:    "user1@example.com",
				Password: "password123",
			},
			setupMocks: func(s *AuthServiceMock) {
				s.On("Register", mock.Anything, mock.Anything).Return(&models.TokenResponse{
					AccessToken: "jwt-token-123",
					TokenType:   "bearer",
					User:        &models.User{ID: "u1", Email: "user1@example.com"},
				}, nil).Once()
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			setupMocks:     func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantDetail:     "invalid request body",
		},
		{
			name: "missing password",
			requestBody: models.RegisterRequest{
				Name:  "Test User",
				Email: "user1@example.com",
			},
			setupMocks:     func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			requestBody: models.RegisterRequest{
				Name:     "Test User",
				Email:    "user1@example.com",
				Password: "password123",
			},
			setupMocks: func(s *AuthServiceMock) {
				s.On("Register", mock.Anything, mock.Anything).
					Return(nil, models.ErrConflict).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantDetail:     "email already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(AuthServiceMock)
			tt.setupMocks(serviceMock)

			handler := New(newNoopLogger(), serviceMock)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			if tt.wantDetail != "" {
				var got map[string]any
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, tt.wantDetail, got["detail"])
			}
			if tt.wantStatusCode == http.StatusCreated {
				var got models.TokenResponse
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, "jwt-token-123", got.AccessToken)
				assert.Equal(t, "bearer", got.TokenType)
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
