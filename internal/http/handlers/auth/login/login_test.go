package login

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

// Мок сервиса входа
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
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

func TestLoginHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		setupMocks     func(s *AuthServiceMock)
		wantStatusCode int
		wantDetail     string
	}{
		{
			name:        "valid login",
			requestBody: models.LoginRequest{Email: "user1@example.com", Password: "password123"},
			setupMocks: func(s *AuthServiceMock) {
				s.On("Login", mock.Anything, mock.MatchedBy(func(req models.LoginRequest) bool {
					return req.Email == "user1@example.com"
				})).Return(&models.TokenResponse{
					AccessToken: "jwt-token-123",
					TokenType:   "bearer",
					User:        &models.User{ID: "u1"},
				}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			setupMocks:     func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantDetail:     "invalid request body",
		},
		{
			name:        "wrong credentials",
			requestBody: models.LoginRequest{Email: "user1@example.com", Password: "wrongpassword"},
			setupMocks: func(s *AuthServiceMock) {
				s.On("Login", mock.Anything, mock.Anything).
					Return(nil, models.ErrInvalidCredentials).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantDetail:     "invalid credentials",
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

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			if tt.wantDetail != "" {
				var got map[string]any
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, tt.wantDetail, got["detail"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
