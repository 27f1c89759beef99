package middlewarectx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/continental-academy/academy-api/internal/models"
)

// Мок сервиса аутентификации
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Authenticate(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	testUser := &models.User{ID: "u1", Role: models.RoleUser}

	tests := []struct {
		name           string
		authHeader     string
		setupMocks     func(s *AuthServiceMock)
		wantStatusCode int
		wantUser       bool
	}{
		{
			name:       "valid token",
			authHeader: "Bearer valid-token",
			setupMocks: func(s *AuthServiceMock) {
				s.On("Authenticate", mock.Anything, "valid-token").Return(testUser, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantUser:       true,
		},
		{
			name:           "missing header",
			authHeader:     "",
			setupMocks:     func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			setupMocks:     func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "tampered token",
			authHeader: "Bearer tampered-token",
			setupMocks: func(s *AuthServiceMock) {
				s.On("Authenticate", mock.Anything, "tampered-token").
					Return(nil, models.ErrInvalidCredentials).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(AuthServiceMock)
			tt.setupMocks(serviceMock)

			var gotUser *models.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			JWTMiddleware(serviceMock, newNoopLogger())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			if tt.wantUser {
				assert.Equal(t, testUser, gotUser)
			} else {
				assert.Nil(t, gotUser)
			}

			serviceMock.AssertExpectations(t)
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := AdminMiddleware(newNoopLogger())(next)

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		ctx := context.WithValue(req.Context(), User, &models.User{ID: "u1", Role: models.RoleAdmin})
		rec := httptest.NewRecorder()

		mw.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("regular user rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		ctx := context.WithValue(req.Context(), User, &models.User{ID: "u2", Role: models.RoleUser})
		rec := httptest.NewRecorder()

		mw.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no user rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		rec := httptest.NewRecorder()

		mw.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
