package view

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/continental-academy/academy-api/internal/http/middlewarectx"
	"github.com/continental-academy/academy-api/internal/models"
)

// Мок сервиса прав доступа
type EntitlementServiceMock struct {
	mock.Mock
}

func (m *EntitlementServiceMock) GetCourseWithLessons(ctx context.Context, user *models.User, courseID string) (*models.Course, error) {
	args := m.Called(ctx, user, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newRequest(courseID string, user *models.User) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/courses/"+courseID, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", courseID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if user != nil {
		ctx = context.WithValue(ctx, middlewarectx.User, user)
	}
	return req.WithContext(ctx)
}

func TestViewHandler_ServeHTTP(t *testing.T) {
	student := &models.User{ID: "u1", Role: models.RoleUser, Courses: []string{"c1"}}

	tests := []struct {
		name           string
		courseID       string
		user           *models.User
		setupMocks     func(s *EntitlementServiceMock)
		wantStatusCode int
		wantDetail     string
	}{
		{
			name:     "accessible course",
			courseID: "c1",
			user:     student,
			setupMocks: func(s *EntitlementServiceMock) {
				s.On("GetCourseWithLessons", mock.Anything, student, "c1").
					Return(&models.Course{ID: "c1", LessonCount: 2}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "no user in context",
			courseID:       "c1",
			user:           nil,
			setupMocks:     func(_ *EntitlementServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantDetail:     "unauthorized",
		},
		{
			name:     "forbidden course",
			courseID: "c9",
			user:     student,
			setupMocks: func(s *EntitlementServiceMock) {
				s.On("GetCourseWithLessons", mock.Anything, student, "c9").
					Return(nil, models.ErrForbidden).Once()
			},
			wantStatusCode: http.StatusForbidden,
			wantDetail:     "no access to this course",
		},
		{
			name:     "unknown course",
			courseID: "missing",
			user:     student,
			setupMocks: func(s *EntitlementServiceMock) {
				s.On("GetCourseWithLessons", mock.Anything, student, "missing").
					Return(nil, models.ErrNotFound).Once()
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(EntitlementServiceMock)
			tt.setupMocks(serviceMock)

			handler := New(newNoopLogger(), serviceMock)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, newRequest(tt.courseID, tt.user))

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
