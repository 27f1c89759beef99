package entitlement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/continental-academy/academy-api/internal/models"
	"github.com/continental-academy/academy-api/internal/services/entitlement"
)

// Мок для CourseRepository
type CourseRepoMock struct {
	mock.Mock
}

func (m *CourseRepoMock) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *CourseRepoMock) ListLessonsByCourse(ctx context.Context, courseID string) ([]*models.Lesson, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lesson), args.Error(1)
}

func (m *CourseRepoMock) ListAccessibleCourses(ctx context.Context, userID string) ([]*models.Course, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Course), args.Error(1)
}

func (m *CourseRepoMock) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func TestService_CanViewCourse(t *testing.T) {
	directCourse := &models.Course{ID: "c1"}
	programCourse := &models.Course{ID: "c2", ProgramID: "p1"}
	lockedCourse := &models.Course{ID: "c3", ProgramID: "p2"}
	orphanCourse := &models.Course{ID: "c4"}

	student := &models.User{
		ID:            "u1",
		Role:          models.RoleUser,
		Courses:       []string{"c1"},
		Subscriptions: []string{"p1"},
	}
	admin := &models.User{ID: "u2", Role: models.RoleAdmin}

	svc := entitlement.New(new(CourseRepoMock))

	tests := []struct {
		name   string
		user   *models.User
		course *models.Course
		want   bool
	}{
		{"direct grant", student, directCourse, true},
		{"program subscription", student, programCourse, true},
		{"no access to other program", student, lockedCourse, false},
		{"orphan course without grant", student, orphanCourse, false},
		{"admin sees everything", admin, lockedCourse, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.CanViewCourse(tt.user, tt.course))
		})
	}
}

func TestService_GetCourseWithLessons(t *testing.T) {
	student := &models.User{ID: "u1", Role: models.RoleUser, Courses: []string{"c1"}}

	tests := []struct {
		name       string
		courseID   string
		setupMocks func(r *CourseRepoMock)
		wantErr    error
		wantCount  int
	}{
		{
			name:     "accessible course with lessons",
			courseID: "c1",
			setupMocks: func(r *CourseRepoMock) {
				r.On("GetCourse", mock.Anything, "c1").Return(&models.Course{ID: "c1"}, nil).Once()
				r.On("ListLessonsByCourse", mock.Anything, "c1").Return([]*models.Lesson{
					{ID: "l1", CourseID: "c1", Order: 0},
					{ID: "l2", CourseID: "c1", Order: 1},
				}, nil).Once()
			},
			wantCount: 2,
		},
		{
			name:     "unknown course",
			courseID: "missing",
			setupMocks: func(r *CourseRepoMock) {
				r.On("GetCourse", mock.Anything, "missing").Return(nil, models.ErrNotFound).Once()
			},
			wantErr: models.ErrNotFound,
		},
		{
			name:     "forbidden course",
			courseID: "c9",
			setupMocks: func(r *CourseRepoMock) {
				r.On("GetCourse", mock.Anything, "c9").Return(&models.Course{ID: "c9"}, nil).Once()
			},
			wantErr: models.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(CourseRepoMock)
			svc := entitlement.New(repo)

			tt.setupMocks(repo)

			course, err := svc.GetCourseWithLessons(context.Background(), student, tt.courseID)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantCount, course.LessonCount)
				assert.Len(t, course.Lessons, tt.wantCount)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_GetLesson(t *testing.T) {
	student := &models.User{ID: "u1", Role: models.RoleUser, Subscriptions: []string{"p1"}}

	tests := []struct {
		name       string
		lessonID   string
		setupMocks func(r *CourseRepoMock)
		wantErr    error
	}{
		{
			name:     "free lesson skips course check",
			lessonID: "l1",
			setupMocks: func(r *CourseRepoMock) {
				r.On("GetLesson", mock.Anything, "l1").
					Return(&models.Lesson{ID: "l1", CourseID: "c1", IsFree: true}, nil).Once()
			},
		},
		{
			name:     "paid lesson in subscribed program",
			lessonID: "l2",
			setupMocks: func(r *CourseRepoMock) {
				r.On("GetLesson", mock.Anything, "l2").
					Return(&models.Lesson{ID: "l2", CourseID: "c1"}, nil).Once()
				r.On("GetCourse", mock.Anything, "c1").
					Return(&models.Course{ID: "c1", ProgramID: "p1"}, nil).Once()
			},
		},
		{
			name:     "paid lesson without access",
			lessonID: "l3",
			setupMocks: func(r *CourseRepoMock) {
				r.On("GetLesson", mock.Anything, "l3").
					Return(&models.Lesson{ID: "l3", CourseID: "c2"}, nil).Once()
				r.On("GetCourse", mock.Anything, "c2").
					Return(&models.Course{ID: "c2", ProgramID: "p9"}, nil).Once()
			},
			wantErr: models.ErrForbidden,
		},
		{
			name:     "unknown lesson",
			lessonID: "missing",
			setupMocks: func(r *CourseRepoMock) {
				r.On("GetLesson", mock.Anything, "missing").Return(nil, models.ErrNotFound).Once()
			},
			wantErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(CourseRepoMock)
			svc := entitlement.New(repo)

			tt.setupMocks(repo)

			lesson, err := svc.GetLesson(context.Background(), student, tt.lessonID)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.lessonID, lesson.ID)
			}

			repo.AssertExpectations(t)
		})
	}
}
