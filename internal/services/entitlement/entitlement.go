// Package entitlement решает, какие курсы и уроки доступны пользователю.
//
// Доступ к курсу есть у администратора, у пользователя с прямым
// назначением курса и у подписчика программы, владеющей курсом.
// Урок доступен, если он бесплатный или доступен его курс.
package entitlement

import (
	"context"
	"fmt"
	"slices"

	"github.com/continental-academy/academy-api/internal/models"
)

// CourseRepository определяет методы хранилища курсов и уроков,
// необходимые для проверки прав доступа.
type CourseRepository interface {
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	ListLessonsByCourse(ctx context.Context, courseID string) ([]*models.Lesson, error)
	ListAccessibleCourses(ctx context.Context, userID string) ([]*models.Course, error)
	GetLesson(ctx context.Context, id string) (*models.Lesson, error)
}

// Service реализует проверку прав доступа к контенту.
type Service struct {
	repo CourseRepository
}

// New создает новый экземпляр Service.
func New(repo CourseRepository) *Service {
	return &Service{repo: repo}
}

// CanViewCourse сообщает, доступен ли курс пользователю.
func (s *Service) CanViewCourse(user *models.User, course *models.Course) bool {
	if user.IsAdmin() {
		return true
	}
	if slices.Contains(user.Courses, course.ID) {
		return true
	}
	return course.ProgramID != "" && slices.Contains(user.Subscriptions, course.ProgramID)
}

// GetCourseWithLessons возвращает курс вместе с его уроками по
// возрастанию порядка. Неизвестный курс дает models.ErrNotFound,
// недоступный — models.ErrForbidden.
func (s *Service) GetCourseWithLessons(ctx context.Context, user *models.User, courseID string) (*models.Course, error) {
	const op = "entitlement.GetCourseWithLessons"

	course, err := s.repo.GetCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !s.CanViewCourse(user, course) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrForbidden)
	}

	lessons, err := s.repo.ListLessonsByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	course.Lessons = lessons
	course.LessonCount = len(lessons)
	return course, nil
}

// ListAccessibleCourses возвращает объединение курсов с прямым доступом
// и курсов программ с подпиской, без дубликатов. Администратор получает
// результат по тем же правилам, что и обычный пользователь.
func (s *Service) ListAccessibleCourses(ctx context.Context, user *models.User) ([]*models.Course, error) {
	const op = "entitlement.ListAccessibleCourses"

	courses, err := s.repo.ListAccessibleCourses(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return courses, nil
}

// GetLesson возвращает урок, если он бесплатный или пользователю
// доступен его курс.
func (s *Service) GetLesson(ctx context.Context, user *models.User, lessonID string) (*models.Lesson, error) {
	const op = "entitlement.GetLesson"

	lesson, err := s.repo.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if lesson.IsFree {
		return lesson, nil
	}

	course, err := s.repo.GetCourse(ctx, lesson.CourseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !s.CanViewCourse(user, course) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrForbidden)
	}
	return lesson, nil
}
