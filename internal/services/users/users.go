// Package users содержит административное управление пользователями:
// список, смена роли и прямое редактирование наборов прав доступа.
package users

import (
	"context"
	"fmt"

	"github.com/continental-academy/academy-api/internal/models"
)

// Repository определяет методы хранилища пользователей и их прав.
type Repository interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateUserRole(ctx context.Context, userID, role string) (int, error)
	AddUserCourseGrant(ctx context.Context, userID, courseID string) error
	RemoveUserCourseGrant(ctx context.Context, userID, courseID string) error
	ReplaceUserCourseGrants(ctx context.Context, userID string, courseIDs []string) error
	ReplaceUserSubscriptions(ctx context.Context, userID string, programIDs []string) error
}

// Service реализует административные операции над пользователями.
type Service struct {
	repo Repository
}

// New создает новый экземпляр Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List возвращает всех пользователей с наборами их прав доступа.
func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	const op = "users.List"

	result, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Get возвращает пользователя по ID с наборами прав доступа.
func (s *Service) Get(ctx context.Context, userID string) (*models.User, error) {
	const op = "users.Get"

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// SetRole меняет роль пользователя. Допустимы только user и admin.
func (s *Service) SetRole(ctx context.Context, userID, role string) error {
	const op = "users.SetRole"

	if role != models.RoleUser && role != models.RoleAdmin {
		return fmt.Errorf("%s: unknown role %q: %w", op, role, models.ErrConflict)
	}
	updated, err := s.repo.UpdateUserRole(ctx, userID, role)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if updated == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// AddCourse выдает пользователю прямой доступ к курсу. Повторная
// выдача того же доступа ничего не меняет.
func (s *Service) AddCourse(ctx context.Context, userID, courseID string) error {
	const op = "users.AddCourse"

	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.AddUserCourseGrant(ctx, userID, courseID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveCourse отзывает прямой доступ пользователя к курсу.
func (s *Service) RemoveCourse(ctx context.Context, userID, courseID string) error {
	const op = "users.RemoveCourse"

	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.RemoveUserCourseGrant(ctx, userID, courseID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ReplaceCourses заменяет набор прямых доступов пользователя к курсам.
func (s *Service) ReplaceCourses(ctx context.Context, userID string, courseIDs []string) error {
	const op = "users.ReplaceCourses"

	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.ReplaceUserCourseGrants(ctx, userID, courseIDs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ReplaceSubscriptions заменяет набор подписок пользователя на программы.
func (s *Service) ReplaceSubscriptions(ctx context.Context, userID string, programIDs []string) error {
	const op = "users.ReplaceSubscriptions"

	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.ReplaceUserSubscriptions(ctx, userID, programIDs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
