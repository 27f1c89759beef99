package repository

import (
	"context"
	"fmt"

	"github.com/continental-academy/academy-api/internal/models"
)

// CreateUser сохраняет нового пользователя. Возвращает models.ErrConflict,
// если email уже занят (сравнение без учета регистра).
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (id, name, email, password_hash, role, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.DB.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, models.ErrConflict)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUserByEmail возвращает пользователя по email без учета регистра,
// вместе с наборами его подписок и прямых доступов к курсам.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, password_hash, role, created_at
			  FROM users
			  WHERE LOWER(email) = LOWER($1)`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		return nil, mapRowError(op, err)
	}
	if err := s.loadEntitlements(ctx, u); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его ID вместе с наборами прав доступа.
func (s *Storage) GetUser(ctx context.Context, userID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, password_hash, role, created_at
			  FROM users
			  WHERE id = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		return nil, mapRowError(op, err)
	}
	if err := s.loadEntitlements(ctx, u); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// loadEntitlements заполняет у пользователя наборы подписок на программы
// и прямых доступов к курсам.
func (s *Storage) loadEntitlements(ctx context.Context, u *models.User) error {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT program_id FROM user_subscriptions WHERE user_id = $1`, u.ID)
	if err != nil {
		return err
	}
	u.Subscriptions = []string{}
	for rows.Next() {
		var programID string
		if err = rows.Scan(&programID); err != nil {
			_ = rows.Close()
			return err
		}
		u.Subscriptions = append(u.Subscriptions, programID)
	}
	if err = rows.Err(); err != nil {
		return err
	}
	if err = rows.Close(); err != nil {
		return err
	}

	rows, err = s.DB.QueryContext(ctx,
		`SELECT course_id FROM user_course_grants WHERE user_id = $1`, u.ID)
	if err != nil {
		return err
	}
	u.Courses = []string{}
	for rows.Next() {
		var courseID string
		if err = rows.Scan(&courseID); err != nil {
			_ = rows.Close()
			return err
		}
		u.Courses = append(u.Courses, courseID)
	}
	if err = rows.Err(); err != nil {
		return err
	}
	return rows.Close()
}

// ListUsers возвращает всех пользователей с наборами их прав доступа.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, password_hash, role, created_at
			  FROM users
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	byID := make(map[string]*models.User)
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		u.Subscriptions = []string{}
		u.Courses = []string{}
		result = append(result, &u)
		byID[u.ID] = &u
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	subRows, err := s.DB.QueryContext(ctx, `SELECT user_id, program_id FROM user_subscriptions`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for subRows.Next() {
		var userID, programID string
		if err = subRows.Scan(&userID, &programID); err != nil {
			_ = subRows.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if u, ok := byID[userID]; ok {
			u.Subscriptions = append(u.Subscriptions, programID)
		}
	}
	if err = subRows.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	grantRows, err := s.DB.QueryContext(ctx, `SELECT user_id, course_id FROM user_course_grants`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for grantRows.Next() {
		var userID, courseID string
		if err = grantRows.Scan(&userID, &courseID); err != nil {
			_ = grantRows.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if u, ok := byID[userID]; ok {
			u.Courses = append(u.Courses, courseID)
		}
	}
	if err = grantRows.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountUsers возвращает общее количество пользователей.
func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	const op = "storage.CountUsers"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountSubscribedUsers возвращает количество пользователей хотя бы с одной подпиской.
func (s *Storage) CountSubscribedUsers(ctx context.Context) (int, error) {
	const op = "storage.CountSubscribedUsers"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(DISTINCT user_id) FROM user_subscriptions`
	if err := s.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// UpdateUserRole меняет роль пользователя и возвращает количество изменённых строк.
func (s *Storage) UpdateUserRole(ctx context.Context, userID, role string) (int, error) {
	const op = "storage.UpdateUserRole"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET role = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, role, userID)
	if err != nil {
		return 0, mapRowError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// AddUserSubscription добавляет подписку пользователя на программу.
// Повторное добавление той же подписки ничего не меняет.
func (s *Storage) AddUserSubscription(ctx context.Context, userID, programID string) error {
	const op = "storage.AddUserSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_subscriptions (user_id, program_id)
			  VALUES ($1, $2)
			  ON CONFLICT DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, userID, programID); err != nil {
		return mapRowError(op, err)
	}
	return nil
}

// AddUserCourseGrant выдает пользователю прямой доступ к курсу.
// Повторная выдача того же доступа ничего не меняет.
func (s *Storage) AddUserCourseGrant(ctx context.Context, userID, courseID string) error {
	const op = "storage.AddUserCourseGrant"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_course_grants (user_id, course_id)
			  VALUES ($1, $2)
			  ON CONFLICT DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, userID, courseID); err != nil {
		return mapRowError(op, err)
	}
	return nil
}

// RemoveUserCourseGrant отзывает прямой доступ пользователя к курсу.
func (s *Storage) RemoveUserCourseGrant(ctx context.Context, userID, courseID string) error {
	const op = "storage.RemoveUserCourseGrant"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM user_course_grants WHERE user_id = $1 AND course_id = $2`
	if _, err := s.DB.ExecContext(ctx, query, userID, courseID); err != nil {
		return mapRowError(op, err)
	}
	return nil
}

// ReplaceUserCourseGrants заменяет набор прямых доступов пользователя к курсам.
func (s *Storage) ReplaceUserCourseGrants(ctx context.Context, userID string, courseIDs []string) error {
	const op = "storage.ReplaceUserCourseGrants"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM user_course_grants WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, courseID := range courseIDs {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO user_course_grants (user_id, course_id)
			 VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`, userID, courseID); err != nil {
			return mapRowError(op, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ReplaceUserSubscriptions заменяет набор подписок пользователя на программы.
func (s *Storage) ReplaceUserSubscriptions(ctx context.Context, userID string, programIDs []string) error {
	const op = "storage.ReplaceUserSubscriptions"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM user_subscriptions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, programID := range programIDs {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO user_subscriptions (user_id, program_id)
			 VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`, userID, programID); err != nil {
			return mapRowError(op, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
