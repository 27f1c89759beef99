package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/continental-academy/academy-api/internal/models"
)

// CreateCourse сохраняет новый курс.
func (s *Storage) CreateCourse(ctx context.Context, c *models.Course) error {
	const op = "storage.CreateCourse"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO courses (id, title, description, program_id, thumbnail_url,
			      duration_hours, sort_order, is_active, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := s.DB.ExecContext(ctx, query,
		c.ID, c.Title, c.Description, nullableID(c.ProgramID), c.ThumbnailURL,
		c.DurationHours, c.Order, c.IsActive, c.CreatedAt); err != nil {
		return mapRowError(op, err)
	}
	return nil
}

// GetCourse возвращает курс по его ID без уроков.
func (s *Storage) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	const op = "storage.GetCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, program_id, thumbnail_url,
			      duration_hours, sort_order, is_active, created_at
			  FROM courses
			  WHERE id = $1`
	c := &models.Course{}
	var programID sql.NullString
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &programID, &c.ThumbnailURL,
		&c.DurationHours, &c.Order, &c.IsActive, &c.CreatedAt); err != nil {
		return nil, mapRowError(op, err)
	}
	if programID.Valid {
		c.ProgramID = programID.String
	}
	return c, nil
}

// ListCourses возвращает курсы по возрастанию порядка с количеством уроков.
// Непустой programID фильтрует по программе, onlyActive скрывает неактивные.
func (s *Storage) ListCourses(ctx context.Context, programID string, onlyActive bool) ([]*models.Course, error) {
	const op = "storage.ListCourses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.title, c.description, c.program_id, c.thumbnail_url,
			      c.duration_hours, c.sort_order, c.is_active, c.created_at,
			      COUNT(l.id) AS lesson_count
			  FROM courses c
			  LEFT JOIN lessons l ON l.course_id = c.id
			  WHERE (NULLIF($1, '') IS NULL OR c.program_id = NULLIF($1, '')::uuid)
			    AND ($2 = false OR c.is_active = true)
			  GROUP BY c.id
			  ORDER BY c.sort_order ASC, c.created_at ASC`
	rows, err := s.DB.QueryContext(ctx, query, programID, onlyActive)
	if err != nil {
		return nil, mapRowError(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Course
	for rows.Next() {
		var c models.Course
		var pid sql.NullString
		if err = rows.Scan(&c.ID, &c.Title, &c.Description, &pid, &c.ThumbnailURL,
			&c.DurationHours, &c.Order, &c.IsActive, &c.CreatedAt, &c.LessonCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if pid.Valid {
			c.ProgramID = pid.String
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListCoursesAdmin возвращает все курсы с количеством уроков и именем программы.
func (s *Storage) ListCoursesAdmin(ctx context.Context) ([]*models.Course, error) {
	const op = "storage.ListCoursesAdmin"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.title, c.description, c.program_id, c.thumbnail_url,
			      c.duration_hours, c.sort_order, c.is_active, c.created_at,
			      COUNT(l.id) AS lesson_count,
			      COALESCE(p.name, '') AS program_name
			  FROM courses c
			  LEFT JOIN lessons l ON l.course_id = c.id
			  LEFT JOIN programs p ON p.id = c.program_id
			  GROUP BY c.id, p.name
			  ORDER BY c.sort_order ASC, c.created_at ASC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Course
	for rows.Next() {
		var c models.Course
		var pid sql.NullString
		if err = rows.Scan(&c.ID, &c.Title, &c.Description, &pid, &c.ThumbnailURL,
			&c.DurationHours, &c.Order, &c.IsActive, &c.CreatedAt,
			&c.LessonCount, &c.ProgramName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if pid.Valid {
			c.ProgramID = pid.String
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAccessibleCourses возвращает объединение курсов с прямым доступом
// и курсов программ, на которые пользователь подписан, без дубликатов,
// по возрастанию порядка.
func (s *Storage) ListAccessibleCourses(ctx context.Context, userID string) ([]*models.Course, error) {
	const op = "storage.ListAccessibleCourses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.title, c.description, c.program_id, c.thumbnail_url,
			      c.duration_hours, c.sort_order, c.is_active, c.created_at,
			      COUNT(l.id) AS lesson_count
			  FROM courses c
			  LEFT JOIN lessons l ON l.course_id = c.id
			  WHERE c.id IN (
			          SELECT course_id FROM user_course_grants WHERE user_id = $1
			      )
			     OR c.program_id IN (
			          SELECT program_id FROM user_subscriptions WHERE user_id = $1
			      )
			  GROUP BY c.id
			  ORDER BY c.sort_order ASC, c.created_at ASC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Course
	for rows.Next() {
		var c models.Course
		var pid sql.NullString
		if err = rows.Scan(&c.ID, &c.Title, &c.Description, &pid, &c.ThumbnailURL,
			&c.DurationHours, &c.Order, &c.IsActive, &c.CreatedAt, &c.LessonCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if pid.Valid {
			c.ProgramID = pid.String
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateCourse обновляет курс и возвращает количество изменённых строк.
func (s *Storage) UpdateCourse(ctx context.Context, c *models.Course) (int, error) {
	const op = "storage.UpdateCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE courses
			  SET title = $1, description = $2, program_id = $3, thumbnail_url = $4,
			      duration_hours = $5, sort_order = $6, is_active = $7
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		c.Title, c.Description, nullableID(c.ProgramID), c.ThumbnailURL,
		c.DurationHours, c.Order, c.IsActive, c.ID)
	if err != nil {
		return 0, mapRowError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteCourse удаляет курс и возвращает количество удалённых строк.
// Уроки курса и прямые доступы к нему удаляются каскадно.
func (s *Storage) DeleteCourse(ctx context.Context, id string) (int, error) {
	const op = "storage.DeleteCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return 0, mapRowError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// nullableID превращает пустую строку в NULL для необязательных ссылок.
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
