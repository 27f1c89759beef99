package repository

import (
	"context"
	"fmt"

	"github.com/continental-academy/academy-api/internal/models"
)

// CreateLesson сохраняет новый урок.
func (s *Storage) CreateLesson(ctx context.Context, l *models.Lesson) error {
	const op = "storage.CreateLesson"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO lessons (id, title, description, course_id, video_url,
			      mux_playback_id, duration_minutes, sort_order, is_free, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := s.DB.ExecContext(ctx, query,
		l.ID, l.Title, l.Description, l.CourseID, l.VideoURL,
		l.MuxPlaybackID, l.DurationMinutes, l.Order, l.IsFree, l.CreatedAt); err != nil {
		return mapRowError(op, err)
	}
	return nil
}

// GetLesson возвращает урок по его ID.
func (s *Storage) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	const op = "storage.GetLesson"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, course_id, video_url, mux_playback_id,
			      duration_minutes, sort_order, is_free, created_at
			  FROM lessons
			  WHERE id = $1`
	l := &models.Lesson{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&l.ID, &l.Title, &l.Description, &l.CourseID, &l.VideoURL,
		&l.MuxPlaybackID, &l.DurationMinutes, &l.Order, &l.IsFree, &l.CreatedAt); err != nil {
		return nil, mapRowError(op, err)
	}
	return l, nil
}

// ListLessonsByCourse возвращает уроки курса по возрастанию порядка.
func (s *Storage) ListLessonsByCourse(ctx context.Context, courseID string) ([]*models.Lesson, error) {
	const op = "storage.ListLessonsByCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, course_id, video_url, mux_playback_id,
			      duration_minutes, sort_order, is_free, created_at
			  FROM lessons
			  WHERE course_id = $1
			  ORDER BY sort_order ASC, created_at ASC`
	rows, err := s.DB.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Lesson
	for rows.Next() {
		var l models.Lesson
		if err = rows.Scan(&l.ID, &l.Title, &l.Description, &l.CourseID, &l.VideoURL,
			&l.MuxPlaybackID, &l.DurationMinutes, &l.Order, &l.IsFree, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MaxLessonOrder возвращает максимальный порядок урока в курсе.
// Для курса без уроков возвращает -1.
func (s *Storage) MaxLessonOrder(ctx context.Context, courseID string) (int, error) {
	const op = "storage.MaxLessonOrder"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var maxOrder int
	query := `SELECT COALESCE(MAX(sort_order), -1) FROM lessons WHERE course_id = $1`
	if err := s.DB.QueryRowContext(ctx, query, courseID).Scan(&maxOrder); err != nil {
		return 0, mapRowError(op, err)
	}
	return maxOrder, nil
}

// UpdateLesson обновляет урок и возвращает количество изменённых строк.
func (s *Storage) UpdateLesson(ctx context.Context, l *models.Lesson) (int, error) {
	const op = "storage.UpdateLesson"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE lessons
			  SET title = $1, description = $2, course_id = $3, video_url = $4,
			      mux_playback_id = $5, duration_minutes = $6, sort_order = $7, is_free = $8
			  WHERE id = $9`
	result, err := s.DB.ExecContext(ctx, query,
		l.Title, l.Description, l.CourseID, l.VideoURL,
		l.MuxPlaybackID, l.DurationMinutes, l.Order, l.IsFree, l.ID)
	if err != nil {
		return 0, mapRowError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteLesson удаляет урок и возвращает количество удалённых строк.
func (s *Storage) DeleteLesson(ctx context.Context, id string) (int, error) {
	const op = "storage.DeleteLesson"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return 0, mapRowError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ReorderLessons применяет новый порядок уроков одной транзакцией.
func (s *Storage) ReorderLessons(ctx context.Context, orders []models.LessonOrder) error {
	const op = "storage.ReorderLessons"
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

	for _, item := range orders {
		if _, err = tx.ExecContext(ctx,
			`UPDATE lessons SET sort_order = $1 WHERE id = $2`, item.Order, item.ID); err != nil {
			return mapRowError(op, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
