package repository

import (
	"context"
	"fmt"

	"github.com/continental-academy/academy-api/internal/models"
)

// CreateResult сохраняет новый результат ученика.
func (s *Storage) CreateResult(ctx context.Context, r *models.Result) error {
	const op = "storage.CreateResult"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO results (id, image_url, caption, sort_order, created_at)
			  VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.DB.ExecContext(ctx, query,
		r.ID, r.ImageURL, r.Caption, r.Order, r.CreatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListResults возвращает результаты учеников по возрастанию порядка.
func (s *Storage) ListResults(ctx context.Context) ([]*models.Result, error) {
	const op = "storage.ListResults"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, image_url, caption, sort_order, created_at
			  FROM results
			  ORDER BY sort_order ASC, created_at ASC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Result
	for rows.Next() {
		var r models.Result
		if err = rows.Scan(&r.ID, &r.ImageURL, &r.Caption, &r.Order, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteResult удаляет результат и возвращает количество удалённых строк.
func (s *Storage) DeleteResult(ctx context.Context, id string) (int, error) {
	const op = "storage.DeleteResult"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM results WHERE id = $1`, id)
	if err != nil {
		return 0, mapRowError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
