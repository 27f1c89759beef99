package repository

import (
	"context"
	"fmt"

	"github.com/continental-academy/academy-api/internal/models"
)

// CreateFAQ сохраняет новый вопрос-ответ.
func (s *Storage) CreateFAQ(ctx context.Context, f *models.FAQ) error {
	const op = "storage.CreateFAQ"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO faqs (id, question, answer, sort_order, created_at)
			  VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.DB.ExecContext(ctx, query,
		f.ID, f.Question, f.Answer, f.Order, f.CreatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListFAQs возвращает вопросы-ответы по возрастанию порядка.
func (s *Storage) ListFAQs(ctx context.Context) ([]*models.FAQ, error) {
	const op = "storage.ListFAQs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, question, answer, sort_order, created_at
			  FROM faqs
			  ORDER BY sort_order ASC, created_at ASC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.FAQ
	for rows.Next() {
		var f models.FAQ
		if err = rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Order, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateFAQ обновляет вопрос-ответ и возвращает количество изменённых строк.
func (s *Storage) UpdateFAQ(ctx context.Context, f *models.FAQ) (int, error) {
	const op = "storage.UpdateFAQ"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE faqs SET question = $1, answer = $2, sort_order = $3 WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, f.Question, f.Answer, f.Order, f.ID)
	if err != nil {
		return 0, mapRowError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteFAQ удаляет вопрос-ответ и возвращает количество удалённых строк.
func (s *Storage) DeleteFAQ(ctx context.Context, id string) (int, error) {
	const op = "storage.DeleteFAQ"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return 0, mapRowError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
