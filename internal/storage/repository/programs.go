package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/continental-academy/academy-api/internal/models"
)

// CreateProgram сохраняет новую программу.
func (s *Storage) CreateProgram(ctx context.Context, p *models.Program) error {
	const op = "storage.CreateProgram"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := json.Marshal(p.Features)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	query := `INSERT INTO programs (id, name, description, price, currency,
			      thumbnail_url, features, is_active, stripe_price_id, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err = s.DB.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Currency,
		p.ThumbnailURL, features, p.IsActive, p.StripePriceID, p.CreatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetProgram возвращает программу по её ID.
func (s *Storage) GetProgram(ctx context.Context, id string) (*models.Program, error) {
	const op = "storage.GetProgram"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, price, currency, thumbnail_url,
			      features, is_active, stripe_price_id, created_at
			  FROM programs
			  WHERE id = $1`
	p := &models.Program{}
	var features []byte
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Currency,
		&p.ThumbnailURL, &features, &p.IsActive, &p.StripePriceID, &p.CreatedAt); err != nil {
		return nil, mapRowError(op, err)
	}
	if err := json.Unmarshal(features, &p.Features); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListPrograms возвращает программы, новые первыми.
// При onlyActive = true скрытые программы отфильтровываются.
func (s *Storage) ListPrograms(ctx context.Context, onlyActive bool) ([]*models.Program, error) {
	const op = "storage.ListPrograms"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, price, currency, thumbnail_url,
			      features, is_active, stripe_price_id, created_at
			  FROM programs
			  WHERE ($1 = false OR is_active = true)
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Program
	for rows.Next() {
		var p models.Program
		var features []byte
		if err = rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Currency,
			&p.ThumbnailURL, &features, &p.IsActive, &p.StripePriceID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = json.Unmarshal(features, &p.Features); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateProgram обновляет программу и возвращает количество изменённых строк.
func (s *Storage) UpdateProgram(ctx context.Context, p *models.Program) (int, error) {
	const op = "storage.UpdateProgram"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := json.Marshal(p.Features)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	query := `UPDATE programs
			  SET name = $1, description = $2, price = $3, currency = $4,
			      thumbnail_url = $5, features = $6, is_active = $7, stripe_price_id = $8
			  WHERE id = $9`
	result, err := s.DB.ExecContext(ctx, query,
		p.Name, p.Description, p.Price, p.Currency,
		p.ThumbnailURL, features, p.IsActive, p.StripePriceID, p.ID)
	if err != nil {
		return 0, mapRowError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteProgram удаляет программу и возвращает количество удалённых строк.
// Ссылки курсов на программу обнуляются, подписки на неё удаляются каскадно.
func (s *Storage) DeleteProgram(ctx context.Context, id string) (int, error) {
	const op = "storage.DeleteProgram"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return 0, mapRowError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
