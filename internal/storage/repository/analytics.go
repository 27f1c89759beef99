package repository

import (
	"context"
	"fmt"

	"github.com/continental-academy/academy-api/internal/models"
)

// CreateAnalyticsEvent сохраняет событие фронтенд-аналитики.
func (s *Storage) CreateAnalyticsEvent(ctx context.Context, e *models.AnalyticsEvent) error {
	const op = "storage.CreateAnalyticsEvent"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO analytics_events (event_type, page, user_id, payload)
			  VALUES ($1, $2, $3, $4)`
	payload := []byte(e.Data)
	if len(payload) == 0 {
		payload = []byte("null")
	}
	if _, err := s.DB.ExecContext(ctx, query,
		e.EventType, e.Page, e.UserID, payload); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListRecentAnalyticsEvents возвращает последние события, новые первыми.
func (s *Storage) ListRecentAnalyticsEvents(ctx context.Context, limit int) ([]*models.AnalyticsEvent, error) {
	const op = "storage.ListRecentAnalyticsEvents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, event_type, page, user_id, COALESCE(payload, 'null'), created_at
			  FROM analytics_events
			  ORDER BY created_at DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AnalyticsEvent
	for rows.Next() {
		var e models.AnalyticsEvent
		var payload []byte
		if err = rows.Scan(&e.ID, &e.EventType, &e.Page, &e.UserID, &payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		e.Data = payload
		result = append(result, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
