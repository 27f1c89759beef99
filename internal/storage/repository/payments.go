package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/continental-academy/academy-api/internal/models"
)

// CreatePayment вставляет новую платежную запись и возвращает её ID.
func (s *Storage) CreatePayment(ctx context.Context, p *models.Payment) (int, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (session_id, user_id, program_id, product_id,
			      kind, amount, currency, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		p.SessionID, p.UserID, nullableID(p.ProgramID), nullableID(p.ProductID),
		p.Kind, p.Amount, p.Currency, p.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPaymentBySession возвращает платежную запись по ID сессии оплаты.
func (s *Storage) GetPaymentBySession(ctx context.Context, sessionID string) (*models.Payment, error) {
	const op = "storage.GetPaymentBySession"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, session_id, user_id, program_id, product_id, kind,
			      amount, currency, status, created_at, paid_at
			  FROM payments
			  WHERE session_id = $1`
	p := &models.Payment{}
	var programID, productID sql.NullString
	var paidAt sql.NullTime
	row := s.DB.QueryRowContext(ctx, query, sessionID)
	if err := row.Scan(&p.ID, &p.SessionID, &p.UserID, &programID, &productID, &p.Kind,
		&p.Amount, &p.Currency, &p.Status, &p.CreatedAt, &paidAt); err != nil {
		return nil, mapRowError(op, err)
	}
	if programID.Valid {
		p.ProgramID = programID.String
	}
	if productID.Valid {
		p.ProductID = productID.String
	}
	if paidAt.Valid {
		p.PaidAt = &paidAt.Time
	}
	return p, nil
}

// MarkPaymentPaid переводит платеж из pending в paid. Возвращает false,
// если платеж уже был оплачен или запись отсутствует.
func (s *Storage) MarkPaymentPaid(ctx context.Context, sessionID string) (bool, error) {
	const op = "storage.MarkPaymentPaid"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments
			  SET status = $1, paid_at = NOW()
			  WHERE session_id = $2 AND status <> $1`
	result, err := s.DB.ExecContext(ctx, query, models.PaymentStatusPaid, sessionID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}
