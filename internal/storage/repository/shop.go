package repository

import (
	"context"
	"fmt"

	"github.com/continental-academy/academy-api/internal/models"
)

// CreateShopProduct сохраняет новый товар магазина.
func (s *Storage) CreateShopProduct(ctx context.Context, p *models.ShopProduct) error {
	const op = "storage.CreateShopProduct"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO shop_products (id, title, description, category, price,
			      currency, image_url, followers, is_available, stripe_price_id, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err := s.DB.ExecContext(ctx, query,
		p.ID, p.Title, p.Description, p.Category, p.Price,
		p.Currency, p.ImageURL, p.Followers, p.IsAvailable, p.StripePriceID, p.CreatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetShopProduct возвращает товар по его ID.
func (s *Storage) GetShopProduct(ctx context.Context, id string) (*models.ShopProduct, error) {
	const op = "storage.GetShopProduct"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, category, price, currency, image_url,
			      followers, is_available, stripe_price_id, created_at
			  FROM shop_products
			  WHERE id = $1`
	p := &models.ShopProduct{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Price,
		&p.Currency, &p.ImageURL, &p.Followers, &p.IsAvailable,
		&p.StripePriceID, &p.CreatedAt); err != nil {
		return nil, mapRowError(op, err)
	}
	return p, nil
}

// ListShopProducts возвращает товары, новые первыми. Непустая категория
// фильтрует список, onlyAvailable скрывает проданные товары.
func (s *Storage) ListShopProducts(ctx context.Context, category string, onlyAvailable bool) ([]*models.ShopProduct, error) {
	const op = "storage.ListShopProducts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, category, price, currency, image_url,
			      followers, is_available, stripe_price_id, created_at
			  FROM shop_products
			  WHERE ($1 = '' OR category = $1)
			    AND ($2 = false OR is_available = true)
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, category, onlyAvailable)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ShopProduct
	for rows.Next() {
		var p models.ShopProduct
		if err = rows.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Price,
			&p.Currency, &p.ImageURL, &p.Followers, &p.IsAvailable,
			&p.StripePriceID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateShopProduct обновляет товар и возвращает количество изменённых строк.
func (s *Storage) UpdateShopProduct(ctx context.Context, p *models.ShopProduct) (int, error) {
	const op = "storage.UpdateShopProduct"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE shop_products
			  SET title = $1, description = $2, category = $3, price = $4, currency = $5,
			      image_url = $6, followers = $7, is_available = $8, stripe_price_id = $9
			  WHERE id = $10`
	result, err := s.DB.ExecContext(ctx, query,
		p.Title, p.Description, p.Category, p.Price, p.Currency,
		p.ImageURL, p.Followers, p.IsAvailable, p.StripePriceID, p.ID)
	if err != nil {
		return 0, mapRowError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteShopProduct удаляет товар и возвращает количество удалённых строк.
func (s *Storage) DeleteShopProduct(ctx context.Context, id string) (int, error) {
	const op = "storage.DeleteShopProduct"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM shop_products WHERE id = $1`, id)
	if err != nil {
		return 0, mapRowError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// MarkProductUnavailable помечает товар проданным.
func (s *Storage) MarkProductUnavailable(ctx context.Context, id string) error {
	const op = "storage.MarkProductUnavailable"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE shop_products SET is_available = false WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AddProductPurchase фиксирует покупку товара пользователем.
// Повторная фиксация той же покупки ничего не меняет.
func (s *Storage) AddProductPurchase(ctx context.Context, userID, productID string) error {
	const op = "storage.AddProductPurchase"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO product_purchases (user_id, product_id)
			  VALUES ($1, $2)
			  ON CONFLICT DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
