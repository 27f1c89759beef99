package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/continental-academy/academy-api/internal/models"
)

// ListShopProducts возвращает доступные товары для витрины, новые первыми.
// Непустая категория фильтрует список.
func (s *Service) ListShopProducts(ctx context.Context, category string) ([]*models.ShopProduct, error) {
	const op = "catalog.ListShopProducts"

	products, err := s.repo.ListShopProducts(ctx, category, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

// ListShopProductsAdmin возвращает все товары, включая проданные.
func (s *Service) ListShopProductsAdmin(ctx context.Context) ([]*models.ShopProduct, error) {
	const op = "catalog.ListShopProductsAdmin"

	products, err := s.repo.ListShopProducts(ctx, "", false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

// CreateShopProduct создает товар из запроса админа.
func (s *Service) CreateShopProduct(ctx context.Context, req models.ShopProductRequest) (*models.ShopProduct, error) {
	const op = "catalog.CreateShopProduct"

	product := &models.ShopProduct{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Description:   req.Description,
		Category:      defaultCategory(req.Category),
		Price:         req.Price,
		Currency:      defaultCurrency(req.Currency),
		ImageURL:      req.ImageURL,
		Followers:     req.Followers,
		IsAvailable:   boolOrDefault(req.IsAvailable, true),
		StripePriceID: req.StripePriceID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.CreateShopProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

// UpdateShopProduct обновляет товар по ID.
func (s *Service) UpdateShopProduct(ctx context.Context, id string, req models.ShopProductRequest) (*models.ShopProduct, error) {
	const op = "catalog.UpdateShopProduct"

	product, err := s.repo.GetShopProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	product.Title = req.Title
	product.Description = req.Description
	product.Category = defaultCategory(req.Category)
	product.Price = req.Price
	product.Currency = defaultCurrency(req.Currency)
	product.ImageURL = req.ImageURL
	product.Followers = req.Followers
	product.IsAvailable = boolOrDefault(req.IsAvailable, product.IsAvailable)
	product.StripePriceID = req.StripePriceID

	if _, err = s.repo.UpdateShopProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

// DeleteShopProduct удаляет товар.
func (s *Service) DeleteShopProduct(ctx context.Context, id string) error {
	const op = "catalog.DeleteShopProduct"

	deleted, err := s.repo.DeleteShopProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// defaultCategory подставляет tiktok при пустой категории товара.
func defaultCategory(category string) string {
	if category == "" {
		return "tiktok"
	}
	return category
}
