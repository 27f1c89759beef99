package models

import "time"

// ShopProduct представляет товар магазина: готовый аккаунт социальной
// сети с аудиторией. После продажи товар помечается недоступным.
type ShopProduct struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	Currency      string    `json:"currency"`
	ImageURL      string    `json:"image_url"`
	Followers     int       `json:"followers"`
	IsAvailable   bool      `json:"is_available"`
	StripePriceID string    `json:"stripe_price_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ShopProductRequest — входные данные создания и обновления товара.
type ShopProductRequest struct {
	Title         string  `json:"title" validate:"required"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	Currency      string  `json:"currency"`
	ImageURL      string  `json:"image_url"`
	Followers     int     `json:"followers"`
	IsAvailable   *bool   `json:"is_available"`
	StripePriceID string  `json:"stripe_price_id"`
}
