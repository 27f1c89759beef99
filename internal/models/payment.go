package models

import "time"

// Типы покупок, которые различает оркестратор оплат.
const (
	PaymentKindSubscription = "subscription"
	PaymentKindProduct      = "product"
)

// Статусы платежной записи, наблюдаемые этой системой.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Payment — локальная запись о попытке покупки, привязанная к сессии
// оплаты внешнего провайдера. Статус меняется один раз: pending → paid.
type Payment struct {
	ID        int        `json:"id"`
	SessionID string     `json:"session_id"`
	UserID    string     `json:"user_id"`
	ProgramID string     `json:"program_id,omitempty"`
	ProductID string     `json:"product_id,omitempty"`
	Kind      string     `json:"type"`
	Amount    float64    `json:"amount"`
	Currency  string     `json:"currency"`
	Status    string     `json:"payment_status"`
	CreatedAt time.Time  `json:"created_at"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

// PurchaseEvent публикуется в очередь уведомлений после успешной оплаты.
type PurchaseEvent struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Kind      string    `json:"type"`
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	PaidAt    time.Time `json:"paid_at"`
	SessionID string    `json:"session_id"`
}
