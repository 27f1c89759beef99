package paymentprovider

// CheckoutParams — параметры создания сессии оплаты.
type CheckoutParams struct {
	Name          string            // название позиции в чеке
	Amount        float64           // сумма в основной валюте, например 199.99
	Currency      string            // код валюты, например "eur"
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
	Metadata      map[string]string // user_id, program_id или product_id, type
}

// CheckoutSession представляет сессию оплаты провайдера.
type CheckoutSession struct {
	ID              string            `json:"id"`
	URL             string            `json:"url"`
	Status          string            `json:"status"`
	PaymentStatus   string            `json:"payment_status"`
	AmountTotal     int64             `json:"amount_total"` // в минимальных единицах валюты
	Currency        string            `json:"currency"`
	Metadata        map[string]string `json:"metadata"`
	CustomerDetails *CustomerDetails  `json:"customer_details"`
}

// CustomerDetails содержит данные покупателя, заполненные провайдером.
type CustomerDetails struct {
	Email string `json:"email"`
}

// WebhookEvent — событие, доставляемое вебхуком провайдера.
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object CheckoutSession `json:"object"`
	} `json:"data"`
}

// EventCheckoutCompleted — тип события завершенной сессии оплаты.
const EventCheckoutCompleted = "checkout.session.completed"

// PaymentStatusPaid — статус оплаченной сессии.
const PaymentStatusPaid = "paid"
