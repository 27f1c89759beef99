package models

import (
	"encoding/json"
	"time"
)

// AnalyticsEvent — событие фронтенд-аналитики. Прием событий никогда
// не возвращает ошибку клиенту.
type AnalyticsEvent struct {
	ID        int             `json:"id"`
	EventType string          `json:"event_type"`
	Page      string          `json:"page,omitempty"`
	UserID    string          `json:"user_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"timestamp"`
}

// AnalyticsSummary — сводка для админ-панели.
type AnalyticsSummary struct {
	TotalUsers         int               `json:"total_users"`
	TotalSubscriptions int               `json:"total_subscriptions"`
	RecentEvents       []*AnalyticsEvent `json:"recent_events"`
}

// AnalyticsEventRequest — входные данные события аналитики.
type AnalyticsEventRequest struct {
	EventType string          `json:"event_type" validate:"required"`
	Page      string          `json:"page"`
	UserID    string          `json:"user_id"`
	Data      json.RawMessage `json:"data"`
}
