// Package status реализует HTTP-обработчик опроса статуса сессии оплаты.
// Оплаченная сессия применяет права доступа немедленно, не дожидаясь вебхука.
package status

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/continental-academy/academy-api/internal/http/response"
	"github.com/continental-academy/academy-api/internal/lib/sl"
	paymentservice "github.com/continental-academy/academy-api/internal/services/payment"
)

// Service описывает интерфейс опроса статуса оплаты.
type Service interface {
	Status(ctx context.Context, sessionID string) (*paymentservice.StatusResult, error)
}

// Handler управляет запросами статуса оплаты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статус сессии оплаты
// @Description Опрашивает провайдера. Оплаченная сессия идемпотентно выдает права доступа.
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "ID сессии оплаты"
// @Success 200 {object} paymentservice.StatusResult
// @Failure 401 {object} response.Error "Пользователь не авторизован"
// @Router /payments/status/{sessionID} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sessionID := chi.URLParam(r, "sessionID")
	result, err := h.service.Status(r.Context(), sessionID)
	if err != nil {
		log.Error("failed to get payment status", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}
	render.JSON(w, r, result)
}
