// Package webhook реализует HTTP-обработчик вебхуков платежного провайдера.
//
// Подпись проверяется по сырому телу запроса до какого-либо разбора.
// Непройденная проверка дает 400 и не меняет состояние системы.
package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/continental-academy/academy-api/internal/http/response"
	"github.com/continental-academy/academy-api/internal/lib/sl"
	paymentservice "github.com/continental-academy/academy-api/internal/services/payment"
)

// Service описывает интерфейс сверки вебхуков.
type Service interface {
	HandleWebhook(ctx context.Context, body []byte, signature string) error
}

// Handler управляет вебхуками провайдера.
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
// @Summary Вебхук платежного провайдера
// @Description Сверяет событие оплаты. Повторная доставка того же события ничего не меняет.
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} response.Error "Невалидная подпись"
// @Router /payments/webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Detail("invalid request body"))
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if err = h.service.HandleWebhook(r.Context(), body, signature); err != nil {
		if errors.Is(err, paymentservice.ErrInvalidSignature) {
			log.Warn("webhook signature verification failed")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Detail("invalid signature"))
			return
		}
		log.Error("failed to handle webhook", sl.Err(err))
		status, respBody := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, respBody)
		return
	}
	render.JSON(w, r, map[string]bool{"received": true})
}
