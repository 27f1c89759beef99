// Package checkout реализует HTTP-обработчики создания сессий оплаты
// подписки на программу и покупки товара магазина. Цена всегда
// читается из каталога, а не из запроса клиента.
package checkout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/continental-academy/academy-api/internal/http/middlewarectx"
	"github.com/continental-academy/academy-api/internal/http/response"
	"github.com/continental-academy/academy-api/internal/lib/sl"
	"github.com/continental-academy/academy-api/internal/models"
	paymentservice "github.com/continental-academy/academy-api/internal/services/payment"
)

// Service описывает интерфейс создания сессий оплаты.
type Service interface {
	CreateSubscriptionCheckout(ctx context.Context, user *models.User, programID, originURL string) (*paymentservice.CheckoutResult, error)
	CreateProductCheckout(ctx context.Context, user *models.User, productID, originURL string) (*paymentservice.CheckoutResult, error)
}

// Handler управляет запросами на создание сессий оплаты.
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

// Subscription godoc
// @Summary Оплатить подписку на программу
// @Description Создает сессию оплаты подписки. Цена берется из записи программы.
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param program_id query string true "ID программы"
// @Param origin_url query string false "Базовый URL клиента для redirect-ссылок"
// @Success 200 {object} paymentservice.CheckoutResult
// @Failure 400 {object} response.Error "Не указана программа"
// @Failure 404 {object} response.Error "Программа не найдена"
// @Router /payments/checkout/subscription [post]
func (h *Handler) Subscription(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.checkout.Subscription"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Detail("unauthorized"))
		return
	}

	programID := r.URL.Query().Get("program_id")
	if programID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Detail("program_id is required"))
		return
	}

	result, err := h.service.CreateSubscriptionCheckout(r.Context(), user, programID,
		r.URL.Query().Get("origin_url"))
	if err != nil {
		log.Error("failed to create subscription checkout", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("subscription checkout created",
		slog.String("user_id", user.ID), slog.String("session_id", result.SessionID))
	render.JSON(w, r, result)
}

// Product godoc
// @Summary Купить товар магазина
// @Description Создает сессию оплаты товара. Проданный товар купить нельзя.
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param product_id query string true "ID товара"
// @Param origin_url query string false "Базовый URL клиента для redirect-ссылок"
// @Success 200 {object} paymentservice.CheckoutResult
// @Failure 400 {object} response.Error "Не указан товар или товар продан"
// @Failure 404 {object} response.Error "Товар не найден"
// @Router /payments/checkout/product [post]
func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.checkout.Product"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Detail("unauthorized"))
		return
	}

	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Detail("product_id is required"))
		return
	}

	result, err := h.service.CreateProductCheckout(r.Context(), user, productID,
		r.URL.Query().Get("origin_url"))
	if err != nil {
		log.Error("failed to create product checkout", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("product checkout created",
		slog.String("user_id", user.ID), slog.String("session_id", result.SessionID))
	render.JSON(w, r, result)
}
