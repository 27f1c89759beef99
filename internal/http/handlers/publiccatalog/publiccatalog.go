// Package publiccatalog реализует открытые HTTP-обработчики витрины:
// программы, курсы, товары магазина, FAQ, результаты, настройки сайта
// и прием событий аналитики.
package publiccatalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/continental-academy/academy-api/internal/http/response"
	"github.com/continental-academy/academy-api/internal/lib/sl"
	"github.com/continental-academy/academy-api/internal/models"
)

// Service описывает интерфейс бизнес-логики витрины.
type Service interface {
	ListPrograms(ctx context.Context) ([]*models.Program, error)
	ListCourses(ctx context.Context, programID string) ([]*models.Course, error)
	ListShopProducts(ctx context.Context, category string) ([]*models.ShopProduct, error)
	ListFAQs(ctx context.Context) ([]*models.FAQ, error)
	ListResults(ctx context.Context) ([]*models.Result, error)
	GetSettings(ctx context.Context) (*models.Settings, error)
	RecordAnalyticsEvent(ctx context.Context, req models.AnalyticsEventRequest) error
}

// Handler управляет открытыми запросами витрины.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// Programs godoc
// @Summary Список программ
// @Description Возвращает активные программы, новые первыми.
// @Tags Catalog
// @Produce json
// @Success 200 {array} models.Program
// @Router /programs [get]
func (h *Handler) Programs(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.publiccatalog.Programs")

	programs, err := h.service.ListPrograms(r.Context())
	if err != nil {
		log.Error("failed to list programs", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}
	if programs == nil {
		programs = []*models.Program{}
	}
	render.JSON(w, r, programs)
}

// Courses godoc
// @Summary Список курсов
// @Description Возвращает активные курсы по возрастанию порядка с количеством уроков.
// @Tags Catalog
// @Produce json
// @Param program_id query string false "Фильтр по программе"
// @Success 200 {array} models.Course
// @Router /courses [get]
func (h *Handler) Courses(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.publiccatalog.Courses")

	courses, err := h.service.ListCourses(r.Context(), r.URL.Query().Get("program_id"))
	if err != nil {
		log.Error("failed to list courses", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}
	if courses == nil {
		courses = []*models.Course{}
	}
	render.JSON(w, r, courses)
}

// ShopProducts godoc
// @Summary Список товаров магазина
// @Description Возвращает доступные товары, новые первыми.
// @Tags Shop
// @Produce json
// @Param category query string false "Фильтр по категории"
// @Success 200 {array} models.ShopProduct
// @Router /shop/products [get]
func (h *Handler) ShopProducts(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.publiccatalog.ShopProducts")

	products, err := h.service.ListShopProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		log.Error("failed to list shop products", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}
	if products == nil {
		products = []*models.ShopProduct{}
	}
	render.JSON(w, r, products)
}

// FAQs godoc
// @Summary Список FAQ
// @Tags Catalog
// @Produce json
// @Success 200 {array} models.FAQ
// @Router /faqs [get]
func (h *Handler) FAQs(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.publiccatalog.FAQs")

	faqs, err := h.service.ListFAQs(r.Context())
	if err != nil {
		log.Error("failed to list faqs", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}
	if faqs == nil {
		faqs = []*models.FAQ{}
	}
	render.JSON(w, r, faqs)
}

// Results godoc
// @Summary Результаты учеников
// @Tags Catalog
// @Produce json
// @Success 200 {array} models.Result
// @Router /results [get]
func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.publiccatalog.Results")

	results, err := h.service.ListResults(r.Context())
	if err != nil {
		log.Error("failed to list results", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}
	if results == nil {
		results = []*models.Result{}
	}
	render.JSON(w, r, results)
}

// Settings godoc
// @Summary Настройки сайта
// @Description Возвращает настройки сайта. Запись лениво создается со значениями по умолчанию.
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.Settings
// @Router /settings [get]
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.publiccatalog.Settings")

	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		log.Error("failed to get settings", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}
	render.JSON(w, r, settings)
}

// AnalyticsEvent godoc
// @Summary Принять событие аналитики
// @Description Сохраняет событие фронтенд-аналитики. Никогда не возвращает ошибку клиенту.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body models.AnalyticsEventRequest true "Событие"
// @Success 201 {object} map[string]bool
// @Router /analytics/event [post]
func (h *Handler) AnalyticsEvent(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.publiccatalog.AnalyticsEvent")

	var req models.AnalyticsEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EventType == "" {
		render.JSON(w, r, map[string]bool{"recorded": false})
		return
	}
	if err := h.service.RecordAnalyticsEvent(r.Context(), req); err != nil {
		log.Warn("failed to record analytics event", sl.Err(err))
		render.JSON(w, r, map[string]bool{"recorded": false})
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]bool{"recorded": true})
}

// Health godoc
// @Summary Проверка живости сервиса
// @Tags Ops
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
