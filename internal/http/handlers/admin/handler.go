// Package admin реализует HTTP-обработчики административной панели:
// управление пользователями и их правами, контентом каталога, товарами,
// настройками сайта и сводкой аналитики. Все маршруты защищены
// проверкой токена и административной роли в middleware.
package admin

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

// CatalogService описывает интерфейс управления контентом.
type CatalogService interface {
	ListProgramsAdmin(ctx context.Context) ([]*models.Program, error)
	CreateProgram(ctx context.Context, req models.ProgramRequest) (*models.Program, error)
	UpdateProgram(ctx context.Context, id string, req models.ProgramRequest) (*models.Program, error)
	DeleteProgram(ctx context.Context, id string) error

	ListCoursesAdmin(ctx context.Context) ([]*models.Course, error)
	CreateCourse(ctx context.Context, req models.CourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, id string, req models.CourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id string) error

	CreateLesson(ctx context.Context, req models.LessonRequest) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, id string, req models.LessonRequest) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, id string) error
	ReorderLessons(ctx context.Context, orders []models.LessonOrder) error

	ListShopProductsAdmin(ctx context.Context) ([]*models.ShopProduct, error)
	CreateShopProduct(ctx context.Context, req models.ShopProductRequest) (*models.ShopProduct, error)
	UpdateShopProduct(ctx context.Context, id string, req models.ShopProductRequest) (*models.ShopProduct, error)
	DeleteShopProduct(ctx context.Context, id string) error

	ListFAQs(ctx context.Context) ([]*models.FAQ, error)
	CreateFAQ(ctx context.Context, req models.FAQRequest) (*models.FAQ, error)
	UpdateFAQ(ctx context.Context, id string, req models.FAQRequest) (*models.FAQ, error)
	DeleteFAQ(ctx context.Context, id string) error

	ListResults(ctx context.Context) ([]*models.Result, error)
	CreateResult(ctx context.Context, req models.ResultRequest) (*models.Result, error)
	DeleteResult(ctx context.Context, id string) error

	UpdateSettings(ctx context.Context, settings *models.Settings) (*models.Settings, error)
	EnsureSettings(ctx context.Context) (*models.Settings, error)
	AnalyticsSummary(ctx context.Context) (*models.AnalyticsSummary, error)
}

// UserService описывает интерфейс управления пользователями.
type UserService interface {
	List(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, userID string) (*models.User, error)
	SetRole(ctx context.Context, userID, role string) error
	AddCourse(ctx context.Context, userID, courseID string) error
	RemoveCourse(ctx context.Context, userID, courseID string) error
	ReplaceCourses(ctx context.Context, userID string, courseIDs []string) error
	ReplaceSubscriptions(ctx context.Context, userID string, programIDs []string) error
}

// Handler управляет административными запросами.
type Handler struct {
	log      *slog.Logger
	catalog  CatalogService
	users    UserService
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисами.
func New(log *slog.Logger, catalog CatalogService, users UserService) *Handler {
	return &Handler{
		log:      log,
		catalog:  catalog,
		users:    users,
		validate: validator.New(),
	}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// bind декодирует и валидирует тело запроса. При ошибке пишет 400
// и возвращает false.
func (h *Handler) bind(w http.ResponseWriter, r *http.Request, log *slog.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Detail("invalid request body"))
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			log.Error("validation failed", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(errs))
			return false
		}
	}
	return true
}

// renderError транслирует доменную ошибку в ответ.
func renderError(w http.ResponseWriter, r *http.Request, log *slog.Logger, msg string, err error) {
	log.Error(msg, sl.Err(err))
	status, body := response.FromError(err)
	render.Status(r, status)
	render.JSON(w, r, body)
}
