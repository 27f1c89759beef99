// Package accessible реализует HTTP-обработчик списка доступных
// пользователю курсов: объединение прямых назначений и курсов
// программ с подпиской, без дубликатов.
package accessible

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
)

// Handler управляет запросами списка доступных курсов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс выдачи доступных курсов.
type Service interface {
	ListAccessibleCourses(ctx context.Context, user *models.User) ([]*models.Course, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Мои курсы
// @Description Возвращает курсы, доступные пользователю, по возрастанию порядка.
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Course
// @Failure 401 {object} response.Error "Пользователь не авторизован"
// @Router /me/courses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.accessible"
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

	courses, err := h.service.ListAccessibleCourses(r.Context(), user)
	if err != nil {
		log.Error("failed to list accessible courses", sl.Err(err))
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
