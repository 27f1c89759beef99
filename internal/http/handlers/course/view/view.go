// Package view реализует HTTP-обработчик просмотра курса с уроками.
//
// Доступ проверяется по правам текущего пользователя: администратор,
// прямое назначение курса или подписка на программу курса.
package view

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/continental-academy/academy-api/internal/http/middlewarectx"
	"github.com/continental-academy/academy-api/internal/http/response"
	"github.com/continental-academy/academy-api/internal/lib/sl"
	"github.com/continental-academy/academy-api/internal/models"
)

// Handler управляет запросами на просмотр курса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс проверки прав и выдачи курса.
type Service interface {
	GetCourseWithLessons(ctx context.Context, user *models.User, courseID string) (*models.Course, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Просмотреть курс
// @Description Возвращает курс вместе с уроками, если он доступен пользователю.
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID курса"
// @Success 200 {object} models.Course
// @Failure 401 {object} response.Error "Пользователь не авторизован"
// @Failure 403 {object} response.Error "Нет доступа к курсу"
// @Failure 404 {object} response.Error "Курс не найден"
// @Router /courses/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.view"
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

	courseID := chi.URLParam(r, "id")
	course, err := h.service.GetCourseWithLessons(r.Context(), user, courseID)
	if err != nil {
		if errors.Is(err, models.ErrForbidden) {
			log.Warn("course access denied",
				slog.String("user_id", user.ID), slog.String("course_id", courseID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Detail("no access to this course"))
			return
		}
		log.Error("failed to get course", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}
	render.JSON(w, r, course)
}
