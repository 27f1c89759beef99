// Package lesson реализует HTTP-обработчик просмотра урока.
//
// Бесплатный урок доступен любому аутентифицированному пользователю,
// остальные требуют доступа к курсу урока.
package lesson

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

// Handler управляет запросами на просмотр урока.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс проверки прав и выдачи урока.
type Service interface {
	GetLesson(ctx context.Context, user *models.User, lessonID string) (*models.Lesson, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Просмотреть урок
// @Description Возвращает урок, если он бесплатный или доступен его курс.
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID урока"
// @Success 200 {object} models.Lesson
// @Failure 401 {object} response.Error "Пользователь не авторизован"
// @Failure 403 {object} response.Error "Нет доступа к уроку"
// @Failure 404 {object} response.Error "Урок не найден"
// @Router /lessons/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.lesson"
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

	lessonID := chi.URLParam(r, "id")
	lessonItem, err := h.service.GetLesson(r.Context(), user, lessonID)
	if err != nil {
		if errors.Is(err, models.ErrForbidden) {
			log.Warn("lesson access denied",
				slog.String("user_id", user.ID), slog.String("lesson_id", lessonID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Detail("no access to this lesson"))
			return
		}
		log.Error("failed to get lesson", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}
	render.JSON(w, r, lessonItem)
}
