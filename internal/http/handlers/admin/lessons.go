package admin

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/continental-academy/academy-api/internal/http/response"
	"github.com/continental-academy/academy-api/internal/lib/sl"
	"github.com/continental-academy/academy-api/internal/models"
)

// CreateLesson godoc
// @Summary Создать урок
// @Description Если порядковый номер не задан, урок добавляется в конец курса.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.LessonRequest true "Данные урока"
// @Success 201 {object} models.Lesson
// @Failure 404 {object} response.Error "Курс не найден"
// @Router /admin/lessons [post]
func (h *Handler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.CreateLesson")

	var req models.LessonRequest
	if !h.bind(w, r, log, &req) {
		return
	}
	lesson, err := h.catalog.CreateLesson(r.Context(), req)
	if err != nil {
		renderError(w, r, log, "failed to create lesson", err)
		return
	}
	log.Info("lesson created", "lesson_id", lesson.ID, "course_id", lesson.CourseID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, lesson)
}

// UpdateLesson godoc
// @Summary Обновить урок
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID урока"
// @Param request body models.LessonRequest true "Данные урока"
// @Success 200 {object} models.Lesson
// @Failure 404 {object} response.Error "Урок не найден"
// @Router /admin/lessons/{id} [put]
func (h *Handler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.UpdateLesson")

	var req models.LessonRequest
	if !h.bind(w, r, log, &req) {
		return
	}
	lesson, err := h.catalog.UpdateLesson(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		renderError(w, r, log, "failed to update lesson", err)
		return
	}
	render.JSON(w, r, lesson)
}

// DeleteLesson godoc
// @Summary Удалить урок
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID урока"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} response.Error "Урок не найден"
// @Router /admin/lessons/{id} [delete]
func (h *Handler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.DeleteLesson")

	if err := h.catalog.DeleteLesson(r.Context(), chi.URLParam(r, "id")); err != nil {
		renderError(w, r, log, "failed to delete lesson", err)
		return
	}
	render.JSON(w, r, map[string]bool{"deleted": true})
}

// ReorderLessons godoc
// @Summary Переупорядочить уроки
// @Description Принимает список пар (lesson_id, order) и применяет их атомарно.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []models.LessonOrder true "Новый порядок уроков"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} response.Error "Некорректный запрос"
// @Router /admin/lessons/reorder [put]
func (h *Handler) ReorderLessons(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.ReorderLessons")

	var orders []models.LessonOrder
	if err := json.NewDecoder(r.Body).Decode(&orders); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Detail("invalid request body"))
		return
	}
	if err := h.catalog.ReorderLessons(r.Context(), orders); err != nil {
		renderError(w, r, log, "failed to reorder lessons", err)
		return
	}
	log.Info("lessons reordered", "count", len(orders))
	render.JSON(w, r, map[string]bool{"updated": true})
}
