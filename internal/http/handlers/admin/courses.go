package admin

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/continental-academy/academy-api/internal/models"
)

// Courses godoc
// @Summary Все курсы с количеством уроков и именем программы
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Course
// @Router /admin/courses [get]
func (h *Handler) Courses(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.Courses")

	courses, err := h.catalog.ListCoursesAdmin(r.Context())
	if err != nil {
		renderError(w, r, log, "failed to list courses", err)
		return
	}
	if courses == nil {
		courses = []*models.Course{}
	}
	render.JSON(w, r, courses)
}

// CreateCourse godoc
// @Summary Создать курс
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CourseRequest true "Данные курса"
// @Success 201 {object} models.Course
// @Failure 400 {object} response.Error "Некорректный запрос"
// @Router /admin/courses [post]
func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.CreateCourse")

	var req models.CourseRequest
	if !h.bind(w, r, log, &req) {
		return
	}
	course, err := h.catalog.CreateCourse(r.Context(), req)
	if err != nil {
		renderError(w, r, log, "failed to create course", err)
		return
	}
	log.Info("course created", "course_id", course.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, course)
}

// UpdateCourse godoc
// @Summary Обновить курс
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID курса"
// @Param request body models.CourseRequest true "Данные курса"
// @Success 200 {object} models.Course
// @Failure 404 {object} response.Error "Курс не найден"
// @Router /admin/courses/{id} [put]
func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.UpdateCourse")

	var req models.CourseRequest
	if !h.bind(w, r, log, &req) {
		return
	}
	course, err := h.catalog.UpdateCourse(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		renderError(w, r, log, "failed to update course", err)
		return
	}
	render.JSON(w, r, course)
}

// DeleteCourse godoc
// @Summary Удалить курс
// @Description Уроки курса и прямые доступы к нему удаляются вместе с курсом.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID курса"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} response.Error "Курс не найден"
// @Router /admin/courses/{id} [delete]
func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.DeleteCourse")

	if err := h.catalog.DeleteCourse(r.Context(), chi.URLParam(r, "id")); err != nil {
		renderError(w, r, log, "failed to delete course", err)
		return
	}
	render.JSON(w, r, map[string]bool{"deleted": true})
}
