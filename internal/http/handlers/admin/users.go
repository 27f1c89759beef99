package admin

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/continental-academy/academy-api/internal/http/response"
	"github.com/continental-academy/academy-api/internal/models"
)

// idListRequest — тело запросов на замену наборов прав доступа.
type idListRequest struct {
	IDs []string `json:"ids"`
}

// Users godoc
// @Summary Список пользователей
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 403 {object} response.Error "Требуется роль администратора"
// @Router /admin/users [get]
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.Users")

	result, err := h.users.List(r.Context())
	if err != nil {
		renderError(w, r, log, "failed to list users", err)
		return
	}
	if result == nil {
		result = []*models.User{}
	}
	render.JSON(w, r, result)
}

// SetUserRole godoc
// @Summary Сменить роль пользователя
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Param role query string true "Новая роль: user или admin"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} response.Error "Неизвестная роль"
// @Failure 404 {object} response.Error "Пользователь не найден"
// @Router /admin/users/{id}/role [put]
func (h *Handler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.SetUserRole")

	userID := chi.URLParam(r, "id")
	role := r.URL.Query().Get("role")
	if err := h.users.SetRole(r.Context(), userID, role); err != nil {
		renderError(w, r, log, "failed to set user role", err)
		return
	}
	log.Info("user role updated", "user_id", userID, "role", role)
	render.JSON(w, r, map[string]bool{"updated": true})
}

// UserCourses godoc
// @Summary Прямые доступы пользователя к курсам
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Success 200 {object} map[string][]string
// @Failure 404 {object} response.Error "Пользователь не найден"
// @Router /admin/users/{id}/courses [get]
func (h *Handler) UserCourses(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.UserCourses")

	user, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, log, "failed to get user", err)
		return
	}
	render.JSON(w, r, map[string][]string{"courses": user.Courses})
}

// ReplaceUserCourses godoc
// @Summary Заменить набор прямых доступов пользователя
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Param request body idListRequest true "Идентификаторы курсов"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} response.Error "Пользователь не найден"
// @Router /admin/users/{id}/courses [put]
func (h *Handler) ReplaceUserCourses(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.ReplaceUserCourses")

	var req idListRequest
	if !h.bind(w, r, log, &req) {
		return
	}
	if err := h.users.ReplaceCourses(r.Context(), chi.URLParam(r, "id"), req.IDs); err != nil {
		renderError(w, r, log, "failed to replace user courses", err)
		return
	}
	render.JSON(w, r, map[string]bool{"updated": true})
}

// AddUserCourse godoc
// @Summary Выдать пользователю доступ к курсу
// @Description Повторная выдача того же доступа ничего не меняет.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Param course_id query string true "ID курса"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} response.Error "Пользователь не найден"
// @Router /admin/users/{id}/courses/add [post]
func (h *Handler) AddUserCourse(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.AddUserCourse")

	courseID := r.URL.Query().Get("course_id")
	if courseID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Detail("course_id is required"))
		return
	}
	if err := h.users.AddCourse(r.Context(), chi.URLParam(r, "id"), courseID); err != nil {
		renderError(w, r, log, "failed to add user course", err)
		return
	}
	render.JSON(w, r, map[string]bool{"updated": true})
}

// RemoveUserCourse godoc
// @Summary Отозвать доступ пользователя к курсу
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Param course_id query string true "ID курса"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} response.Error "Пользователь не найден"
// @Router /admin/users/{id}/courses/remove [post]
func (h *Handler) RemoveUserCourse(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.RemoveUserCourse")

	courseID := r.URL.Query().Get("course_id")
	if courseID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Detail("course_id is required"))
		return
	}
	if err := h.users.RemoveCourse(r.Context(), chi.URLParam(r, "id"), courseID); err != nil {
		renderError(w, r, log, "failed to remove user course", err)
		return
	}
	render.JSON(w, r, map[string]bool{"updated": true})
}

// ReplaceUserSubscriptions godoc
// @Summary Заменить набор подписок пользователя
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Param request body idListRequest true "Идентификаторы программ"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} response.Error "Пользователь не найден"
// @Router /admin/users/{id}/subscriptions [put]
func (h *Handler) ReplaceUserSubscriptions(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.ReplaceUserSubscriptions")

	var req idListRequest
	if !h.bind(w, r, log, &req) {
		return
	}
	if err := h.users.ReplaceSubscriptions(r.Context(), chi.URLParam(r, "id"), req.IDs); err != nil {
		renderError(w, r, log, "failed to replace user subscriptions", err)
		return
	}
	render.JSON(w, r, map[string]bool{"updated": true})
}
