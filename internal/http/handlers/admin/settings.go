package admin

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/continental-academy/academy-api/internal/models"
)

// UpdateSettings godoc
// @Summary Обновить настройки сайта
// @Description Настройки заменяются целиком переданным документом.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Settings true "Настройки сайта"
// @Success 200 {object} models.Settings
// @Failure 400 {object} response.Error "Некорректный запрос"
// @Router /admin/settings [put]
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.UpdateSettings")

	var req models.Settings
	if !h.bind(w, r, log, &req) {
		return
	}
	settings, err := h.catalog.UpdateSettings(r.Context(), &req)
	if err != nil {
		renderError(w, r, log, "failed to update settings", err)
		return
	}
	log.Info("site settings updated")
	render.JSON(w, r, settings)
}

// Seed godoc
// @Summary Гарантировать наличие настроек сайта
// @Description Создает настройки по умолчанию, если их еще нет, и возвращает текущие.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Settings
// @Router /admin/seed [post]
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.Seed")

	settings, err := h.catalog.EnsureSettings(r.Context())
	if err != nil {
		renderError(w, r, log, "failed to ensure settings", err)
		return
	}
	render.JSON(w, r, settings)
}

// Analytics godoc
// @Summary Сводка аналитики
// @Description Количество пользователей, пользователей с подписками и последние события.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AnalyticsSummary
// @Router /admin/analytics [get]
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.Analytics")

	summary, err := h.catalog.AnalyticsSummary(r.Context())
	if err != nil {
		renderError(w, r, log, "failed to build analytics summary", err)
		return
	}
	render.JSON(w, r, summary)
}
