package admin

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/continental-academy/academy-api/internal/models"
)

// Programs godoc
// @Summary Все программы, включая скрытые
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Program
// @Router /admin/programs [get]
func (h *Handler) Programs(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.Programs")

	programs, err := h.catalog.ListProgramsAdmin(r.Context())
	if err != nil {
		renderError(w, r, log, "failed to list programs", err)
		return
	}
	if programs == nil {
		programs = []*models.Program{}
	}
	render.JSON(w, r, programs)
}

// CreateProgram godoc
// @Summary Создать программу
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ProgramRequest true "Данные программы"
// @Success 201 {object} models.Program
// @Failure 400 {object} response.Error "Некорректный запрос"
// @Router /admin/programs [post]
func (h *Handler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.CreateProgram")

	var req models.ProgramRequest
	if !h.bind(w, r, log, &req) {
		return
	}
	program, err := h.catalog.CreateProgram(r.Context(), req)
	if err != nil {
		renderError(w, r, log, "failed to create program", err)
		return
	}
	log.Info("program created", "program_id", program.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, program)
}

// UpdateProgram godoc
// @Summary Обновить программу
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID программы"
// @Param request body models.ProgramRequest true "Данные программы"
// @Success 200 {object} models.Program
// @Failure 404 {object} response.Error "Программа не найдена"
// @Router /admin/programs/{id} [put]
func (h *Handler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.UpdateProgram")

	var req models.ProgramRequest
	if !h.bind(w, r, log, &req) {
		return
	}
	program, err := h.catalog.UpdateProgram(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		renderError(w, r, log, "failed to update program", err)
		return
	}
	render.JSON(w, r, program)
}

// DeleteProgram godoc
// @Summary Удалить программу
// @Description Курсы программы остаются и становятся назначаемыми напрямую, подписки снимаются.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID программы"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} response.Error "Программа не найдена"
// @Router /admin/programs/{id} [delete]
func (h *Handler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.DeleteProgram")

	if err := h.catalog.DeleteProgram(r.Context(), chi.URLParam(r, "id")); err != nil {
		renderError(w, r, log, "failed to delete program", err)
		return
	}
	render.JSON(w, r, map[string]bool{"deleted": true})
}
