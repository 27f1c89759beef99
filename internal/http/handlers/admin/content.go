package admin

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/continental-academy/academy-api/internal/models"
)

// FAQs godoc
// @Summary Все вопросы FAQ
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.FAQ
// @Router /admin/faqs [get]
func (h *Handler) FAQs(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.FAQs")

	faqs, err := h.catalog.ListFAQs(r.Context())
	if err != nil {
		renderError(w, r, log, "failed to list faqs", err)
		return
	}
	if faqs == nil {
		faqs = []*models.FAQ{}
	}
	render.JSON(w, r, faqs)
}

// CreateFAQ godoc
// @Summary Создать вопрос FAQ
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.FAQRequest true "Вопрос и ответ"
// @Success 201 {object} models.FAQ
// @Failure 400 {object} response.Error "Некорректный запрос"
// @Router /admin/faqs [post]
func (h *Handler) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.CreateFAQ")

	var req models.FAQRequest
	if !h.bind(w, r, log, &req) {
		return
	}
	faq, err := h.catalog.CreateFAQ(r.Context(), req)
	if err != nil {
		renderError(w, r, log, "failed to create faq", err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, faq)
}

// UpdateFAQ godoc
// @Summary Обновить вопрос FAQ
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID вопроса"
// @Param request body models.FAQRequest true "Вопрос и ответ"
// @Success 200 {object} models.FAQ
// @Failure 404 {object} response.Error "Вопрос не найден"
// @Router /admin/faqs/{id} [put]
func (h *Handler) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.UpdateFAQ")

	var req models.FAQRequest
	if !h.bind(w, r, log, &req) {
		return
	}
	faq, err := h.catalog.UpdateFAQ(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		renderError(w, r, log, "failed to update faq", err)
		return
	}
	render.JSON(w, r, faq)
}

// DeleteFAQ godoc
// @Summary Удалить вопрос FAQ
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID вопроса"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} response.Error "Вопрос не найден"
// @Router /admin/faqs/{id} [delete]
func (h *Handler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.DeleteFAQ")

	if err := h.catalog.DeleteFAQ(r.Context(), chi.URLParam(r, "id")); err != nil {
		renderError(w, r, log, "failed to delete faq", err)
		return
	}
	render.JSON(w, r, map[string]bool{"deleted": true})
}

// Results godoc
// @Summary Все результаты учеников
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Result
// @Router /admin/results [get]
func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.Results")

	results, err := h.catalog.ListResults(r.Context())
	if err != nil {
		renderError(w, r, log, "failed to list results", err)
		return
	}
	if results == nil {
		results = []*models.Result{}
	}
	render.JSON(w, r, results)
}

// CreateResult godoc
// @Summary Добавить результат ученика
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ResultRequest true "Данные результата"
// @Success 201 {object} models.Result
// @Failure 400 {object} response.Error "Некорректный запрос"
// @Router /admin/results [post]
func (h *Handler) CreateResult(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.CreateResult")

	var req models.ResultRequest
	if !h.bind(w, r, log, &req) {
		return
	}
	result, err := h.catalog.CreateResult(r.Context(), req)
	if err != nil {
		renderError(w, r, log, "failed to create result", err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, result)
}

// DeleteResult godoc
// @Summary Удалить результат ученика
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID результата"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} response.Error "Результат не найден"
// @Router /admin/results/{id} [delete]
func (h *Handler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.DeleteResult")

	if err := h.catalog.DeleteResult(r.Context(), chi.URLParam(r, "id")); err != nil {
		renderError(w, r, log, "failed to delete result", err)
		return
	}
	render.JSON(w, r, map[string]bool{"deleted": true})
}
