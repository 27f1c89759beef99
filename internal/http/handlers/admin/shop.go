package admin

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/continental-academy/academy-api/internal/models"
)

// ShopProducts godoc
// @Summary Все товары магазина, включая проданные и скрытые
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ShopProduct
// @Router /admin/shop-products [get]
func (h *Handler) ShopProducts(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.ShopProducts")

	products, err := h.catalog.ListShopProductsAdmin(r.Context())
	if err != nil {
		renderError(w, r, log, "failed to list shop products", err)
		return
	}
	if products == nil {
		products = []*models.ShopProduct{}
	}
	render.JSON(w, r, products)
}

// CreateShopProduct godoc
// @Summary Создать товар
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ShopProductRequest true "Данные товара"
// @Success 201 {object} models.ShopProduct
// @Failure 400 {object} response.Error "Некорректный запрос"
// @Router /admin/shop-products [post]
func (h *Handler) CreateShopProduct(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.CreateShopProduct")

	var req models.ShopProductRequest
	if !h.bind(w, r, log, &req) {
		return
	}
	product, err := h.catalog.CreateShopProduct(r.Context(), req)
	if err != nil {
		renderError(w, r, log, "failed to create shop product", err)
		return
	}
	log.Info("shop product created", "product_id", product.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, product)
}

// UpdateShopProduct godoc
// @Summary Обновить товар
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Param request body models.ShopProductRequest true "Данные товара"
// @Success 200 {object} models.ShopProduct
// @Failure 404 {object} response.Error "Товар не найден"
// @Router /admin/shop-products/{id} [put]
func (h *Handler) UpdateShopProduct(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.UpdateShopProduct")

	var req models.ShopProductRequest
	if !h.bind(w, r, log, &req) {
		return
	}
	product, err := h.catalog.UpdateShopProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		renderError(w, r, log, "failed to update shop product", err)
		return
	}
	render.JSON(w, r, product)
}

// DeleteShopProduct godoc
// @Summary Удалить товар
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} response.Error "Товар не найден"
// @Router /admin/shop-products/{id} [delete]
func (h *Handler) DeleteShopProduct(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.DeleteShopProduct")

	if err := h.catalog.DeleteShopProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		renderError(w, r, log, "failed to delete shop product", err)
		return
	}
	render.JSON(w, r, map[string]bool{"deleted": true})
}
