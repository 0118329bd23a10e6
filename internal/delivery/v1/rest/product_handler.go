package rest

import (
	"net/http"

	"github.com/DRSN-tech/catalog/internal/gateway"
	"github.com/DRSN-tech/catalog/pkg/e"
	"github.com/DRSN-tech/catalog/pkg/logger"
)

type ProductHandler struct {
	adapter *gateway.ProductsAdapter
	logger  logger.Logger
}

func NewProductHandler(adapter *gateway.ProductsAdapter, logger logger.Logger) *ProductHandler {
	return &ProductHandler{adapter: adapter, logger: logger}
}

// listProducts
//
//	@Summary		Список товаров
//	@Description	Возвращает товары, в названии которых встречается search
//	@Tags			products
//	@Produce		json
//	@Param			search	query		string	false	"Подстрока названия"
//	@Success		200		{array}		gateway.Product
//	@Failure		500		{object}	gateway.ErrorResponse
//	@Router			/api/products [get]
func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	Render(w, h.adapter.ListProducts(r.Context(), r.URL.Query().Get("search")))
}

// getProduct
//
//	@Summary		Товар по ID
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int	true	"ID товара"
//	@Success		200	{object}	gateway.Product
//	@Failure		400	{object}	gateway.ErrorResponse
//	@Failure		404	{object}	gateway.ErrorResponse
//	@Failure		500	{object}	gateway.ErrorResponse
//	@Router			/api/products/{id} [get]
func (h *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, err.Error(), r.URL.Path)
		WriteBadRequest(w, err)
		return
	}

	Render(w, h.adapter.GetProduct(r.Context(), id))
}

// createProduct
//
//	@Summary		Создание товара
//	@Description	Создаёт товар; ответ содержит Location нового ресурса
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		gateway.ProductInput	true	"Данные товара"
//	@Success		201		{object}	gateway.Product
//	@Failure		400		{object}	gateway.ErrorResponse
//	@Failure		500		{object}	gateway.ErrorResponse
//	@Router			/api/products [post]
func (h *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	in, err := decodeProductInput(w, r)
	if err != nil {
		h.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteBadRequest(w, e.ErrInvalidRequestBody)
		return
	}

	Render(w, h.adapter.CreateProduct(r.Context(), in))
}

// updateProduct
//
//	@Summary		Обновление товара
//	@Description	Полностью заменяет name, description и price
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"ID товара"
//	@Param			product	body		gateway.ProductInput	true	"Данные товара"
//	@Success		200		{object}	gateway.Product
//	@Failure		400		{object}	gateway.ErrorResponse
//	@Failure		404		{object}	gateway.ErrorResponse
//	@Failure		500		{object}	gateway.ErrorResponse
//	@Router			/api/products/{id} [put]
func (h *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, err.Error(), r.URL.Path)
		WriteBadRequest(w, err)
		return
	}

	in, err := decodeProductInput(w, r)
	if err != nil {
		h.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteBadRequest(w, e.ErrInvalidRequestBody)
		return
	}

	Render(w, h.adapter.UpdateProduct(r.Context(), id, in))
}

// deleteProduct
//
//	@Summary		Удаление товара
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int	true	"ID товара"
//	@Success		200	{boolean}	bool
//	@Failure		400	{object}	gateway.ErrorResponse
//	@Failure		404	{object}	gateway.ErrorResponse
//	@Failure		500	{object}	gateway.ErrorResponse
//	@Router			/api/products/{id} [delete]
func (h *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, err.Error(), r.URL.Path)
		WriteBadRequest(w, err)
		return
	}

	Render(w, h.adapter.DeleteProduct(r.Context(), id))
}
