package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/DRSN-tech/catalog/pkg/e"
	"github.com/DRSN-tech/catalog/pkg/logger"
)

const (
	msgListFailed   = "An error occurred while retrieving products"
	msgGetFailed    = "An error occurred while retrieving the product"
	msgCreateFailed = "An error occurred while creating the product"
	msgUpdateFailed = "An error occurred while updating the product"
	msgDeleteFailed = "An error occurred while deleting the product"

	msgProductNotFound  = "Product not found"
	msgCreateRejected   = "Failed to create product"
	msgInvalidProduct   = "Invalid product data"
	msgProductIDMissing = "Product with ID %d not found"
)

// ProductsAdapter переводит результаты catalog-сервиса в HTTP-ответы.
// Это единственное место шлюза, где ошибки классифицируются и логируются;
// детали сбоя никогда не попадают в ответ.
type ProductsAdapter struct {
	client CatalogClient
	logger logger.Logger
}

func NewProductsAdapter(client CatalogClient, logger logger.Logger) *ProductsAdapter {
	return &ProductsAdapter{client: client, logger: logger}
}

func (a *ProductsAdapter) ListProducts(ctx context.Context, search string) Result {
	const op = "ProductsAdapter.ListProducts"

	products, err := a.client.ListProducts(ctx, search)
	if err != nil {
		a.logger.Errorf(e.Wrap(op, err), "Error retrieving products: search=%q", search)
		return NewErrorResult(http.StatusInternalServerError, msgListFailed)
	}

	if products == nil {
		products = []Product{}
	}

	return NewResult(http.StatusOK, products)
}

func (a *ProductsAdapter) GetProduct(ctx context.Context, id int64) Result {
	const op = "ProductsAdapter.GetProduct"

	product, err := a.client.GetProduct(ctx, id)
	if err != nil {
		a.logger.Errorf(e.Wrap(op, err), "Error retrieving product with ID %d", id)
		return NewErrorResult(http.StatusInternalServerError, msgGetFailed)
	}

	if product == nil {
		a.logger.Infof("%s: product %d not found", op, id)
		return NewErrorResult(http.StatusNotFound, fmt.Sprintf(msgProductIDMissing, id))
	}

	return NewResult(http.StatusOK, product)
}

// CreateProduct отвечает 201 с адресом нового ресурса.
// Если catalog-сервис не вернул товар и не сообщил об ошибке, это ошибка клиента (400), а не 404.
func (a *ProductsAdapter) CreateProduct(ctx context.Context, in ProductInput) Result {
	const op = "ProductsAdapter.CreateProduct"

	product, err := a.client.CreateProduct(ctx, in)
	if err != nil {
		if errors.Is(err, e.ErrInvalidInput) {
			a.logger.Infof("%s: rejected: %v", op, err)
			return NewErrorResult(http.StatusBadRequest, msgCreateRejected)
		}
		a.logger.Errorf(e.Wrap(op, err), "Error creating product: name=%q", in.Name)
		return NewErrorResult(http.StatusInternalServerError, msgCreateFailed)
	}

	if product == nil {
		a.logger.Infof("%s: catalog returned no product for name=%q", op, in.Name)
		return NewErrorResult(http.StatusBadRequest, msgCreateRejected)
	}

	return Result{
		Status:   http.StatusCreated,
		Body:     product,
		Location: fmt.Sprintf("%s/%d", ProductsPath, product.ID),
	}
}

func (a *ProductsAdapter) UpdateProduct(ctx context.Context, id int64, in ProductInput) Result {
	const op = "ProductsAdapter.UpdateProduct"

	product, err := a.client.UpdateProduct(ctx, id, in)
	if err != nil {
		if errors.Is(err, e.ErrInvalidInput) {
			a.logger.Infof("%s: product %d rejected: %v", op, id, err)
			return NewErrorResult(http.StatusBadRequest, msgInvalidProduct)
		}
		a.logger.Errorf(e.Wrap(op, err), "Error updating product with ID %d", id)
		return NewErrorResult(http.StatusInternalServerError, msgUpdateFailed)
	}

	if product == nil {
		a.logger.Infof("%s: product %d not found", op, id)
		return NewErrorResult(http.StatusNotFound, msgProductNotFound)
	}

	return NewResult(http.StatusOK, product)
}

func (a *ProductsAdapter) DeleteProduct(ctx context.Context, id int64) Result {
	const op = "ProductsAdapter.DeleteProduct"

	deleted, err := a.client.DeleteProduct(ctx, id)
	if err != nil {
		a.logger.Errorf(e.Wrap(op, err), "Error deleting product with ID %d", id)
		return NewErrorResult(http.StatusInternalServerError, msgDeleteFailed)
	}

	if !deleted {
		a.logger.Infof("%s: product %d not found", op, id)
		return NewErrorResult(http.StatusNotFound, msgProductNotFound)
	}

	return NewResult(http.StatusOK, true)
}
