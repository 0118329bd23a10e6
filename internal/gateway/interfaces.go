package gateway

import "context"

// CatalogClient — клиент query-слоя catalog-сервиса.
// Отсутствие товара возвращается как nil (или false для удаления), а не как ошибка.
type CatalogClient interface {
	ListProducts(ctx context.Context, search string) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, in ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id int64, in ProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)
}

// HealthChecker проверяет доступность catalog-сервиса.
type HealthChecker interface {
	Check(ctx context.Context) error
}
