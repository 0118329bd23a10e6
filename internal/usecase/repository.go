package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog/internal/domain"
)

// ProductRepository — хранилище товаров.
// Отсутствие записи не является ошибкой: FindByID и Update возвращают nil, Delete — false.
type ProductRepository interface {
	FindAll(ctx context.Context, filter string) ([]domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
