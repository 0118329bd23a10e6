package usecase

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/DRSN-tech/catalog/internal/domain"
	"github.com/DRSN-tech/catalog/pkg/e"
)

// ProductUseCase реализует операции каталога над товарами.
// Ошибки хранилища не перехватываются и не переинтерпретируются: они оборачиваются и уходят наверх.
type ProductUseCase struct {
	productRepo ProductRepository
	policy      ValidationPolicy
	clock       Clock
}

func NewProductUC(productRepo ProductRepository, policy ValidationPolicy, clock Clock) *ProductUseCase {
	if clock == nil {
		clock = time.Now
	}

	return &ProductUseCase{
		productRepo: productRepo,
		policy:      policy,
		clock:       clock,
	}
}

// ListProducts возвращает товары, в названии которых встречается search.
// Пустой результат — не ошибка.
func (p *ProductUseCase) ListProducts(ctx context.Context, search string) ([]domain.Product, error) {
	const op = "ProductUseCase.ListProducts"

	products, err := p.productRepo.FindAll(ctx, search)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}

// GetProduct возвращает товар по ID или nil, если его нет.
func (p *ProductUseCase) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "ProductUseCase.GetProduct"

	product, err := p.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// CreateProduct создаёт товар. CreatedAt выставляется здесь и больше не меняется.
func (p *ProductUseCase) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	const op = "ProductUseCase.CreateProduct"

	if err := p.validate(in); err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := p.productRepo.Insert(ctx, domain.NewProduct(in, p.clock().UTC()))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// UpdateProduct полностью заменяет name, description и price товара.
// Возвращает nil, если товара с таким ID нет.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error) {
	const op = "ProductUseCase.UpdateProduct"

	if err := p.validate(in); err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := p.productRepo.Update(ctx, id, in)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// DeleteProduct удаляет товар и сообщает, была ли запись удалена.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	const op = "ProductUseCase.DeleteProduct"

	deleted, err := p.productRepo.Delete(ctx, id)
	if err != nil {
		return false, e.Wrap(op, err)
	}

	return deleted, nil
}

// validate проверяет входные данные согласно политике.
// Все ошибки валидации оборачивают e.ErrInvalidInput.
func (p *ProductUseCase) validate(in domain.ProductInput) error {
	if in.Name == "" {
		return fmt.Errorf("%w: %w", e.ErrInvalidInput, e.ErrProductNameRequired)
	}

	if p.policy.MaxNameLength > 0 && utf8.RuneCountInString(in.Name) > p.policy.MaxNameLength {
		return fmt.Errorf("%w: %w", e.ErrInvalidInput, e.ErrProductNameTooLong)
	}

	if p.policy.NonNegativePrice && in.Price.IsNegative() {
		return fmt.Errorf("%w: %w", e.ErrInvalidInput, e.ErrPriceMustBePositive)
	}

	return nil
}
