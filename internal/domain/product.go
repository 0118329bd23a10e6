package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product описывает товар каталога.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal // Валюта не хранится
	CreatedAt   time.Time
}

// ProductInput — данные для создания и полной замены товара.
// Не содержит ID и CreatedAt: они назначаются хранилищем и сервисом.
type ProductInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
}

func NewProductInput(name string, description *string, price decimal.Decimal) ProductInput {
	return ProductInput{
		Name:        name,
		Description: description,
		Price:       price,
	}
}

// DescriptionOrEmpty возвращает описание или пустую строку, если оно не передано.
func (in ProductInput) DescriptionOrEmpty() string {
	if in.Description == nil {
		return ""
	}

	return *in.Description
}

// NewProduct собирает новый товар из входных данных.
func NewProduct(in ProductInput, createdAt time.Time) *Product {
	return &Product{
		Name:        in.Name,
		Description: in.DescriptionOrEmpty(),
		Price:       in.Price,
		CreatedAt:   createdAt,
	}
}

// Apply полностью заменяет изменяемые поля товара значениями из in.
func (p *Product) Apply(in ProductInput) {
	p.Name = in.Name
	p.Description = in.DescriptionOrEmpty()
	p.Price = in.Price
}
