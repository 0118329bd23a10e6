package gateway

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ProductsPath — базовый путь REST-ресурса товаров.
const ProductsPath = "/api/products"

// Product — товар в представлении REST API.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ProductInput — тело запросов на создание и обновление товара.
type ProductInput struct {
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
}

// MarshalJSON выводит цену JSON-числом без потери точности.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          int64       `json:"id"`
		Name        string      `json:"name"`
		Description string      `json:"description"`
		Price       json.Number `json:"price"`
		CreatedAt   time.Time   `json:"createdAt"`
	}{p.ID, p.Name, p.Description, json.Number(p.Price.String()), p.CreatedAt})
}

func (in ProductInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name        string      `json:"name"`
		Description *string     `json:"description,omitempty"`
		Price       json.Number `json:"price"`
	}{in.Name, in.Description, json.Number(in.Price.String())})
}

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// Result — итог операции адаптера: статус, тело и, для созданного ресурса, его адрес.
type Result struct {
	Status   int
	Body     any
	Location string
}

func NewResult(status int, body any) Result {
	return Result{Status: status, Body: body}
}

func NewErrorResult(status int, message string) Result {
	return Result{Status: status, Body: NewErrorResponse(status, message)}
}
