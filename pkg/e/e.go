package e

import "fmt"

var (
	// 400 Bad Request
	ErrInvalidInput        = fmt.Errorf("invalid input")
	ErrProductNameRequired = fmt.Errorf("product name is required")
	ErrProductNameTooLong  = fmt.Errorf("product name is too long")
	ErrPriceMustBePositive = fmt.Errorf("price must not be negative")
	ErrInvalidProductID    = fmt.Errorf("invalid product id")
	ErrInvalidRequestBody  = fmt.Errorf("invalid request body")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Ошибки взаимодействия с catalog-сервисом
	ErrUpstreamUnavailable = fmt.Errorf("catalog service unavailable")
	ErrUpstreamResponse    = fmt.Errorf("catalog service returned an error")
	ErrEmptyUpstreamData   = fmt.Errorf("no data returned from catalog service")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrUnknownStorageDriver = fmt.Errorf("unknown storage driver")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
