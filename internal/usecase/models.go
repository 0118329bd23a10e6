package usecase

import "time"

// ValidationPolicy — дополнительные проверки входных данных.
// Нулевое значение отключает все проверки, кроме обязательного имени.
type ValidationPolicy struct {
	NonNegativePrice bool
	MaxNameLength    int // 0 — без ограничения
}

func NewValidationPolicy(nonNegativePrice bool, maxNameLength int) ValidationPolicy {
	return ValidationPolicy{
		NonNegativePrice: nonNegativePrice,
		MaxNameLength:    maxNameLength,
	}
}

// Clock возвращает текущее время; подменяется в тестах.
type Clock func() time.Time
