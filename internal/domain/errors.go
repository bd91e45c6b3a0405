package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation — входные данные не прошли проверку (нет обязательного поля, неверный тип, неизвестный статус).
	ErrValidation = errors.New("validation failed")
	// ErrNotFound — запись с указанным идентификатором отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable — хранилище недоступно или вернуло неожиданную ошибку.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrProductNotFound возвращается, если товар не найден в репозитории.
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = fmt.Errorf("order %w", ErrNotFound)
	// ErrReferencesUnresolved — заказ уже записан, но ссылки на товары разрешить не удалось.
	// Повторять запись не нужно, достаточно перечитать заказ.
	ErrReferencesUnresolved = errors.New("order saved, product references not resolved")
	// ErrDuplicateID сигнализирует о повторной вставке записи с тем же идентификатором.
	ErrDuplicateID = errors.New("duplicate id")

	ErrBuyerEmailRequired  = NewValidationError("buyer_email", "is required")
	ErrProductNameRequired = NewValidationError("name", "is required")
	ErrPriceNegative       = NewValidationError("price_minor", "must be non-negative")
	ErrOffsetNegative      = NewValidationError("offset", "must be non-negative")
	ErrLimitNegative       = NewValidationError("limit", "must be non-negative")
)

// ValidationError описывает конкретное нарушение входных данных.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError создаёт ошибку валидации для поля.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + " " + e.Reason
}

// Is позволяет сопоставлять любую ValidationError с ErrValidation через errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsValidation проверяет, является ли ошибка ошибкой валидации.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound проверяет, относится ли ошибка к отсутствующей записи.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsStoreUnavailable проверяет, является ли ошибка сбоем хранилища.
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
