// Package idgen выдаёт идентификаторы для новых записей витрины.
package idgen

import (
	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// UUIDGenerator выдаёт UUIDv7: они упорядочены по времени создания,
// поэтому сортировка по ID совпадает с порядком создания записей.
type UUIDGenerator struct{}

// New возвращает генератор идентификаторов по умолчанию.
func New() domain.IDGenerator {
	return UUIDGenerator{}
}

// NewID никогда не возвращает ошибку: при сбое источника времени используется UUIDv4.
func (UUIDGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

var _ domain.IDGenerator = UUIDGenerator{}
