package domain

import (
	"context"
	"time"
)

// IDGenerator выдаёт уникальные идентификаторы для новых записей. Генерация не может завершиться ошибкой.
type IDGenerator interface {
	NewID() string
}

// Resource — тип сущности витрины.
type Resource string

const (
	ResourceProduct Resource = "product"
	ResourceOrder   Resource = "order"
)

// EventType — тип события об изменении ресурса.
type EventType string

const (
	EventProductCreated     EventType = "product.created"
	EventProductUpdated     EventType = "product.updated"
	EventProductDeleted     EventType = "product.deleted"
	EventOrderCreated       EventType = "order.created"
	EventOrderUpdated       EventType = "order.updated"
	EventOrderStatusChanged EventType = "order.status_changed"
	EventOrderDeleted       EventType = "order.deleted"
)

// Event описывает изменение ресурса для внешних подписчиков.
type Event struct {
	Type       EventType
	Resource   Resource
	ResourceID string
	// Payload — произвольные данные события, сериализуются в JSON.
	Payload    map[string]any
	OccurredAt time.Time
}

// EventPublisher публикует события об изменениях. Доставка best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher отбрасывает события; используется, когда брокер не настроен.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
