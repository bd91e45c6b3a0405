package kafka

import (
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// TopicStorefrontEvents — топик событий об изменениях товаров и заказов.
const TopicStorefrontEvents = "storefront.events"

// HeaderEventType дублирует тип события в заголовке, чтобы подписчики могли фильтровать без разбора тела.
const HeaderEventType = "x-event-type"

// ChangeEvent — JSON-конверт события в Kafka.
type ChangeEvent struct {
	EventType  domain.EventType `json:"event_type"`
	Resource   domain.Resource  `json:"resource"`
	ResourceID string           `json:"resource_id"`
	Timestamp  time.Time        `json:"timestamp"`
	Payload    map[string]any   `json:"payload,omitempty"`
}

// NewChangeEvent переводит доменное событие в формат сообщения.
func NewChangeEvent(event domain.Event) *ChangeEvent {
	ts := event.OccurredAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return &ChangeEvent{
		EventType:  event.Type,
		Resource:   event.Resource,
		ResourceID: event.ResourceID,
		Timestamp:  ts,
		Payload:    event.Payload,
	}
}
