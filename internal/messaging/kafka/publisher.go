package kafka

import (
	"context"

	"github.com/IBM/sarama"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// EventPublisher отправляет доменные события в топик, ключ сообщения — идентификатор ресурса,
// поэтому события одной записи попадают в одну партицию по порядку.
type EventPublisher struct {
	producer *Producer
	topic    string
}

// NewEventPublisher создаёт публикатор. Пустой topic заменяется на TopicStorefrontEvents.
func NewEventPublisher(producer *Producer, topic string) *EventPublisher {
	if topic == "" {
		topic = TopicStorefrontEvents
	}
	return &EventPublisher{producer: producer, topic: topic}
}

// Publish реализует domain.EventPublisher.
func (p *EventPublisher) Publish(ctx context.Context, event domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.producer.PublishEvent(p.topic, event.ResourceID, NewChangeEvent(event), sarama.RecordHeader{
		Key:   []byte(HeaderEventType),
		Value: []byte(event.Type),
	})
}

var _ domain.EventPublisher = (*EventPublisher)(nil)
