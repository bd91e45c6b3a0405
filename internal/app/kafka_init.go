package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
)

// initEventPublisher создаёт Kafka-публикатор, если заданы брокеры.
// При недоступном брокере сервис продолжает работу без событий.
func initEventPublisher(brokers []string, topic string, logger *log.Entry) (domain.EventPublisher, *kafka.Producer) {
	if len(brokers) == 0 {
		logger.Info("kafka brokers are not configured, change events are disabled")
		return domain.NoopPublisher{}, nil
	}

	producer, err := kafka.NewProducer(brokers, logger.WithField("layer", "kafka"))
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return domain.NoopPublisher{}, nil
	}

	logger.WithFields(log.Fields{
		"brokers": brokers,
		"topic":   topic,
	}).Info("kafka producer initialized")
	return kafka.NewEventPublisher(producer, topic), producer
}

// closeKafkaProducer закрывает producer, если он был создан.
func closeKafkaProducer(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}
	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
		return
	}
	logger.Info("kafka producer closed")
}
