package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dhoini/CRM-service/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// Топики событий CRM
const (
	TopicCustomerCreated    = "customer_created"
	TopicCustomerUpdated    = "customer_updated"
	TopicCustomerDeleted    = "customer_deleted"
	TopicOrderCreated       = "order_created"
	TopicOrderStatusChanged = "order_status_changed"
	TopicOrderDeleted       = "order_deleted"
)

// Producer определяет интерфейс для публикации событий CRM в Kafka.
// Ключ сообщения используется Kafka для партиционирования: все события
// одной сущности попадают в одну партицию и сохраняют порядок.
type Producer interface {
	PublishEvent(ctx context.Context, topic, key string, payload interface{}) error
	Close() error
}

// kafkaProducer реализует интерфейс Producer, используя segmentio/kafka-go
type kafkaProducer struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewProducer создает и настраивает новый продюсер Kafka
func NewProducer(brokers []string, log *logger.Logger) (Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are not configured")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	log.Infow("Kafka producer initialized", "brokers", brokers)

	return &kafkaProducer{
		writer: writer,
		log:    log,
	}, nil
}

// PublishEvent сериализует payload в JSON и отправляет в указанный топик
func (k *kafkaProducer) PublishEvent(ctx context.Context, topic, key string, payload interface{}) error {
	value, err := json.Marshal(payload)
	if err != nil {
		k.log.Errorw("Failed to marshal event payload", "error", err, "topic", topic, "key", key)
		return fmt.Errorf("kafka: failed to marshal message data: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	writeCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := k.writer.WriteMessages(writeCtx, message); err != nil {
		k.log.Errorw("Failed to write message to Kafka", "error", err, "topic", topic, "key", key)
		return fmt.Errorf("kafka: failed to write message: %w", err)
	}

	k.log.Debugw("Event published", "topic", topic, "key", key)
	return nil
}

// Close закрывает соединение продюсера Kafka
func (k *kafkaProducer) Close() error {
	return k.writer.Close()
}

// NopProducer заглушка, используемая когда Kafka не сконфигурирована
type NopProducer struct{}

// PublishEvent ничего не делает
func (NopProducer) PublishEvent(ctx context.Context, topic, key string, payload interface{}) error {
	return nil
}

// Close ничего не делает
func (NopProducer) Close() error {
	return nil
}
