package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TeknoZest/damenschstorefront/internal/config"
	"github.com/TeknoZest/damenschstorefront/pkg/retry"
)

const (
	HeaderEventType = "event-type"
	HeaderEventID   = "event-id"
	HeaderTimestamp = "timestamp"
)

// KafkaEventPublisher implements EventPublisher using Kafka
type KafkaEventPublisher struct {
	producer sarama.SyncProducer
	topic    string
	retry    retry.Config
	logger   *zap.Logger
}

// NewKafkaEventPublisher creates a sync producer for the storefront topic
func NewKafkaEventPublisher(cfg *config.Config, logger *zap.Logger) (*KafkaEventPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Version = sarama.V2_8_0_0

	saramaConfig.Net.DialTimeout = 10 * time.Second
	saramaConfig.Net.ReadTimeout = 10 * time.Second
	saramaConfig.Net.WriteTimeout = 10 * time.Second

	producer, err := sarama.NewSyncProducer(cfg.KafkaBrokers, saramaConfig)
	if err != nil {
		logger.Error("Failed to create Kafka producer",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Info("Kafka producer created",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopicStorefront),
	)
	return newKafkaEventPublisher(producer, cfg.KafkaTopicStorefront, logger), nil
}

func newKafkaEventPublisher(producer sarama.SyncProducer, topic string, logger *zap.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer: producer,
		topic:    topic,
		retry: retry.Config{
			MaxAttempts: 3,
			Backoff:     retry.ExponentialBackoff(100 * time.Millisecond),
		},
		logger: logger,
	}
}

// Publish sends event with up to three attempts.
func (p *KafkaEventPublisher) Publish(ctx context.Context, event Event) error {
	message, err := p.message(event)
	if err != nil {
		return err
	}

	attempt := 0
	err = retry.Do(ctx, p.retry, func() error {
		attempt++
		partition, offset, err := p.producer.SendMessage(message)
		if err != nil {
			p.logger.Warn("Failed to publish event to Kafka",
				zap.String("event_type", event.EventType()),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}
		p.logger.Debug("Event published to Kafka",
			zap.String("topic", p.topic),
			zap.String("event_type", event.EventType()),
			zap.Int32("partition", partition),
			zap.Int64("offset", offset),
		)
		return nil
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.EventType(), err)
	}
	return nil
}

func (p *KafkaEventPublisher) message(event Event) (*sarama.ProducerMessage, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(HeaderEventType), Value: []byte(event.EventType())},
			{Key: []byte(HeaderEventID), Value: []byte(uuid.New().String())},
			{Key: []byte(HeaderTimestamp), Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}
	if key := event.PartitionKey(); key != "" {
		message.Key = sarama.StringEncoder(key)
	}
	return message, nil
}

func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
