package kafka

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/TeknoZest/damenschstorefront/internal/config"
)

const HeaderEventType = "event-type"

// Consumer reads catalog change events and hands them to an Invalidator.
type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	invalidator   *Invalidator
	logger        *zap.Logger
	topics        []string
	groupID       string
}

// NewConsumer creates a consumer group on the catalog topic
func NewConsumer(cfg *config.Config, invalidator *Invalidator, logger *zap.Logger) (*Consumer, error) {
	logger.Info("Creating Kafka consumer",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("group_id", cfg.KafkaGroupID),
	)

	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Version = sarama.V2_8_0_0

	saramaConfig.Net.DialTimeout = 10 * time.Second
	saramaConfig.Net.ReadTimeout = 10 * time.Second
	saramaConfig.Net.WriteTimeout = 10 * time.Second
	saramaConfig.Metadata.RefreshFrequency = 10 * time.Minute
	saramaConfig.Metadata.Retry.Max = 3
	saramaConfig.Metadata.Retry.Backoff = 250 * time.Millisecond

	consumerGroup, err := sarama.NewConsumerGroup(cfg.KafkaBrokers, cfg.KafkaGroupID, saramaConfig)
	if err != nil {
		logger.Error("Failed to create Kafka consumer group",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Consumer{
		consumerGroup: consumerGroup,
		invalidator:   invalidator,
		logger:        logger,
		topics:        []string{cfg.KafkaTopicCatalog},
		groupID:       cfg.KafkaGroupID,
	}, nil
}

// Start consumes until ctx is cancelled or the group fails.
func (c *Consumer) Start(ctx context.Context) error {
	handler := &catalogEventHandler{
		invalidator: c.invalidator,
		logger:      c.logger,
	}

	var wg sync.WaitGroup
	var consumeErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			// Consume returns on every rebalance; loop to rejoin.
			if err := c.consumerGroup.Consume(ctx, c.topics, handler); err != nil {
				c.logger.Error("Error from consumer", zap.Error(err))
				consumeErr = err
				return
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		for err := range c.consumerGroup.Errors() {
			errStr := err.Error()
			if strings.Contains(errStr, "no such host") {
				c.logger.Error("Consumer error: Kafka broker hostname could not be resolved",
					zap.Error(err),
					zap.String("hint", "check KAFKA_ADVERTISED_LISTENERS on the broker"),
				)
				continue
			}
			c.logger.Error("Consumer error", zap.Error(err))
		}
	}()

	c.logger.Info("Kafka consumer started for catalog invalidation",
		zap.Strings("topics", c.topics),
		zap.String("group_id", c.groupID),
	)

	wg.Wait()
	return consumeErr
}

// Close closes the consumer group
func (c *Consumer) Close() error {
	return c.consumerGroup.Close()
}

type catalogEventHandler struct {
	invalidator *Invalidator
	logger      *zap.Logger
}

func (h *catalogEventHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *catalogEventHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *catalogEventHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}

			eventType := eventTypeOf(message.Headers)
			if eventType == "" {
				h.logger.Warn("Message without event type, skipping",
					zap.String("topic", message.Topic),
					zap.Int32("partition", message.Partition),
					zap.Int64("offset", message.Offset),
				)
				session.MarkMessage(message, "")
				continue
			}

			if err := h.invalidator.Handle(session.Context(), eventType, message.Value); err != nil {
				h.logger.Error("Failed to invalidate catalog cache",
					zap.String("event_type", eventType),
					zap.Int64("offset", message.Offset),
					zap.Error(err),
				)
			}

			// Invalidation is best effort; a failed message is not redelivered.
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func eventTypeOf(headers []*sarama.RecordHeader) string {
	for _, header := range headers {
		if header != nil && string(header.Key) == HeaderEventType {
			return string(header.Value)
		}
	}
	return ""
}
