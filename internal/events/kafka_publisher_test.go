package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/TeknoZest/damenschstorefront/internal/listing"
	"github.com/TeknoZest/damenschstorefront/pkg/retry"
)

func TestEventTypes(t *testing.T) {
	testCases := []struct {
		event    Event
		expected string
	}{
		{ListingViewedEvent{}, TypeListingViewed},
		{ListingIntentDispatchedEvent{}, TypeListingIntentDispatched},
		{VariantSelectedEvent{}, TypeVariantSelected},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.event.EventType())
		})
	}
}

func TestKafkaEventPublisher_Message(t *testing.T) {
	publisher := newKafkaEventPublisher(nil, "storefront.events", zap.NewNop())
	event := ListingIntentDispatchedEvent{
		SessionID:  "s1",
		Category:   "men",
		Intent:     "ADD_FILTER",
		State:      listing.NewState(),
		OccurredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	message, err := publisher.message(event)

	require.NoError(t, err)
	assert.Equal(t, "storefront.events", message.Topic)
	assert.Equal(t, sarama.StringEncoder("s1"), message.Key)

	headers := map[string]string{}
	for _, header := range message.Headers {
		headers[string(header.Key)] = string(header.Value)
	}
	assert.Equal(t, TypeListingIntentDispatched, headers[HeaderEventType])
	assert.NotEmpty(t, headers[HeaderEventID])
	assert.NotEmpty(t, headers[HeaderTimestamp])

	value, err := message.Value.Encode()
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(value, &decoded))
	assert.Equal(t, "ADD_FILTER", decoded["intent"])
}

func TestKafkaEventPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var event VariantSelectedEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		if event.VariantSlug != "tee-red" {
			return errors.New("unexpected variant slug " + event.VariantSlug)
		}
		return nil
	})

	publisher := newKafkaEventPublisher(producer, "storefront.events", zap.NewNop())
	defer publisher.Close()

	err := publisher.Publish(context.Background(), VariantSelectedEvent{SessionID: "s1", VariantSlug: "tee-red"})

	assert.NoError(t, err)
}

func TestKafkaEventPublisher_PublishRetries(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)
	producer.ExpectSendMessageAndSucceed()

	publisher := newKafkaEventPublisher(producer, "storefront.events", zap.NewNop())
	publisher.retry.Backoff = retry.ConstantBackoff(time.Millisecond)
	defer publisher.Close()

	err := publisher.Publish(context.Background(), ListingViewedEvent{SessionID: "s1"})

	assert.NoError(t, err)
}

func TestKafkaEventPublisher_PublishGivesUp(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	for i := 0; i < 3; i++ {
		producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	}

	publisher := newKafkaEventPublisher(producer, "storefront.events", zap.NewNop())
	publisher.retry.Backoff = retry.ConstantBackoff(time.Millisecond)
	defer publisher.Close()

	err := publisher.Publish(context.Background(), ListingViewedEvent{SessionID: "s1"})

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}

func TestInMemoryEventPublisher(t *testing.T) {
	publisher := NewInMemoryEventPublisher(zap.NewNop())

	require.NoError(t, publisher.Publish(context.Background(), ListingViewedEvent{Category: "men"}))
	require.NoError(t, publisher.Publish(context.Background(), VariantSelectedEvent{VariantSlug: "tee-red"}))

	published := publisher.Events()
	require.Len(t, published, 2)
	assert.Equal(t, TypeListingViewed, published[0].EventType())
	assert.Equal(t, TypeVariantSelected, published[1].EventType())
}

func TestInMemoryEventPublisher_KeepsMostRecent(t *testing.T) {
	publisher := NewInMemoryEventPublisher(zap.NewNop())

	for i := 0; i <= inMemoryEventLimit; i++ {
		require.NoError(t, publisher.Publish(context.Background(), ListingViewedEvent{Total: i}))
	}

	published := publisher.Events()
	require.Len(t, published, inMemoryEventLimit)
	assert.Equal(t, 1, published[0].(ListingViewedEvent).Total)
	assert.Equal(t, inMemoryEventLimit, published[len(published)-1].(ListingViewedEvent).Total)
}
