// Package events publishes storefront analytics events: what shoppers view,
// which listing intents they dispatch and which variants they pick.
package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/TeknoZest/damenschstorefront/internal/listing"
)

const (
	TypeListingViewed           = "ListingViewed"
	TypeListingIntentDispatched = "ListingIntentDispatched"
	TypeVariantSelected         = "VariantSelected"
)

// Event is anything the storefront publishes. Events of one session share a
// partition key so they stay ordered.
type Event interface {
	EventType() string
	PartitionKey() string
}

// EventPublisher defines the interface for publishing storefront events
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// ListingViewedEvent is published when a listing page is served.
type ListingViewedEvent struct {
	SessionID    string        `json:"sessionId"`
	Category     string        `json:"category"`
	Query        listing.Query `json:"query"`
	Total        int           `json:"total"`
	FromSnapshot bool          `json:"fromSnapshot"`
	OccurredAt   time.Time     `json:"occurredAt"`
}

// ListingIntentDispatchedEvent is published when an intent was applied.
type ListingIntentDispatchedEvent struct {
	SessionID  string        `json:"sessionId"`
	Category   string        `json:"category"`
	Intent     string        `json:"intent"`
	State      listing.State `json:"state"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// VariantSelectedEvent is published when a shopper picks a variant.
type VariantSelectedEvent struct {
	SessionID   string    `json:"sessionId"`
	ProductSlug string    `json:"productSlug"`
	FieldCode   string    `json:"fieldCode"`
	FieldValue  string    `json:"fieldValue"`
	VariantSlug string    `json:"variantSlug"`
	StockCode   string    `json:"stockCode,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func (ListingViewedEvent) EventType() string           { return TypeListingViewed }
func (ListingIntentDispatchedEvent) EventType() string { return TypeListingIntentDispatched }
func (VariantSelectedEvent) EventType() string         { return TypeVariantSelected }

func (e ListingViewedEvent) PartitionKey() string           { return e.SessionID }
func (e ListingIntentDispatchedEvent) PartitionKey() string { return e.SessionID }
func (e VariantSelectedEvent) PartitionKey() string         { return e.SessionID }

// inMemoryEventLimit bounds the events an InMemoryEventPublisher retains.
const inMemoryEventLimit = 1000

// InMemoryEventPublisher keeps the most recent published events in memory.
// It is used when Kafka is disabled.
type InMemoryEventPublisher struct {
	mu     sync.Mutex
	logger *zap.Logger
	events []Event
}

// NewInMemoryEventPublisher creates a new in-memory event publisher
func NewInMemoryEventPublisher(logger *zap.Logger) *InMemoryEventPublisher {
	return &InMemoryEventPublisher{
		logger: logger,
		events: make([]Event, 0),
	}
}

func (p *InMemoryEventPublisher) Publish(ctx context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.events) == inMemoryEventLimit {
		copy(p.events, p.events[1:])
		p.events = p.events[:len(p.events)-1]
	}
	p.events = append(p.events, event)
	p.logger.Debug("Event published (in-memory)", zap.String("event_type", event.EventType()))
	return nil
}

// Events returns a copy of everything published so far.
func (p *InMemoryEventPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

func (p *InMemoryEventPublisher) Close() error {
	return nil
}
