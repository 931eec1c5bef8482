package messaging

import (
	"context"

	"github.com/ispcore/ipam/internal/domain"
)

// Publisher defines the interface for publishing IPAM events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes an allocation or migration event
	PublishEvent(ctx context.Context, event *domain.Event) error
	// Close closes the connection
	Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event, used when NATS is not configured
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishEvent(context.Context, *domain.Event) error { return nil }

func (noopPublisher) Close() {}
