package messaging

import (
	"context"

	"github.com/feral-file/cep-market-client/internal/domain"
)

// EventHandler is called for every contract event matching the subscription
type EventHandler func(event *domain.ContractEvent) error

// Subscriber defines the interface for following the node event stream
//
//go:generate mockgen -source=subscriber.go -destination=../mocks/subscriber.go -package=mocks -mock_names=Subscriber=MockSubscriber
type Subscriber interface {
	// SubscribeEvents streams contract events starting after the fromID stream cursor
	// ("" for the live tip) and blocks until ctx is done or the stream fails.
	// It never reconnects.
	SubscribeEvents(ctx context.Context, fromID string, handler EventHandler) error

	// Close releases the subscriber resources
	Close()
}
