package messaging

import (
	"context"

	"github.com/feral-file/cep-market-client/internal/domain"
)

// Publisher defines the interface for publishing contract events
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a contract event
	PublishEvent(ctx context.Context, event *domain.ContractEvent) error
	// Close closes the connection
	Close()
	// CloseChan returns a channel that is closed when the publisher is closed
	CloseChan() <-chan struct{}
}

// MultiPublisher fans an event out to several publishers in order
type MultiPublisher []Publisher

func (m MultiPublisher) PublishEvent(ctx context.Context, event *domain.ContractEvent) error {
	for _, p := range m {
		if err := p.PublishEvent(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiPublisher) Close() {
	for _, p := range m {
		p.Close()
	}
}

// CloseChan is closed once every publisher is closed
func (m MultiPublisher) CloseChan() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		for _, p := range m {
			<-p.CloseChan()
		}
		close(done)
	}()
	return done
}
