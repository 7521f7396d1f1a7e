package messaging

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/logger"
)

// Topic names an in-process channel of the bus
type Topic string

const (
	// TopicContractEvent carries *domain.ContractEvent
	TopicContractEvent Topic = "contract.event"
	// TopicWalletChanged carries domain.WalletState
	TopicWalletChanged Topic = "wallet.changed"
	// TopicDeployFinalized carries domain.DeployOutcome
	TopicDeployFinalized Topic = "deploy.finalized"
)

// BusHandler receives messages published on a topic
type BusHandler func(ctx context.Context, msg interface{})

type subscription struct {
	id      uint64
	handler BusHandler
}

// Bus is an in-process observer. Handlers run synchronously in publish order.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[Topic][]subscription
	closed chan struct{}
	once   sync.Once
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		subs:   make(map[Topic][]subscription),
		closed: make(chan struct{}),
	}
}

// Subscribe registers handler on topic and returns a function that removes it
func (b *Bus) Subscribe(topic Topic, handler BusHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.subs[topic]
		for i, s := range subs {
			if s.id == id {
				b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers msg to every handler of topic
func (b *Bus) Publish(ctx context.Context, topic Topic, msg interface{}) {
	select {
	case <-b.closed:
		return
	default:
	}

	b.mu.RLock()
	subs := append([]subscription(nil), b.subs[topic]...)
	b.mu.RUnlock()

	logger.DebugCtx(ctx, "Bus publish", zap.String("topic", string(topic)), zap.Int("handlers", len(subs)))
	for _, s := range subs {
		s.handler(ctx, msg)
	}
}

// PublishEvent publishes a contract event on TopicContractEvent
func (b *Bus) PublishEvent(ctx context.Context, event *domain.ContractEvent) error {
	b.Publish(ctx, TopicContractEvent, event)
	return nil
}

// Close stops delivery of further messages
func (b *Bus) Close() {
	b.once.Do(func() { close(b.closed) })
}

func (b *Bus) CloseChan() <-chan struct{} {
	return b.closed
}
