package emitter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/cep-market-client/internal/adapter"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/logger"
	"github.com/feral-file/cep-market-client/internal/messaging"
)

// Config holds the configuration for the event emitter
type Config struct {
	Stream          string        // Cursor name of the event stream
	StartFrom       string        // Event id to resume after, overrides the stored cursor
	CursorSaveFreq  uint64        // Save cursor every N events
	CursorSaveDelay time.Duration // Or save cursor every N seconds
}

// CursorStore persists the last processed event stream id
//
//go:generate mockgen -source=emitter.go -destination=../mocks/cursor_store.go -package=mocks -mock_names=CursorStore=MockCursorStore
type CursorStore interface {
	GetStreamCursor(ctx context.Context, stream string) (string, error)
	SetStreamCursor(ctx context.Context, stream string, cursor string) error
}

// MemoryCursorStore keeps cursors for the life of the process, for followers without a database
type MemoryCursorStore struct {
	mu      sync.Mutex
	cursors map[string]string
}

// NewMemoryCursorStore creates an empty in-memory cursor store
func NewMemoryCursorStore() *MemoryCursorStore {
	return &MemoryCursorStore{cursors: map[string]string{}}
}

func (m *MemoryCursorStore) GetStreamCursor(_ context.Context, stream string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursors[stream], nil
}

func (m *MemoryCursorStore) SetStreamCursor(_ context.Context, stream string, cursor string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursors[stream] = cursor
	return nil
}

// Emitter defines the interface for the event emitter
type Emitter interface {
	// Run subscribes to the event stream until ctx is done or the stream fails
	Run(ctx context.Context) error
	// Close closes the emitter and cleans up resources
	Close()
}

// emitter forwards contract events from the node to the publishers
type emitter struct {
	subscriber messaging.Subscriber
	publisher  messaging.Publisher
	store      CursorStore
	config     Config
	clock      adapter.Clock
}

// NewEmitter creates a new event emitter
func NewEmitter(
	sub messaging.Subscriber,
	pub messaging.Publisher,
	st CursorStore,
	cfg Config,
	clock adapter.Clock,
) Emitter {
	if cfg.Stream == "" {
		cfg.Stream = "main"
	}
	return &emitter{
		subscriber: sub,
		publisher:  pub,
		store:      st,
		config:     cfg,
		clock:      clock,
	}
}

// Run resumes from the stored cursor and publishes every event until the subscription ends.
// The cursor is saved every CursorSaveFreq events or CursorSaveDelay, and once more on exit.
func (e *emitter) Run(ctx context.Context) error {
	startFrom := e.config.StartFrom
	if startFrom == "" {
		cursor, err := e.store.GetStreamCursor(ctx, e.config.Stream)
		if err != nil {
			return fmt.Errorf("failed to get stream cursor: %w", err)
		}
		startFrom = cursor
	}
	if startFrom != "" {
		logger.InfoCtx(ctx, "Resuming event stream", zap.String("stream", e.config.Stream), zap.String("after", startFrom))
	} else {
		logger.InfoCtx(ctx, "Starting event stream from the live tip", zap.String("stream", e.config.Stream))
	}

	var (
		pending     uint64
		lastSeen    string
		lastSaved   = startFrom
		lastSaveAt  = e.clock.Now()
		saveCursors = func(saveCtx context.Context) {
			if lastSeen == "" || lastSeen == lastSaved {
				return
			}
			if err := e.store.SetStreamCursor(saveCtx, e.config.Stream, lastSeen); err != nil {
				logger.ErrorCtx(ctx, fmt.Errorf("failed to save stream cursor: %w", err), zap.String("cursor", lastSeen))
				return
			}
			lastSaved = lastSeen
			pending = 0
			lastSaveAt = e.clock.Now()
		}
	)

	handler := func(event *domain.ContractEvent) error {
		if err := e.publisher.PublishEvent(ctx, event); err != nil {
			return fmt.Errorf("failed to publish event %s: %w", event.ID, err)
		}

		if event.StreamID != "" {
			lastSeen = event.StreamID
			pending++
		}
		if pending >= e.config.CursorSaveFreq || e.clock.Since(lastSaveAt) >= e.config.CursorSaveDelay {
			saveCursors(ctx)
		}
		return nil
	}

	err := e.subscriber.SubscribeEvents(ctx, startFrom, handler)

	// the subscriber has drained its dispatch queue, flush what was processed
	saveCursors(context.WithoutCancel(ctx))

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// Close closes the emitter and cleans up resources
func (e *emitter) Close() {
	e.subscriber.Close()
}
