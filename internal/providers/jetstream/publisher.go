package jetstream

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/cep-market-client/internal/adapter"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/logger"
	"github.com/feral-file/cep-market-client/internal/messaging"
)

const (
	// DEFAULT_STREAM_NAME is the JetStream stream holding contract events
	DEFAULT_STREAM_NAME = "CASPER_EVENTS"
	// SubjectPrefix prefixes every contract event subject
	SubjectPrefix = "events.casper"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	MaxAge         time.Duration
}

type publisher struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	json   adapter.JSON
	closed chan struct{}
	once   sync.Once
}

// NewPublisher connects to NATS, makes sure the event stream exists and returns a publisher
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	if cfg.StreamName == "" {
		cfg.StreamName = DEFAULT_STREAM_NAME
	}

	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	err = js.EnsureStream(ctx, jetstream.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: []string{SubjectPrefix + ".>"},
		MaxAge:   cfg.MaxAge,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream %s: %w", cfg.StreamName, err)
	}

	return &publisher{
		nc:     nc,
		js:     js,
		json:   jsonAdapter,
		closed: make(chan struct{}),
	}, nil
}

// PublishEvent publishes a contract event to NATS JetStream.
// The event ID is used as the message ID so redelivered stream events are deduplicated.
func (p *publisher) PublishEvent(ctx context.Context, event *domain.ContractEvent) error {
	logger.DebugCtx(ctx, "Publishing Nats event", zap.String("id", event.ID), zap.String("kind", string(event.Kind)))

	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = p.js.Publish(ctx, Subject(event), data, jetstream.WithMsgID(event.ID))
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Subject returns the NATS subject of an event, e.g. events.casper.cep47_mint_one
func Subject(event *domain.ContractEvent) string {
	return fmt.Sprintf("%s.%s", SubjectPrefix, event.Kind)
}

// Close closes the NATS connection
func (p *publisher) Close() {
	p.once.Do(func() {
		if p.nc != nil {
			p.nc.Close()
		}
		close(p.closed)
	})
}

func (p *publisher) CloseChan() <-chan struct{} {
	return p.closed
}
