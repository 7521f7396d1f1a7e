package casper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/alitto/pond/v2"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/cep-market-client/internal/adapter"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/logger"
	"github.com/feral-file/cep-market-client/internal/messaging"
)

// DEFAULT_DISPATCH_QUEUE_SIZE bounds events waiting for the handler
const DEFAULT_DISPATCH_QUEUE_SIZE = 1024

// SubscriberConfig holds the configuration for the event stream subscription
type SubscriberConfig struct {
	EventStreamURL string                   // e.g. http://localhost:9999/events/main
	Contract       domain.ContractReference // contract whose events are delivered
	Kinds          []domain.EventKind       // empty means every CEP-47 kind
	QueueSize      int
}

type deployProcessed struct {
	DeployHash      string `json:"deploy_hash"`
	BlockHash       string `json:"block_hash"`
	ExecutionResult ExecutionOutcome `json:"execution_result"`
}

type streamMessage struct {
	DeployProcessed *deployProcessed `json:"DeployProcessed"`
}

// DecodeEvents extracts every Map<String,String> event written by a successful DeployProcessed message.
// ok is false when the message is not a successful DeployProcessed.
func DecodeEvents(raw []byte) ([]domain.ContractEvent, bool) {
	var msg streamMessage
	if err := json.Unmarshal(raw, &msg); err != nil || msg.DeployProcessed == nil {
		return nil, false
	}
	dp := msg.DeployProcessed
	if dp.ExecutionResult.Success == nil {
		return nil, false
	}

	var events []domain.ContractEvent
	for _, t := range dp.ExecutionResult.Success.Effect.Transforms {
		jv, ok := t.WriteCLValue()
		if !ok {
			continue
		}
		v, err := jv.Value()
		if err != nil {
			continue
		}
		payload, ok := v.AsStringMap()
		if !ok {
			continue
		}
		kind, hasKind := payload["event_type"]
		pkg, hasPkg := payload["contract_package_hash"]
		if !hasKind || !hasPkg {
			continue
		}

		events = append(events, domain.ContractEvent{
			Kind:                domain.EventKind(kind),
			ContractPackageHash: pkg,
			DeployHash:          dp.DeployHash,
			Payload:             payload,
		})
	}
	return events, true
}

type casperSubscriber struct {
	config SubscriberConfig
	sse    adapter.SSEClient
	clock  adapter.Clock
	kinds  map[domain.EventKind]bool
	cancel context.CancelFunc
}

// NewSubscriber creates a new event stream subscriber
func NewSubscriber(cfg SubscriberConfig, sse adapter.SSEClient, clock adapter.Clock) (messaging.Subscriber, error) {
	if err := cfg.Contract.Validate(); err != nil {
		return nil, err
	}
	if cfg.EventStreamURL == "" {
		return nil, fmt.Errorf("event stream url is required")
	}
	if len(cfg.Kinds) == 0 {
		cfg.Kinds = domain.AllEventKinds
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DEFAULT_DISPATCH_QUEUE_SIZE
	}

	kinds := make(map[domain.EventKind]bool, len(cfg.Kinds))
	for _, k := range cfg.Kinds {
		kinds[k] = true
	}
	return &casperSubscriber{config: cfg, sse: sse, clock: clock, kinds: kinds}, nil
}

// Matches reports whether an event belongs to the configured contract and kinds
func (s *casperSubscriber) Matches(e domain.ContractEvent) bool {
	return s.kinds[e.Kind] && s.config.Contract.MatchesPackage(e.ContractPackageHash)
}

// streamURL resumes after fromID when it is a numeric stream index
func (s *casperSubscriber) streamURL(fromID string) (string, error) {
	u, err := url.Parse(s.config.EventStreamURL)
	if err != nil {
		return "", fmt.Errorf("invalid event stream url: %w", err)
	}
	if fromID = strings.TrimSpace(fromID); fromID != "" {
		next := fromID
		if n, err := strconv.ParseUint(fromID, 10, 64); err == nil {
			next = strconv.FormatUint(n+1, 10)
		}
		q := u.Query()
		q.Set("start_from", next)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// SubscribeEvents follows the event stream and calls handler once per matching event, in stream order
func (s *casperSubscriber) SubscribeEvents(ctx context.Context, fromID string, handler messaging.EventHandler) error {
	streamURL, err := s.streamURL(fromID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	defer cancel()

	// a single worker keeps handler calls in stream order
	pool := pond.NewPool(1, pond.WithQueueSize(s.config.QueueSize), pond.WithContext(ctx))
	defer func() {
		pool.StopAndWait()
		logger.InfoCtx(ctx, "Casper event dispatch stopped",
			zap.Uint64("completed", pool.CompletedTasks()),
			zap.Uint64("failed", pool.FailedTasks()))
	}()

	logger.InfoCtx(ctx, "Subscribing to casper event stream",
		zap.String("url", streamURL),
		zap.String("contract_package_hash", s.config.Contract.ContractPackageHash))

	err = s.sse.Subscribe(ctx, streamURL, func(msg adapter.SSEEvent) {
		events, ok := DecodeEvents(msg.Data)
		if !ok {
			return
		}

		for i := range events {
			event := events[i]
			if !s.Matches(event) {
				logger.DebugCtx(ctx, "Skipping unrelated contract event",
					zap.String("event_type", string(event.Kind)),
					zap.String("contract_package_hash", event.ContractPackageHash))
				continue
			}
			event.ID = ulid.Make().String()
			event.StreamID = msg.ID
			event.ReceivedAt = s.clock.Now()

			pool.SubmitErr(func() error {
				if err := handler(&event); err != nil {
					logger.ErrorCtx(ctx, errors.New("error handling contract event"),
						zap.Error(err),
						zap.String("event_type", string(event.Kind)),
						zap.String("deploy_hash", event.DeployHash))
					return err
				}
				return nil
			})
		}
	})

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSubscriptionFailed, err)
	}
	return fmt.Errorf("%w: event stream closed", domain.ErrSubscriptionFailed)
}

// Close stops a running subscription
func (s *casperSubscriber) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	logger.Info("Casper event stream subscription closed")
}
