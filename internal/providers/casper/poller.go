package casper

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/cep-market-client/internal/adapter"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/logger"
)

// PollerConfig holds the finality polling settings
type PollerConfig struct {
	Interval    time.Duration
	MaxAttempts int
}

// StateObserver is notified on every deploy state transition
type StateObserver func(deployHash string, from, to domain.DeployState)

// Poller waits for deploys to reach a final execution result
type Poller struct {
	client   Client
	clock    adapter.Clock
	config   PollerConfig
	observer StateObserver
}

// NewPoller creates a poller, filling unset config with defaults
func NewPoller(client Client, clock adapter.Clock, cfg PollerConfig) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = domain.DEFAULT_POLL_INTERVAL
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = domain.DEFAULT_POLL_MAX_ATTEMPTS
	}
	return &Poller{client: client, clock: clock, config: cfg}
}

// OnStateChange registers the state transition observer
func (p *Poller) OnStateChange(observer StateObserver) {
	p.observer = observer
}

func (p *Poller) transition(hash string, from, to domain.DeployState) {
	if p.observer != nil {
		p.observer(hash, from, to)
	}
}

// Check queries the deploy once. A deploy without execution results is reported as polling.
func (p *Poller) Check(ctx context.Context, deployHash string) (domain.DeployOutcome, error) {
	info, err := p.client.GetDeploy(ctx, deployHash)
	if err != nil {
		return domain.DeployOutcome{}, err
	}
	return info.Outcome(deployHash), nil
}

// Wait blocks until the deploy succeeds and returns its hash
func (p *Poller) Wait(ctx context.Context, deployHash string) (string, error) {
	outcome, err := p.WaitOutcome(ctx, deployHash)
	if err != nil {
		return "", err
	}
	return outcome.DeployHash, nil
}

// WaitOutcome polls until the deploy has an execution result, the attempts run out or ctx is done.
// A failed execution returns the outcome together with a *domain.ContractExecutionError.
func (p *Poller) WaitOutcome(ctx context.Context, deployHash string) (domain.DeployOutcome, error) {
	p.transition(deployHash, domain.DeployStateSubmitted, domain.DeployStatePolling)

	for attempt := 1; attempt <= p.config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return domain.DeployOutcome{}, err
		}

		outcome, err := p.Check(ctx, deployHash)
		if err != nil {
			if ctx.Err() != nil {
				return domain.DeployOutcome{}, ctx.Err()
			}
			logger.WarnCtx(ctx, "Deploy status query failed, treating as pending",
				zap.String("deploy_hash", deployHash),
				zap.Int("attempt", attempt),
				zap.Error(err))
		} else {
			switch outcome.State {
			case domain.DeployStateSuccess:
				p.transition(deployHash, domain.DeployStatePolling, domain.DeployStateSuccess)
				return outcome, nil
			case domain.DeployStateFailure:
				p.transition(deployHash, domain.DeployStatePolling, domain.DeployStateFailure)
				return outcome, &domain.ContractExecutionError{DeployHash: deployHash, Message: outcome.ErrorMessage}
			}
		}

		if attempt == p.config.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return domain.DeployOutcome{}, ctx.Err()
		case <-p.clock.After(p.config.Interval):
		}
	}

	p.transition(deployHash, domain.DeployStatePolling, domain.DeployStateTimedOut)
	logger.WarnCtx(ctx, "Deploy not finalized within polling window",
		zap.String("deploy_hash", deployHash),
		zap.Int("attempts", p.config.MaxAttempts))
	return domain.DeployOutcome{DeployHash: deployHash, State: domain.DeployStateTimedOut},
		&domain.DeployTimeoutError{DeployHash: deployHash, Attempts: p.config.MaxAttempts}
}
