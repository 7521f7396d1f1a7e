package emitter

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/cep-market-client/internal/logger"
)

// ReconnectConfig bounds the wait between stream reconnections
type ReconnectConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// RunWithReconnect runs e until ctx is done, restarting it with exponential backoff
// whenever the stream fails. Every restart resumes from the saved cursor.
func RunWithReconnect(ctx context.Context, e Emitter, cfg ReconnectConfig) error {
	b := backoff.NewExponentialBackOff()
	if cfg.InitialInterval > 0 {
		b.InitialInterval = cfg.InitialInterval
	}
	if cfg.MaxInterval > 0 {
		b.MaxInterval = cfg.MaxInterval
	}
	b.MaxElapsedTime = 0

	operation := func() error {
		startedAt := time.Now()
		err := e.Run(ctx)
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		// a connection that stayed up for a while starts the next wait from scratch
		if time.Since(startedAt) > b.MaxInterval {
			b.Reset()
		}
		if err == nil {
			return errors.New("event stream ended")
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		logger.WarnCtx(ctx, "Event stream stopped, reconnecting", zap.Error(err), zap.Duration("wait", wait))
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
