package emitter_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/emitter"
	"github.com/feral-file/cep-market-client/internal/messaging"
	"github.com/feral-file/cep-market-client/internal/mocks"
)

// flakyEmitter fails a fixed number of runs, then blocks until cancelled
type flakyEmitter struct {
	failures int
	runs     int
	cancel   context.CancelFunc
}

func (f *flakyEmitter) Run(ctx context.Context) error {
	f.runs++
	if f.runs <= f.failures {
		return domain.ErrSubscriptionFailed
	}
	f.cancel()
	<-ctx.Done()
	return ctx.Err()
}

func (f *flakyEmitter) Close() {}

func TestRunWithReconnect_RetriesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := &flakyEmitter{failures: 3, cancel: cancel}
	err := emitter.RunWithReconnect(ctx, e, emitter.ReconnectConfig{
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	})

	assert.NoError(t, err)
	assert.Equal(t, 4, e.runs)
}

func TestRunWithReconnect_ResumesSubscriber(t *testing.T) {
	ctrl := gomock.NewController(t)
	subscriber := mocks.NewMockSubscriber(ctrl)
	publisher := mocks.NewMockPublisher(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Unix(0, 0)).AnyTimes()
	clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0)).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cursors := emitter.NewMemoryCursorStore()
	assert.NoError(t, cursors.SetStreamCursor(ctx, "main", "7"))

	gomock.InOrder(
		subscriber.EXPECT().SubscribeEvents(gomock.Any(), "7", gomock.Any()).Return(domain.ErrSubscriptionFailed),
		subscriber.EXPECT().SubscribeEvents(gomock.Any(), "7", gomock.Any()).
			DoAndReturn(func(context.Context, string, messaging.EventHandler) error {
				cancel()
				return nil
			}),
	)

	e := emitter.NewEmitter(subscriber, publisher, cursors, emitter.Config{CursorSaveFreq: 1}, clock)
	err := emitter.RunWithReconnect(ctx, e, emitter.ReconnectConfig{InitialInterval: time.Millisecond})
	assert.NoError(t, err)
}
