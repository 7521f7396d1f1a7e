package casper_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/cep-market-client/internal/adapter"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/mocks"
	"github.com/feral-file/cep-market-client/internal/providers/casper"
)

const testDeployHash = "5f1e0d8a0c9b"

type testPollerMocks struct {
	ctrl   *gomock.Controller
	client *mocks.MockCasperClient
	clock  *mocks.MockClock
	poller *casper.Poller
	seen   [][2]domain.DeployState
}

func setupTestPoller(t *testing.T, maxAttempts int) *testPollerMocks {
	ctrl := gomock.NewController(t)
	tm := &testPollerMocks{
		ctrl:   ctrl,
		client: mocks.NewMockCasperClient(ctrl),
		clock:  mocks.NewMockClock(ctrl),
	}

	tm.clock.EXPECT().After(time.Second).DoAndReturn(func(time.Duration) <-chan time.Time {
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}).AnyTimes()

	tm.poller = casper.NewPoller(tm.client, tm.clock, casper.PollerConfig{Interval: time.Second, MaxAttempts: maxAttempts})
	tm.poller.OnStateChange(func(hash string, from, to domain.DeployState) {
		assert.Equal(t, testDeployHash, hash)
		tm.seen = append(tm.seen, [2]domain.DeployState{from, to})
	})
	return tm
}

func tearDownTestPoller(tm *testPollerMocks) {
	tm.ctrl.Finish()
}

func pending() *casper.DeployInfo {
	return &casper.DeployInfo{}
}

func succeeded() *casper.DeployInfo {
	info := &casper.DeployInfo{ExecutionResults: make([]casper.ExecutionResult, 1)}
	info.ExecutionResults[0].BlockHash = "b10c"
	info.ExecutionResults[0].Result.Success = &casper.ExecutionSuccess{Cost: "2500000000"}
	return info
}

func failed(msg string) *casper.DeployInfo {
	info := &casper.DeployInfo{ExecutionResults: make([]casper.ExecutionResult, 1)}
	info.ExecutionResults[0].Result.Failure = &casper.ExecutionFailure{Cost: "100", ErrorMessage: msg}
	return info
}

func TestPoller_SuccessAfterPendingAttempts(t *testing.T) {
	tm := setupTestPoller(t, 300)
	defer tearDownTestPoller(tm)

	gomock.InOrder(
		tm.client.EXPECT().GetDeploy(gomock.Any(), testDeployHash).Return(pending(), nil).Times(5),
		tm.client.EXPECT().GetDeploy(gomock.Any(), testDeployHash).Return(succeeded(), nil).Times(1),
	)

	hash, err := tm.poller.Wait(context.Background(), testDeployHash)
	require.NoError(t, err)
	assert.Equal(t, testDeployHash, hash)
	assert.Equal(t, [][2]domain.DeployState{
		{domain.DeployStateSubmitted, domain.DeployStatePolling},
		{domain.DeployStatePolling, domain.DeployStateSuccess},
	}, tm.seen)
}

func TestPoller_TimeoutAfterExactlyMaxAttempts(t *testing.T) {
	tm := setupTestPoller(t, 7)
	defer tearDownTestPoller(tm)

	tm.client.EXPECT().GetDeploy(gomock.Any(), testDeployHash).Return(pending(), nil).Times(7)

	outcome, err := tm.poller.WaitOutcome(context.Background(), testDeployHash)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDeployTimeout))

	var timeoutErr *domain.DeployTimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, 7, timeoutErr.Attempts)
	assert.Equal(t, testDeployHash, timeoutErr.DeployHash)
	assert.Equal(t, domain.DeployStateTimedOut, outcome.State)
	assert.Equal(t, domain.DeployStateTimedOut, tm.seen[len(tm.seen)-1][1])
}

func TestPoller_ExecutionFailure(t *testing.T) {
	tm := setupTestPoller(t, 300)
	defer tearDownTestPoller(tm)

	tm.client.EXPECT().GetDeploy(gomock.Any(), testDeployHash).Return(failed("User error: 1"), nil)

	outcome, err := tm.poller.WaitOutcome(context.Background(), testDeployHash)
	var execErr *domain.ContractExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, "User error: 1", execErr.Message)
	assert.Equal(t, domain.DeployStateFailure, outcome.State)
	assert.Equal(t, domain.DeployStateFailure, tm.seen[len(tm.seen)-1][1])
}

func TestPoller_TransientErrorCountsAsPending(t *testing.T) {
	tm := setupTestPoller(t, 300)
	defer tearDownTestPoller(tm)

	gomock.InOrder(
		tm.client.EXPECT().GetDeploy(gomock.Any(), testDeployHash).Return(nil, errors.New("connection reset")),
		tm.client.EXPECT().GetDeploy(gomock.Any(), testDeployHash).Return(succeeded(), nil),
	)

	outcome, err := tm.poller.WaitOutcome(context.Background(), testDeployHash)
	require.NoError(t, err)
	assert.Equal(t, "b10c", outcome.BlockHash)
	assert.Equal(t, "2500000000", outcome.Cost)
}

func TestPoller_Cancelled(t *testing.T) {
	tm := setupTestPoller(t, 300)
	defer tearDownTestPoller(tm)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tm.poller.Wait(ctx, testDeployHash)
	assert.Equal(t, context.Canceled, err)
}

func TestPoller_CancelledWhileWaiting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockCasperClient(ctrl)
	clock := mocks.NewMockClock(ctrl)
	ctx, cancel := context.WithCancel(context.Background())

	client.EXPECT().GetDeploy(gomock.Any(), testDeployHash).DoAndReturn(func(context.Context, string) (*casper.DeployInfo, error) {
		cancel()
		return pending(), nil
	})
	clock.EXPECT().After(gomock.Any()).Return(make(chan time.Time)).AnyTimes()

	poller := casper.NewPoller(client, clock, casper.PollerConfig{})
	_, err := poller.Wait(ctx, testDeployHash)
	assert.Equal(t, context.Canceled, err)
}

func TestPoller_Check(t *testing.T) {
	tm := setupTestPoller(t, 300)
	defer tearDownTestPoller(tm)

	tm.client.EXPECT().GetDeploy(gomock.Any(), testDeployHash).Return(pending(), nil)

	outcome, err := tm.poller.Check(context.Background(), testDeployHash)
	require.NoError(t, err)
	assert.Equal(t, domain.DeployStatePolling, outcome.State)
	assert.Empty(t, tm.seen)
}

func TestPoller_OneNodeQueryPerAttempt(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	httpClient := adapter.NewHTTPClientWithRetry(time.Second, adapter.RetryConfig{
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		MaxElapsedTime:  300 * time.Millisecond,
	})
	client := casper.NewClient(srv.URL, httpClient, adapter.NewJSON())
	poller := casper.NewPoller(client, adapter.NewClock(), casper.PollerConfig{Interval: time.Millisecond, MaxAttempts: 3})

	_, err := poller.WaitOutcome(context.Background(), testDeployHash)

	var timeoutErr *domain.DeployTimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, 3, timeoutErr.Attempts)
	assert.Equal(t, int32(3), requests.Load())
}
