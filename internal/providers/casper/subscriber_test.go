package casper_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/cep-market-client/internal/adapter"
	"github.com/feral-file/cep-market-client/internal/clvalue"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/messaging"
	"github.com/feral-file/cep-market-client/internal/mocks"
	"github.com/feral-file/cep-market-client/internal/providers/casper"
)

var (
	nftPackage = strings.Repeat("bb", 32)
	nftRef     = domain.ContractReference{
		ContractHash:        "hash-" + strings.Repeat("aa", 32),
		ContractPackageHash: "hash-" + nftPackage,
	}
	receivedAt = time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
)

type transform struct {
	Key       string      `json:"key"`
	Transform interface{} `json:"transform"`
}

func eventTransform(t *testing.T, payload map[string]string) transform {
	t.Helper()
	jv, err := clvalue.ToJSONValue(clvalue.StringMap(payload))
	require.NoError(t, err)
	return transform{Key: "uref-00-007", Transform: map[string]interface{}{"WriteCLValue": jv}}
}

func deployProcessed(t *testing.T, deployHash string, transforms ...transform) []byte {
	t.Helper()
	all := append([]transform{{Key: "balance-00", Transform: "Identity"}}, transforms...)
	msg := map[string]interface{}{
		"DeployProcessed": map[string]interface{}{
			"deploy_hash": deployHash,
			"block_hash":  "b10c",
			"execution_result": map[string]interface{}{
				"Success": map[string]interface{}{
					"cost":   "1",
					"effect": map[string]interface{}{"operations": []interface{}{}, "transforms": all},
				},
			},
		},
	}
	b, err := json.Marshal(msg)
	require.NoError(t, err)
	return b
}

func mintPayload(pkg, tokenID string) map[string]string {
	return map[string]string{
		"event_type":            string(domain.EventKindMintOne),
		"contract_package_hash": pkg,
		"recipient":             "Key::Account(" + strings.Repeat("01", 32) + ")",
		"token_id":              tokenID,
	}
}

func TestDecodeEvents(t *testing.T) {
	raw := deployProcessed(t, "d1",
		eventTransform(t, mintPayload(nftPackage, "1")),
		eventTransform(t, map[string]string{"name": "not an event"}),
	)

	events, ok := casper.DecodeEvents(raw)
	require.True(t, ok)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventKindMintOne, events[0].Kind)
	assert.Equal(t, "d1", events[0].DeployHash)
	id, ok := events[0].TokenID()
	assert.True(t, ok)
	assert.Equal(t, "1", id)

	_, ok = casper.DecodeEvents([]byte(`{"ApiVersion":"1.4.5"}`))
	assert.False(t, ok)

	_, ok = casper.DecodeEvents([]byte(`{"DeployProcessed":{"deploy_hash":"d2","execution_result":{"Failure":{"error_message":"boom"}}}}`))
	assert.False(t, ok)

	_, ok = casper.DecodeEvents([]byte(`not json`))
	assert.False(t, ok)
}

func TestSubscriber_SubscribeEvents(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]string
		match   bool
	}{
		{
			name:    "exact package hash",
			payload: mintPayload(nftPackage, "1"),
			match:   true,
		},
		{
			name:    "prefixed upper-case package hash",
			payload: mintPayload("contract-package-wasm"+strings.ToUpper(nftPackage), "1"),
			match:   true,
		},
		{
			name:    "other contract",
			payload: mintPayload(strings.Repeat("cc", 32), "1"),
			match:   false,
		},
		{
			name: "kind not subscribed",
			payload: map[string]string{
				"event_type":            string(domain.EventKindApproveToken),
				"contract_package_hash": nftPackage,
				"token_id":              "1",
			},
			match: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			sse := mocks.NewMockSSEClient(ctrl)
			clock := mocks.NewMockClock(ctrl)
			clock.EXPECT().Now().Return(receivedAt).AnyTimes()

			sub, err := casper.NewSubscriber(casper.SubscriberConfig{
				EventStreamURL: "http://node:9999/events/main",
				Contract:       nftRef,
				Kinds:          []domain.EventKind{domain.EventKindMintOne, domain.EventKindTransferToken},
			}, sse, clock)
			require.NoError(t, err)

			raw := deployProcessed(t, "d1", eventTransform(t, tt.payload))
			sse.EXPECT().Subscribe(gomock.Any(), "http://node:9999/events/main", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, handler func(adapter.SSEEvent)) error {
					handler(adapter.SSEEvent{ID: "7", Data: raw})
					return nil
				})

			var got []*domain.ContractEvent
			err = sub.SubscribeEvents(context.Background(), "", func(e *domain.ContractEvent) error {
				got = append(got, e)
				return nil
			})
			assert.True(t, errors.Is(err, domain.ErrSubscriptionFailed))

			if !tt.match {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, domain.EventKindMintOne, got[0].Kind)
			assert.Equal(t, "7", got[0].StreamID)
			assert.Equal(t, receivedAt, got[0].ReceivedAt)
			assert.NotEmpty(t, got[0].ID)
		})
	}
}

func TestSubscriber_OrderAndResume(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sse := mocks.NewMockSSEClient(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(receivedAt).AnyTimes()

	sub, err := casper.NewSubscriber(casper.SubscriberConfig{
		EventStreamURL: "http://node:9999/events/main",
		Contract:       nftRef,
	}, sse, clock)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sse.EXPECT().Subscribe(gomock.Any(), "http://node:9999/events/main?start_from=42", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, handler func(adapter.SSEEvent)) error {
			handler(adapter.SSEEvent{ID: "42", Data: deployProcessed(t, "d1",
				eventTransform(t, mintPayload(nftPackage, "1")),
				eventTransform(t, mintPayload(nftPackage, "2")))})
			handler(adapter.SSEEvent{ID: "43", Data: []byte(`{"BlockAdded":{}}`)})
			handler(adapter.SSEEvent{ID: "44", Data: deployProcessed(t, "d2",
				eventTransform(t, mintPayload(nftPackage, "3")))})
			return errors.New("unexpected EOF")
		})

	var ids []string
	var handler messaging.EventHandler = func(e *domain.ContractEvent) error {
		id, _ := e.TokenID()
		ids = append(ids, id)
		return nil
	}
	err = sub.SubscribeEvents(ctx, "41", handler)
	assert.True(t, errors.Is(err, domain.ErrSubscriptionFailed))
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestSubscriber_ContextCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sse := mocks.NewMockSSEClient(ctrl)
	sub, err := casper.NewSubscriber(casper.SubscriberConfig{
		EventStreamURL: "http://node:9999/events/main",
		Contract:       nftRef,
	}, sse, mocks.NewMockClock(ctrl))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	sse.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ func(adapter.SSEEvent)) error {
			cancel()
			<-ctx.Done()
			return ctx.Err()
		})

	err = sub.SubscribeEvents(ctx, "", func(*domain.ContractEvent) error { return nil })
	assert.Equal(t, context.Canceled, err)
}

func TestNewSubscriber_RequiresContract(t *testing.T) {
	_, err := casper.NewSubscriber(casper.SubscriberConfig{EventStreamURL: "http://x"}, nil, nil)
	assert.True(t, errors.Is(err, domain.ErrMissingContractReference))
}
