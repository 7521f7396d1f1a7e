package jetstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/cep-market-client/internal/adapter"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/mocks"
	natspub "github.com/feral-file/cep-market-client/internal/providers/jetstream"
)

type testMocks struct {
	ctrl   *gomock.Controller
	natsJS *mocks.MockNatsJetStream
	conn   *mocks.MockNatsConn
	js     *mocks.MockJetStream
}

func setupTestPublisher(t *testing.T) *testMocks {
	ctrl := gomock.NewController(t)
	return &testMocks{
		ctrl:   ctrl,
		natsJS: mocks.NewMockNatsJetStream(ctrl),
		conn:   mocks.NewMockNatsConn(ctrl),
		js:     mocks.NewMockJetStream(ctrl),
	}
}

func tearDownTestPublisher(tm *testMocks) {
	tm.ctrl.Finish()
}

func TestPublisher_PublishEvent(t *testing.T) {
	tm := setupTestPublisher(t)
	defer tearDownTestPublisher(tm)
	ctx := context.Background()

	tm.natsJS.EXPECT().Connect("nats://localhost:4222", gomock.Any()).Return(tm.conn, tm.js, nil)
	tm.js.EXPECT().EnsureStream(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, cfg jetstream.StreamConfig) error {
		assert.Equal(t, natspub.DEFAULT_STREAM_NAME, cfg.Name)
		assert.Equal(t, []string{"events.casper.>"}, cfg.Subjects)
		return nil
	})

	pub, err := natspub.NewPublisher(ctx, natspub.Config{URL: "nats://localhost:4222", ReconnectWait: time.Second}, tm.natsJS, adapter.NewJSON())
	require.NoError(t, err)

	event := &domain.ContractEvent{
		ID:                  "01H0000000000000000000000A",
		Kind:                domain.EventKindMintOne,
		ContractPackageHash: "bb",
		DeployHash:          "dd",
		Payload:             map[string]string{"token_id": "3"},
	}
	tm.js.EXPECT().Publish(ctx, "events.casper.cep47_mint_one", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
			var got domain.ContractEvent
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, "3", got.Payload["token_id"])
			return &jetstream.PubAck{Stream: natspub.DEFAULT_STREAM_NAME, Sequence: 1}, nil
		})
	require.NoError(t, pub.PublishEvent(ctx, event))

	tm.conn.EXPECT().Close().Times(1)
	pub.Close()
	pub.Close()
	select {
	case <-pub.CloseChan():
	default:
		t.Fatal("close channel should be closed")
	}
}

func TestPublisher_EnsureStreamFailure(t *testing.T) {
	tm := setupTestPublisher(t)
	defer tearDownTestPublisher(tm)

	tm.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(tm.conn, tm.js, nil)
	tm.js.EXPECT().EnsureStream(gomock.Any(), gomock.Any()).Return(errors.New("stream name already in use"))
	tm.conn.EXPECT().Close()

	_, err := natspub.NewPublisher(context.Background(), natspub.Config{URL: "nats://localhost:4222"}, tm.natsJS, adapter.NewJSON())
	assert.Error(t, err)
}

func TestPublisher_ConnectFailure(t *testing.T) {
	tm := setupTestPublisher(t)
	defer tearDownTestPublisher(tm)

	tm.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nil, nil, errors.New("no servers available"))

	_, err := natspub.NewPublisher(context.Background(), natspub.Config{URL: "nats://localhost:4222"}, tm.natsJS, adapter.NewJSON())
	assert.Error(t, err)
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "events.casper.cep47_transfer_token", natspub.Subject(&domain.ContractEvent{Kind: domain.EventKindTransferToken}))
}
