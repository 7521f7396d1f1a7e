package adapter

import (
	"context"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"github.com/r3labs/sse/v2"
)

// maxSSEBufferSize bounds a single event; DeployProcessed payloads carry full effect lists
const maxSSEBufferSize = 8 << 20

// SSEEvent is a raw server-sent event
type SSEEvent struct {
	ID   string
	Data []byte
}

// SSEClient streams server-sent events to enable mocking
//
//go:generate mockgen -source=sse.go -destination=../mocks/sse.go -package=mocks -mock_names=SSEClient=MockSSEClient
type SSEClient interface {
	// Subscribe blocks, calling handler for every event, until ctx ends or the stream fails.
	// A dropped stream is not reconnected.
	Subscribe(ctx context.Context, url string, handler func(SSEEvent)) error
}

// RealSSEClient implements SSEClient with r3labs/sse
type RealSSEClient struct {
	headers map[string]string
}

// NewSSEClient creates a new real SSE client
func NewSSEClient(headers map[string]string) SSEClient {
	return &RealSSEClient{headers: headers}
}

func (c *RealSSEClient) Subscribe(ctx context.Context, url string, handler func(SSEEvent)) error {
	client := sse.NewClient(url, sse.ClientMaxBufferSize(maxSSEBufferSize))
	client.Connection = &http.Client{}
	client.ReconnectStrategy = &backoff.StopBackOff{}
	for k, v := range c.headers {
		client.Headers[k] = v
	}

	return client.SubscribeRawWithContext(ctx, func(msg *sse.Event) {
		if msg == nil || len(msg.Data) == 0 {
			return
		}
		handler(SSEEvent{ID: string(msg.ID), Data: msg.Data})
	})
}
