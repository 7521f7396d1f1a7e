package adapter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/cep-market-client/internal/logger"
)

// HTTPClient defines an interface for HTTP client operations to enable mocking
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// PostJSON posts a JSON body and retries transient failures (network errors, 429, 5xx)
	PostJSON(ctx context.Context, url string, body []byte) ([]byte, error)

	// PostJSONOnce posts a JSON body exactly once
	PostJSONOnce(ctx context.Context, url string, body []byte) ([]byte, error)

	// Get performs a GET request with the same retry policy as PostJSON
	Get(ctx context.Context, url string) ([]byte, error)
}

// RetryConfig tunes the exponential backoff used by retrying calls
type RetryConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryConfig is used by NewHTTPClient
var DefaultRetryConfig = RetryConfig{
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     10 * time.Second,
	MaxElapsedTime:  time.Minute,
}

// RealHTTPClient implements HTTPClient using the standard http package
type RealHTTPClient struct {
	client *http.Client
	retry  RetryConfig
}

// NewHTTPClient creates a new real HTTP client
func NewHTTPClient(timeout time.Duration) HTTPClient {
	return NewHTTPClientWithRetry(timeout, DefaultRetryConfig)
}

// NewHTTPClientWithRetry creates a new real HTTP client with a custom retry policy
func NewHTTPClientWithRetry(timeout time.Duration, retry RetryConfig) HTTPClient {
	return &RealHTTPClient{
		client: &http.Client{Timeout: timeout},
		retry:  retry,
	}
}

// retryableStatus reports whether a response status is worth another attempt
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// do executes one request built by newReq and returns the body of a 200 response
func (c *RealHTTPClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("failed to close response body", zap.Error(err), zap.String("url", req.URL.String()))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
		if retryableStatus(resp.StatusCode) {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}

	return body, nil
}

// doWithRetry rebuilds and executes the request until it succeeds, fails permanently or ctx ends
func (c *RealHTTPClient) doWithRetry(ctx context.Context, newReq func() (*http.Request, error)) ([]byte, error) {
	var respBody []byte

	operation := func() error {
		req, err := newReq()
		if err != nil {
			return backoff.Permanent(err)
		}
		respBody, err = c.do(req)
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retry.InitialInterval
	b.MaxInterval = c.retry.MaxInterval
	b.MaxElapsedTime = c.retry.MaxElapsedTime

	notify := func(err error, wait time.Duration) {
		logger.WarnCtx(ctx, "request failed, retrying", zap.Error(err), zap.Duration("wait", wait))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return nil, fmt.Errorf("request failed after retries: %w", err)
	}

	return respBody, nil
}

func newJSONPost(ctx context.Context, url string, body []byte) func() (*http.Request, error) {
	return func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		return req, nil
	}
}

// PostJSON posts a JSON body and retries transient failures
func (c *RealHTTPClient) PostJSON(ctx context.Context, url string, body []byte) ([]byte, error) {
	return c.doWithRetry(ctx, newJSONPost(ctx, url, body))
}

// PostJSONOnce posts a JSON body exactly once
func (c *RealHTTPClient) PostJSONOnce(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := newJSONPost(ctx, url, body)()
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// Get performs a GET request with retry
func (c *RealHTTPClient) Get(ctx context.Context, url string) ([]byte, error) {
	return c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		return req, nil
	})
}
