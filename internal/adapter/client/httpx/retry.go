// Package httpx holds the retry policy shared by the gateway clients:
// transport errors, timeouts and 5xx responses are retried with exponential
// backoff up to a fixed attempt limit, 4xx responses terminate immediately.
package httpx

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  200 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
	}
}

// Do executes the request built by build until a terminal outcome. The
// factory is invoked per attempt because request bodies are single-use.
// The caller owns the returned response body.
func Do(ctx context.Context, client *http.Client, cfg RetryConfig,
	logger *zap.Logger, build func(ctx context.Context) (*http.Request, error)) (*http.Response, error) {

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		req, err := build(ctx)
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if err != nil {
			lastErr = err
			logger.Warn("gateway request failed",
				zap.String("url", req.URL.Path),
				zap.Int("attempt", attempt),
				zap.Error(err))
		} else {
			// 5xx: drain and retry. The final attempt's response is
			// returned to the caller for classification.
			if attempt == cfg.MaxAttempts {
				return resp, nil
			}
			logger.Warn("gateway returned server error",
				zap.String("url", req.URL.Path),
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt))
			_ = resp.Body.Close()
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		delay = time.Duration(float64(delay) * cfg.BackoffFactor)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return nil, lastErr
}
