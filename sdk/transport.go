package sdk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yaroslav/vlantrunk/internal/logging"
)

// request describes one logical API call. Body is kept as bytes so every
// retry attempt gets a fresh reader.
type request struct {
	method    string
	operation string
	url       string
	body      []byte
	retryable bool
}

// doRequestWithRetry performs the call, retrying network errors and 5xx
// responses with exponential backoff when the request is retryable.
func (c *Client) doRequestWithRetry(ctx context.Context, r request) (*http.Response, error) {
	attempts := 0
	if r.retryable {
		attempts = c.RetryAttempts
	}

	var resp *http.Response
	var err error

	for attempt := 0; attempt <= attempts; attempt++ {
		resp, err = c.doAttempt(ctx, r, attempt)

		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if errors.Is(err, ErrMissingAuth) {
			return nil, err
		}

		// A 5xx can arrive just as the context ends; report the cancellation.
		if ctxErr := ctx.Err(); ctxErr != nil {
			drainAndCloseBody(resp)
			if err == nil {
				err = ctxErr
			}
			return nil, err
		}

		if attempt == attempts {
			break
		}

		drainAndCloseBody(resp)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.calculateBackoff(attempt)):
		}
	}

	if err != nil {
		if attempts > 0 {
			return nil, fmt.Errorf("%s failed after %d attempts: %w", r.operation, attempts+1, err)
		}
		return nil, fmt.Errorf("%s failed: %w", r.operation, err)
	}

	// The last 5xx response goes back to the caller for error decoding.
	return resp, nil
}

// doAttempt sends a single HTTP request after waiting on the rate limiter.
func (c *Client) doAttempt(ctx context.Context, r request, attempt int) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if err := c.addAuthHeaders(req); err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	elapsed := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	c.logger.Debug("api request",
		zap.String(logging.FieldRequestID, requestID),
		zap.String(logging.FieldMethod, r.method),
		zap.String(logging.FieldOperation, r.operation),
		zap.Int(logging.FieldStatusCode, status),
		zap.Duration(logging.FieldDuration, elapsed),
		zap.Int(logging.FieldAttempt, attempt+1),
		zap.Error(err),
	)

	if c.observer != nil {
		c.observer(r.method, r.operation, status, elapsed)
	}

	return resp, err
}

// calculateBackoff calculates the backoff duration for a retry attempt.
// It uses exponential backoff with jitter.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := float64(c.RetryWaitMin) * math.Pow(2, float64(attempt))

	if backoff > float64(c.RetryWaitMax) {
		backoff = float64(c.RetryWaitMax)
	}

	// Jitter between half and the full backoff.
	jitter := backoff/2 + rand.Float64()*backoff/2

	return time.Duration(jitter)
}

// drainAndCloseBody reads and closes the response body to ensure connection reuse.
func drainAndCloseBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}
