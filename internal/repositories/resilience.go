package repositories

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

const (
	defaultBackoff    = 300 * time.Millisecond
	defaultMaxBackoff = 5 * time.Second
)

var (
	ErrCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// RetryPolicy bounds the retries of one upstream call. Zero Backoff and
// MaxBackoff select the package defaults.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
	MaxBackoff time.Duration
}

// StatusError is a non-2xx upstream answer.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error (status %d): %s", e.Code, e.Status)
}

func (e *StatusError) retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= http.StatusInternalServerError
}

// resilientClient wraps an HTTPClient with a circuit breaker and bounded
// exponential backoff. Rate limiting, 5xx answers and transport failures are
// retried; any other non-2xx status is returned at once as a *StatusError.
type resilientClient struct {
	client  HTTPClient
	circuit *gobreaker.CircuitBreaker
	policy  RetryPolicy
}

func newResilientClient(name string, client HTTPClient, policy RetryPolicy) *resilientClient {
	if policy.Backoff <= 0 {
		policy.Backoff = defaultBackoff
	}
	if policy.MaxBackoff <= 0 {
		policy.MaxBackoff = defaultMaxBackoff
	}
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &resilientClient{
		client:  client,
		circuit: cb,
		policy:  policy,
	}
}

// do sends the request built by buildRequest until it succeeds, fails
// permanently or the retry budget is spent. The caller closes the body of a
// returned response.
func (c *resilientClient) do(ctx context.Context, buildRequest func(ctx context.Context) (*http.Request, error)) (*http.Response, error) {
	if c.client == nil {
		return nil, errNoHTTPClient
	}

	var attempt int

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := buildRequest(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		result, err := c.circuit.Execute(func() (interface{}, error) {
			resp, execErr := c.client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return resp, nil
			}

			statusErr := &StatusError{Code: resp.StatusCode, Status: resp.Status}
			if statusErr.retryable() {
				resp.Body.Close()
				return nil, statusErr
			}

			// a client error is not an upstream failure and must not trip the breaker
			resp.Body.Close()
			return statusErr, nil
		})

		if err == nil {
			switch r := result.(type) {
			case *http.Response:
				return r, nil
			case *StatusError:
				return nil, r
			default:
				return nil, fmt.Errorf("unexpected result type from circuit breaker: %T", result)
			}
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt >= c.policy.MaxRetries {
			return nil, err
		}

		delay := c.policy.Backoff * time.Duration(math.Pow(2, float64(attempt)))
		if delay > c.policy.MaxBackoff {
			delay = c.policy.MaxBackoff
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}
