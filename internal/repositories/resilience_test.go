package repositories

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingClient struct {
	calls atomic.Int32
}

func (f *failingClient) Do(*http.Request) (*http.Response, error) {
	f.calls.Add(1)
	return nil, errors.New("connection refused")
}

func getRequest(url string) func(ctx context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}
}

func TestResilientClient_RetriesTransportErrors(t *testing.T) {
	client := &failingClient{}
	rc := newResilientClient("test", client, fastPolicy(2))

	_, err := rc.do(context.Background(), getRequest("http://example.invalid"))
	assert.ErrorContains(t, err, "connection refused")
	assert.Equal(t, int32(3), client.calls.Load())
}

func TestResilientClient_OpensCircuit(t *testing.T) {
	client := &failingClient{}
	rc := newResilientClient("test", client, fastPolicy(0))

	// the default breaker trips after more than five consecutive failures
	for i := 0; i < 6; i++ {
		_, err := rc.do(context.Background(), getRequest("http://example.invalid"))
		require.Error(t, err)
	}

	_, err := rc.do(context.Background(), getRequest("http://example.invalid"))
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(6), client.calls.Load())
}

func TestResilientClient_NoClient(t *testing.T) {
	rc := newResilientClient("test", nil, RetryPolicy{})

	_, err := rc.do(context.Background(), getRequest("http://example.invalid"))
	assert.ErrorIs(t, err, errNoHTTPClient)
}

func TestResilientClient_Success(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer mockServer.Close()

	rc := newResilientClient("test", http.DefaultClient, fastPolicy(0))

	resp, err := rc.do(context.Background(), getRequest(mockServer.URL))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestStatusError(t *testing.T) {
	err := &StatusError{Code: http.StatusBadGateway, Status: "502 Bad Gateway"}
	assert.Equal(t, "HTTP error (status 502): 502 Bad Gateway", err.Error())
	assert.True(t, err.retryable())
	assert.True(t, (&StatusError{Code: http.StatusTooManyRequests}).retryable())
	assert.False(t, (&StatusError{Code: http.StatusNotFound}).retryable())
}
