package bfx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kernel/devpanel/internal/config"
)

const (
	tokenHeader       = "bfx-token"
	settingsMediaType = "application/json;charset=UTF-8"

	defaultRequestTimeout = 30 * time.Second
)

var (
	// ErrSettingsUpdateFailed matches any *UpdateFailedError.
	ErrSettingsUpdateFailed = errors.New("settings update failed")

	// ErrUpdateInFlight is returned when Apply is called while another Apply is running.
	ErrUpdateInFlight = errors.New("settings update already in flight")

	// ErrNoEndpoints is returned by a client configured without endpoints.
	ErrNoEndpoints = errors.New("no settings endpoints configured")
)

// AttemptError records why one endpoint did not accept the write.
type AttemptError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *AttemptError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
}

func (e *AttemptError) Unwrap() error { return e.Err }

// UpdateFailedError is returned when every endpoint failed.
type UpdateFailedError struct {
	Attempts []*AttemptError
}

func (e *UpdateFailedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Error())
	}
	return fmt.Sprintf("settings update failed on all endpoints (%s)", strings.Join(parts, "; "))
}

func (e *UpdateFailedError) Is(target error) bool {
	return target == ErrSettingsUpdateFailed
}

// ApplyResult describes a successful write.
type ApplyResult struct {
	// Endpoint is the name of the endpoint that accepted the write.
	Endpoint string
	// Attempts is the number of requests issued, including the successful one.
	Attempts int
}

// SettingsClient writes settings payloads, trying endpoints strictly in order.
type SettingsClient struct {
	httpClient *http.Client
	endpoints  []config.Endpoint
	timeout    time.Duration
	inFlight   atomic.Bool
}

// SettingsClientOption configures a SettingsClient.
type SettingsClientOption func(*SettingsClient)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) SettingsClientOption {
	return func(s *SettingsClient) { s.httpClient = c }
}

// WithRequestTimeout bounds each attempt. Zero disables the bound.
func WithRequestTimeout(d time.Duration) SettingsClientOption {
	return func(s *SettingsClient) { s.timeout = d }
}

func NewSettingsClient(endpoints []config.Endpoint, opts ...SettingsClientOption) *SettingsClient {
	c := &SettingsClient{
		httpClient: http.DefaultClient,
		endpoints:  endpoints,
		timeout:    defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Apply posts payload with token to the first endpoint and falls through to the next
// one only after the previous attempt definitively failed. Only HTTP 200 counts as
// success.
func (c *SettingsClient) Apply(ctx context.Context, token, payload string) (*ApplyResult, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrUpdateInFlight
	}
	defer c.inFlight.Store(false)

	if len(c.endpoints) == 0 {
		return nil, ErrNoEndpoints
	}

	var attempts []*AttemptError
	winner, err := tryInOrder(c.endpoints, func(ep config.Endpoint) error {
		attemptErr := c.post(ctx, ep, token, payload)
		if attemptErr != nil {
			slog.DebugContext(ctx, "settings endpoint failed", "endpoint", ep.Name, "error", attemptErr)
			attempts = append(attempts, attemptErr)
			return attemptErr
		}
		slog.DebugContext(ctx, "settings endpoint accepted write", "endpoint", ep.Name)
		return nil
	})
	if err != nil {
		return nil, &UpdateFailedError{Attempts: attempts}
	}
	return &ApplyResult{Endpoint: winner.Name, Attempts: len(attempts) + 1}, nil
}

func (c *SettingsClient) post(ctx context.Context, ep config.Endpoint, token, payload string) *AttemptError {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, strings.NewReader(payload))
	if err != nil {
		return &AttemptError{Endpoint: ep.Name, Err: err}
	}
	req.Header.Set(tokenHeader, token)
	req.Header.Set("Content-Type", settingsMediaType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &AttemptError{Endpoint: ep.Name, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &AttemptError{Endpoint: ep.Name, StatusCode: resp.StatusCode}
	}
	return nil
}

// tryInOrder calls fn for each item until one succeeds, returning that item.
// When every call fails it returns the last error.
func tryInOrder[T any](items []T, fn func(T) error) (T, error) {
	var zero T
	var lastErr error
	for _, item := range items {
		if err := fn(item); err != nil {
			lastErr = err
			continue
		}
		return item, nil
	}
	if lastErr == nil {
		lastErr = ErrNoEndpoints
	}
	return zero, lastErr
}
