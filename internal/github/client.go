package github

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/wahlandcase/attuned.mergestrategy/internal/logging"
)

const (
	DefaultBaseURL      = "https://api.github.com"
	DefaultTimeout      = 15 * time.Second
	DefaultMaxRetries   = 2
	DefaultRetryBackoff = 500 * time.Millisecond
	// breakerFailures consecutive failures open the circuit
	breakerFailures = 5
)

// HTTPClient interface for HTTP operations (allows mocking in tests)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the settings of the GitHub REST client
type Config struct {
	BaseURL string
	Token   string
	Owner   string
	Repo    string
	// Timeout bounds every single request
	Timeout time.Duration
	// MaxRetries is how many times a 5xx, 429 or transport error is retried
	MaxRetries int
	// RetryBackoff is the first retry delay; it doubles per attempt
	RetryBackoff time.Duration
	// RequestsPerSecond paces requests; 0 disables pacing
	RequestsPerSecond float64
}

// Client talks to the GitHub REST API for a single repository.
// It implements scan.Provider and scan.Merger.
type Client struct {
	cfg        Config
	httpClient HTTPClient
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

// APIError is a non-2xx response from GitHub
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API %s %s returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Retryable reports whether the request may succeed when repeated
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// NewClient creates a GitHub client; a nil httpClient uses http.DefaultClient
func NewClient(cfg Config, httpClient HTTPClient) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "github",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
		// Client errors say nothing about GitHub's health
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return !apiErr.Retryable()
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
		breaker:    breaker,
	}
}

// Repository returns "owner/repo"
func (c *Client) Repository() string {
	return c.cfg.Owner + "/" + c.cfg.Repo
}

func (c *Client) repoPath(format string, args ...any) string {
	return fmt.Sprintf("/repos/%s/%s", c.cfg.Owner, c.cfg.Repo) + fmt.Sprintf(format, args...)
}

// doRequest performs a request with pacing, retries and the circuit breaker,
// decoding the JSON response into result when it is non-nil
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.cfg.RetryBackoff << (attempt - 1)
			logging.Logger.Debug("Retrying GitHub request", "path", path, "attempt", attempt, "delay", delay, "error", lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		data, err := c.breaker.Execute(func() ([]byte, error) {
			return c.send(ctx, method, path, payload)
		})
		if err == nil {
			if result == nil || len(data) == 0 {
				return nil
			}
			if err := json.Unmarshal(data, result); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
			return nil
		}

		lastErr = err
		if !retryable(ctx, err) {
			return err
		}
	}
	return lastErr
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	// Transport errors
	return true
}

// send performs a single HTTP round trip
func (c *Client) send(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Body:       string(bytes.TrimSpace(data)),
		}
	}

	return data, nil
}
