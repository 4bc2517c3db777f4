// Package transport is the outbound HTTP layer shared by every service
// client: JSON request/response handling, bearer-token authorization,
// request-id tagging, structured request logging, and the mapping from
// transport failures to the domain error taxonomy.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/simp-lee/logger"

	"github.com/aulago/aulago/internal/domain"
)

// TokenSource supplies the bearer token for authorized requests.
// Implementations return domain.ErrNoSession when no usable token exists;
// the client then sends the request anonymously and lets the server answer
// with 401.
type TokenSource interface {
	Token() (string, error)
}

// Client issues JSON requests against one service base URL.
type Client struct {
	http          *http.Client
	baseURL       string
	service       string
	tokens        TokenSource
	logger        *slog.Logger
	retryMax      uint64
	retryInterval time.Duration
}

// New creates a Client for the named service. tokens may be nil for services
// that never require authorization. retryMax and retryInterval only apply to
// GetRetry calls.
func New(service, baseURL string, timeout time.Duration, tokens TokenSource, log *slog.Logger, retryMax int, retryInterval time.Duration) *Client {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if retryMax < 0 {
		retryMax = 0
	}
	if retryInterval <= 0 {
		retryInterval = 500 * time.Millisecond
	}
	return &Client{
		http:          &http.Client{Timeout: timeout},
		baseURL:       strings.TrimRight(baseURL, "/"),
		service:       service,
		tokens:        tokens,
		logger:        log,
		retryMax:      uint64(retryMax),
		retryInterval: retryInterval,
	}
}

// Get issues a GET request. params may be nil; out may be nil to discard the
// response body.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

// GetRetry issues a GET request with capped exponential backoff on transient
// failures (network errors and 5xx responses). Non-transient API errors are
// returned immediately. Intended for the few slow or flaky queries that opt
// in; mutations are never retried.
func (c *Client) GetRetry(ctx context.Context, path string, params url.Values, out any) error {
	op := func() error {
		err := c.do(ctx, http.MethodGet, path, params, nil, out)
		if err == nil {
			return nil
		}
		if domain.IsNetwork(err) || domain.APIStatus(err) >= 500 {
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	b.MaxInterval = 5 * time.Second

	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, c.retryMax), ctx))
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	requestURL := c.baseURL + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return domain.NewAppError(domain.CodeInternal, "failed to encode request body", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	requestID := newRequestID()
	ctx = logger.WithContextAttrs(ctx, slog.String("request_id", requestID))

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, "failed to build request", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		token, tokenErr := c.tokens.Token()
		switch {
		case tokenErr == nil && token != "":
			req.Header.Set("Authorization", "Bearer "+token)
		case domain.IsSession(tokenErr):
			// No usable session: send anonymously, the server decides.
		case tokenErr != nil:
			return tokenErr
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "request failed",
			slog.String("service", c.service),
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		if errors.Is(err, context.Canceled) {
			return domain.NewAppError(domain.CodeInternal, "request canceled", err)
		}
		return domain.NewNetworkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewNetworkError(err)
	}

	c.logRequest(ctx, method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Error bodies optionally carry {"message": "..."} for display.
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &payload)
		return domain.NewAPIError(resp.StatusCode, payload.Message)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return domain.NewAppError(domain.CodeInternal, "malformed response body", err)
		}
	}
	return nil
}

// logRequest records the outbound call at a level chosen by status class:
// 2xx/3xx Info, 4xx Warn, 5xx Error.
func (c *Client) logRequest(ctx context.Context, method, path string, status int, latency time.Duration) {
	attrs := []slog.Attr{
		slog.String("service", c.service),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Duration("latency", latency),
	}

	switch {
	case status >= 500:
		c.logger.LogAttrs(ctx, slog.LevelError, "request", attrs...)
	case status >= 400:
		c.logger.LogAttrs(ctx, slog.LevelWarn, "request", attrs...)
	default:
		c.logger.LogAttrs(ctx, slog.LevelInfo, "request", attrs...)
	}
}
