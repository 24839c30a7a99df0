package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"zeedzad/web/pkg/config"
	"zeedzad/web/pkg/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Client performs typed calls against the backend API, normally through the
// gateway's /api prefix. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tracer  *tracing.Tracer
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTracer enables client spans.
func WithTracer(t *tracing.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// WithLogger sets the logger used for debug request logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client for baseURL, e.g. "http://localhost:3000/api".
// The default HTTP client has no timeout.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  slog.Default().With("component", "api.client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromConfig creates a client from the client section of the
// configuration.
func NewClientFromConfig(cfg *config.ClientConfig, opts ...Option) *Client {
	base := []Option{WithHTTPClient(&http.Client{Timeout: cfg.Timeout})}
	return NewClient(cfg.BaseURL, append(base, opts...)...)
}

// BaseURL returns the base URL the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends one request. body, when non-nil, is JSON-encoded. out, when
// non-nil, receives the decoded 2xx body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "api."+strings.ToLower(method),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("api.path", path),
		),
	)
	defer func() {
		tracing.SetError(span, err)
		tracing.SetStatus(span, err)
		span.End()
	}()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, mErr := json.Marshal(body)
		if mErr != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, path, mErr)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	tracing.Inject(ctx, req.Header)

	c.logger.DebugContext(ctx, "sending api request", "method", method, "url", target)

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{
			Kind:    KindTransport,
			Method:  method,
			Path:    path,
			Message: err.Error(),
			Cause:   err,
		}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{
			Kind:       KindTransport,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    err.Error(),
			Cause:      err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Kind:       KindStatus,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    statusMessage(resp, data),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &Error{
			Kind:       KindDecode,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("invalid response body: %v", err),
			Cause:      err,
		}
	}
	if dc, ok := out.(dataChecker); ok && !dc.hasData() {
		return &Error{
			Kind:       KindDecode,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    "invalid response body: missing data",
		}
	}

	return nil
}

// statusMessage derives the user-facing message of a non-2xx response:
// the payload's "error" field, the status phrase when the payload is not
// JSON, or the generic fallback.
func statusMessage(resp *http.Response, data []byte) string {
	var payload errorPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return statusText(resp)
	}
	if payload.Error != "" {
		return payload.Error
	}
	return defaultErrorMessage
}

func statusText(resp *http.Response) string {
	if text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); text != "" && text != resp.Status {
		return text
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return defaultErrorMessage
}

// IsStatus reports whether err is an API status error with the given code.
func IsStatus(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindStatus && apiErr.StatusCode == code
}
