package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"zeedzad/web/pkg/telemetry/metrics"
	"zeedzad/web/pkg/telemetry/tracing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Forwarding modes, also used as the metrics "mode" label.
const (
	ModeAsset    = "asset"
	ModeStream   = "stream"
	ModeJSON     = "json"
	ModeBodyless = "bodyless"
)

// Forwarder is the catch-all /api/* handler. It relays every request to
// the backend under the same /api/ prefix and relays the response back
// unmodified. It holds no per-request state.
type Forwarder struct {
	backend   atomic.Pointer[url.URL]
	transport http.RoundTripper
	client    *http.Client
	metrics   *metrics.Collector
	tracer    *tracing.Tracer
	logger    *slog.Logger
}

// Option configures a Forwarder.
type Option func(*Forwarder)

// WithTransport replaces the outbound transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Forwarder) {
		f.transport = rt
	}
}

// WithMetrics records forwards and asset fallbacks.
func WithMetrics(c *metrics.Collector) Option {
	return func(f *Forwarder) {
		f.metrics = c
	}
}

// WithTracer enables forward spans.
func WithTracer(t *tracing.Tracer) Option {
	return func(f *Forwarder) {
		f.tracer = t
	}
}

// WithLogger sets the forwarder logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Forwarder) {
		f.logger = l
	}
}

// New creates a Forwarder targeting backendURL, e.g. "http://localhost:8088".
func New(backendURL string, opts ...Option) (*Forwarder, error) {
	f := &Forwarder{
		transport: http.DefaultTransport,
		logger:    slog.Default().With("component", "gateway"),
	}
	for _, opt := range opts {
		opt(f)
	}

	// Redirects and errors are relayed to the caller, never followed.
	f.client = &http.Client{
		Transport: f.transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	if err := f.SetBackend(backendURL); err != nil {
		return nil, err
	}
	return f, nil
}

// SetBackend swaps the backend base URL. Requests already in flight keep
// the URL they started with.
func (f *Forwarder) SetBackend(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid backend URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid backend URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid backend URL %q: missing host", raw)
	}

	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""

	if prev := f.backend.Swap(u); prev != nil && prev.String() != u.String() {
		f.logger.Info("backend changed", "from", prev.String(), "to", u.String())
	}
	return nil
}

// Backend returns the current backend base URL.
func (f *Forwarder) Backend() string {
	return f.backend.Load().String()
}

// forwardedPath returns the escaped part of the request path after /api/.
// chi matches on RawPath when the request carries one, so the wildcard is
// already escaped in that case and decoded otherwise.
func forwardedPath(r *http.Request) string {
	if p := chi.URLParam(r, "*"); p != "" {
		if r.URL.RawPath != "" {
			return p
		}
		return (&url.URL{Path: p}).EscapedPath()
	}
	p := strings.TrimPrefix(r.URL.EscapedPath(), "/")
	return strings.TrimPrefix(p, "api/")
}

// upstreamURL builds the backend URL for the escaped path, keeping the raw
// query. The escaped form goes on the wire as received.
func upstreamURL(base *url.URL, escapedPath, rawQuery string) *url.URL {
	u := *base
	raw := base.EscapedPath() + "/api/" + strings.TrimPrefix(escapedPath, "/")
	if p, err := url.PathUnescape(raw); err == nil {
		u.Path = p
		u.RawPath = raw
	} else {
		u.Path = raw
		u.RawPath = ""
	}
	u.RawQuery = rawQuery
	return &u
}

// ServeHTTP forwards one request.
func (f *Forwarder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := forwardedPath(r)
	target := upstreamURL(f.backend.Load(), path, r.URL.RawQuery)

	ctx, span := f.tracer.Start(r.Context(), "gateway.forward",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.method", r.Method)),
	)
	defer span.End()
	r = r.WithContext(ctx)

	if isAsset(path) {
		start := time.Now()
		a, err := f.fetchAsset(ctx, r.Method, target.String(), path, f.outboundHeaders(r))
		if err == nil {
			f.metrics.RecordForward(r.Method, ModeAsset, http.StatusOK, time.Since(start))
			span.SetAttributes(tracing.ForwardAttributes(ModeAsset, target.String())...)
			if a.contentType != "" {
				w.Header().Set("Content-Type", a.contentType)
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(a.body)
			return
		}

		var dfe *DirectFetchError
		if errors.As(err, &dfe) {
			f.metrics.RecordAssetFallback(dfe.Reason())
		}
		f.logger.WarnContext(ctx, "swagger asset fetch failed, falling back to proxy",
			"path", path,
			"error", err,
		)
	}

	if hasBody(r.Method) && isMultipart(r.Header.Get("Content-Type")) {
		f.stream(w, r, target)
		return
	}

	f.forward(w, r, target)
}

// hasBody reports whether a method's body is forwarded.
func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func isMultipart(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, "multipart/form-data")
	}
	return mediaType == "multipart/form-data"
}

// outboundHeaders returns the headers to send upstream, with the current
// trace context injected.
func (f *Forwarder) outboundHeaders(r *http.Request) http.Header {
	h := requestHeaders(r.Header)
	tracing.Inject(r.Context(), h)
	return h
}

// stream forwards a multipart upload without buffering the body.
func (f *Forwarder) stream(w http.ResponseWriter, r *http.Request, target *url.URL) {
	start := time.Now()
	status := 0
	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(tracing.ForwardAttributes(ModeStream, target.String())...)

	proxy := &httputil.ReverseProxy{
		Transport: f.transport,
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL = target
			pr.Out.Host = target.Host
			tracing.Inject(pr.In.Context(), pr.Out.Header)
		},
		ModifyResponse: func(resp *http.Response) error {
			status = resp.StatusCode
			yieldResponseHeaders(w.Header(), resp.Header)
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			f.upstreamFailed(w, r, ModeStream, err)
		},
	}
	proxy.ServeHTTP(w, r)

	if status != 0 {
		f.metrics.RecordForward(r.Method, ModeStream, status, time.Since(start))
	}
}

// forward relays a request whose body (if any) is JSON, re-encoding it.
// A body that is empty or not valid JSON is dropped.
func (f *Forwarder) forward(w http.ResponseWriter, r *http.Request, target *url.URL) {
	ctx := r.Context()
	header := f.outboundHeaders(r)
	mode := ModeBodyless

	var body io.Reader
	if hasBody(r.Method) {
		if payload, ok := reencodeJSON(r.Body); ok {
			body = bytes.NewReader(payload)
			header.Set("Content-Type", "application/json")
			mode = ModeJSON
		}
	}
	if body == nil {
		header.Del("Content-Type")
	}

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(tracing.ForwardAttributes(mode, target.String())...)

	req, err := http.NewRequestWithContext(ctx, r.Method, target.String(), body)
	if err != nil {
		f.upstreamFailed(w, r, mode, err)
		return
	}
	req.Header = header

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		f.upstreamFailed(w, r, mode, err)
		return
	}
	defer resp.Body.Close()

	f.metrics.RecordForward(r.Method, mode, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	copyResponseHeaders(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		f.logger.WarnContext(ctx, "failed to relay response body", "error", err)
	}
}

// reencodeJSON reads a request body and returns it re-encoded. Numbers are
// preserved exactly.
func reencodeJSON(rc io.ReadCloser) ([]byte, bool) {
	if rc == nil || rc == http.NoBody {
		return nil, false
	}
	defer rc.Close()

	dec := json.NewDecoder(rc)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	return payload, true
}

// upstreamFailed answers 502 when the backend could not be reached.
func (f *Forwarder) upstreamFailed(w http.ResponseWriter, r *http.Request, mode string, err error) {
	f.metrics.RecordForward(r.Method, mode, 0, 0)

	span := trace.SpanFromContext(r.Context())
	tracing.SetError(span, err)
	tracing.SetStatus(span, err)

	f.logger.ErrorContext(r.Context(), "backend unreachable",
		"method", r.Method,
		"path", r.URL.Path,
		"mode", mode,
		"error", err,
	)
	WriteError(w, http.StatusBadGateway, "backend unavailable: "+err.Error())
}
