package gateway

import (
	"net/http"
	"strings"
)

// Hop-by-hop headers. These apply to a single connection and are never
// forwarded in either direction.
var hopHeaders = []string{
	"Connection",
	"Proxy-Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// removeHopHeaders deletes hop-by-hop headers, including any listed in the
// Connection header.
func removeHopHeaders(h http.Header) {
	for _, v := range h.Values("Connection") {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				h.Del(name)
			}
		}
	}
	for _, name := range hopHeaders {
		h.Del(name)
	}
}

// requestHeaders returns the end-to-end headers of an incoming request.
// Content-Length and Host are dropped; the outbound request sets its own.
func requestHeaders(in http.Header) http.Header {
	out := in.Clone()
	if out == nil {
		out = http.Header{}
	}
	removeHopHeaders(out)
	out.Del("Content-Length")
	out.Del("Host")
	return out
}

// copyResponseHeaders copies upstream response headers to dst, minus
// hop-by-hop headers. An upstream header replaces any value the middleware
// chain already set under the same name.
func copyResponseHeaders(dst, src http.Header) {
	h := src.Clone()
	removeHopHeaders(h)
	for k, vv := range h {
		dst[k] = vv
	}
}

// yieldResponseHeaders deletes from dst every header the upstream response
// carries, so a proxy that appends upstream headers does not duplicate them.
func yieldResponseHeaders(dst, upstream http.Header) {
	for k := range upstream {
		dst.Del(k)
	}
}
