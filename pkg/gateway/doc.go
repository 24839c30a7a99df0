// Package gateway implements the /api/* reverse proxy in front of the
// video backend.
//
// Every request under /api/ is forwarded to the configured backend at the
// same /api/ path with the raw query preserved, and the backend's status,
// headers and body are relayed back unchanged.
//
// # Forwarding Modes
//
//   - asset: paths containing "swagger/" are fetched directly and served
//     with a content type guessed from the extension. Any failure falls
//     through to the modes below.
//   - stream: multipart/form-data bodies are streamed byte for byte.
//   - json: other bodies of POST, PUT, PATCH and DELETE are parsed as JSON
//     and re-encoded. A body that does not parse is dropped.
//   - bodyless: everything else.
//
// An unreachable backend yields 502 with {"error": "..."}.
//
// # Usage
//
//	fwd, err := gateway.New("http://localhost:8088",
//		gateway.WithMetrics(collector),
//		gateway.WithTracer(tracer),
//	)
//	r := chi.NewRouter()
//	r.Handle("/api/*", fwd)
//
// The backend can be changed at runtime with SetBackend, for example on a
// configuration reload.
package gateway
