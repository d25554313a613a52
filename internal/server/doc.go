// Package server provides a small HTTP router, request middleware, and a fixture
// endpoint that serves list payloads for local development.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Fixture Endpoint
//
// [ListsHandler] answers GET requests on the configured list path with a JSON
// payload in the same shape as the upstream list API. It can be switched into a
// failing mode so the client's failure view can be exercised without a network.
//
// When no payload file is given, [DefaultPayload] is served.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
