// Package tracing gives each HTTP request an id. The id is read from or
// written to the X-Request-ID header, stored in the request context and
// attached to request logs.
package tracing
