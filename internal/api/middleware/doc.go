// Package middleware holds the gin middleware in front of the browser API:
// CORS and per-client rate limiting.
package middleware
