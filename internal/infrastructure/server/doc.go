// Package server wires configuration, the cache store, the browser and the
// gin router into a runnable HTTP server.
package server
