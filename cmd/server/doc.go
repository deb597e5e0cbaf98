// Package main runs the simulated browser server.
//
// The server exposes the browser (tabs, navigation, search and the web
// archive) as a REST API, a websocket stream and a tool registry.
//
// Configuration:
//   - Environment variables (see internal/infrastructure/config)
//   - CLI flags (override env vars)
//
// Usage:
//
//	./server -port 8000 -seed ./records.yaml
//	./server -dev -memory -seed ./records
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
