// Package ws serves the browser over a websocket. Clients receive a snapshot
// on connect, then every browser event, and may send navigation commands
// such as navigate, search, back and forward.
package ws
