// Package http exposes the browser and the service registry as a gin REST API.
//
// Tab routes live under /browser/tabs/:id, archive routes under /archive,
// and generic tool execution under /services/execute. Domain errors map to
// status codes: unknown tabs give 404, invalid input gives 400.
package http
