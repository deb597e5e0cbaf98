// Package types provides shared data structures for the browser backend.
//
// Core Types:
//   - ContentRecord: One pre-seeded simulated page
//   - DomainStatus: Liveness flag of the domain that served a record
//   - Service, Tool, Parameter: Service provider definitions
//   - Context: Execution context for tool calls
//   - Result: Standard tool result
//
// Request Types:
//   - ExecuteRequest: Service tool execution
//   - NavigateRequest, SearchRequest, PageRequest: Browser HTTP bodies
//   - WSMessage: WebSocket communication
//
// Example Usage:
//
//	rec := types.ContentRecord{
//	    ID:       "news-001",
//	    Address:  "https://news.example/article/1",
//	    Template: "News",
//	}
package types
