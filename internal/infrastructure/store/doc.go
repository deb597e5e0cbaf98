// Package store provides the durable key-value slot behind the browser's
// result cache.
//
// Two backends implement KV:
//
//	Badger  - embedded LSM store, default; in-memory mode for tests
//	SQLite  - single-file database (pure Go driver), handy for inspection
//
// Writes are whole-batch transactions. A batch either lands completely or
// not at all, so readers never see half of a cache refresh.
package store
