// Package cache implements the browser's two-tier, read-through result cache.
//
// The in-process tier is a slice of content records, empty at startup. The
// persisted tier is a store.KV slot holding the serialized records and the
// time they were fetched. Get hydrates the in-process tier from the
// persisted one while it is younger than the TTL; an expired or corrupt
// slot is purged on the spot and Get returns nothing.
//
// The cache is shared by every tab.
package cache
