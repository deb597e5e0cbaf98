// Package resilience provides a circuit breaker and a store.KV wrapper
// that uses it.
//
// After FailureThreshold consecutive failures the breaker opens and calls
// fail fast with ErrCircuitOpen. Once the cooldown passes a single probe is
// allowed through: success closes the breaker, failure reopens it.
//
// Example:
//
//	kv = resilience.GuardKV(kv, resilience.New("cache-store", resilience.Settings{
//	    FailureThreshold: 3,
//	    Cooldown:         30 * time.Second,
//	}))
package resilience
