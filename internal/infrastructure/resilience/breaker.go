package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned without calling the guarded function while the
// breaker is open
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures the circuit breaker behavior
type Settings struct {
	// FailureThreshold consecutive failures open the breaker
	FailureThreshold uint32
	// Cooldown is how long the breaker stays open before one probe is let through
	Cooldown time.Duration
	// OnStateChange is called whenever the state changes
	OnStateChange func(name string, from, to State)
	// Now is the clock, time.Now when nil
	Now func() time.Time
}

// Counts holds the statistics for the circuit breaker
type Counts struct {
	Requests            uint64
	Failures            uint64
	Rejected            uint64
	ConsecutiveFailures uint32
}

// Breaker stops calling a failing dependency for a cooldown period
type Breaker struct {
	name     string
	settings Settings

	mu       sync.Mutex
	state    State
	counts   Counts
	openedAt time.Time
	probing  bool
}

// New creates a circuit breaker
func New(name string, settings Settings) *Breaker {
	if settings.FailureThreshold == 0 {
		settings.FailureThreshold = 5
	}
	if settings.Cooldown <= 0 {
		settings.Cooldown = 30 * time.Second
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}
	return &Breaker{name: name, settings: settings}
}

// Name returns the name of the circuit breaker
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current()
}

// Counts returns a copy of the counters
func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts
}

// Do runs fn unless the breaker is open. Context cancellation is not
// counted as a failure.
func (b *Breaker) Do(fn func() error) error {
	if err := b.before(); err != nil {
		return err
	}

	err := fn()
	b.after(err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
	return err
}

func (b *Breaker) before() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current() {
	case StateOpen:
		b.counts.Rejected++
		return ErrCircuitOpen
	case StateHalfOpen:
		if b.probing {
			b.counts.Rejected++
			return ErrCircuitOpen
		}
		b.probing = true
	}
	b.counts.Requests++
	return nil
}

func (b *Breaker) after(ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := b.current()
	b.probing = false

	if ok {
		b.counts.ConsecutiveFailures = 0
		if state == StateHalfOpen {
			b.setState(StateClosed)
		}
		return
	}

	b.counts.Failures++
	b.counts.ConsecutiveFailures++
	if state == StateHalfOpen || b.counts.ConsecutiveFailures >= b.settings.FailureThreshold {
		b.openedAt = b.settings.Now()
		b.setState(StateOpen)
	}
}

// current moves open to half-open once the cooldown has passed. Caller holds mu.
func (b *Breaker) current() State {
	if b.state == StateOpen && b.settings.Now().Sub(b.openedAt) >= b.settings.Cooldown {
		b.setState(StateHalfOpen)
	}
	return b.state
}

func (b *Breaker) setState(state State) {
	if b.state == state {
		return
	}
	prev := b.state
	b.state = state
	if state == StateClosed {
		b.counts.ConsecutiveFailures = 0
	}
	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, prev, state)
	}
}
