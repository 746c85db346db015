package resilience

import (
	"sync"
	"time"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
)

// BreakerState is one of the breaker's three states.
type BreakerState int

const (
	// StateClosed passes calls through and counts failures.
	StateClosed BreakerState = iota

	// StateOpen rejects calls without invoking the function.
	StateOpen

	// StateHalfOpen permits a single trial call.
	StateHalfOpen
)

// String returns the state name for log lines.
func (s BreakerState) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	default:
		return "HALF_OPEN"
	}
}

// Breaker default tuning.
const (
	// DefaultFailureThreshold is the consecutive-failure count that
	// opens the breaker.
	DefaultFailureThreshold = 5

	// DefaultResetTimeout is how long the breaker stays open before
	// permitting a trial call.
	DefaultResetTimeout = 60 * time.Second
)

// Breaker is a three-state circuit breaker guarding one call-site.
// Once consecutive failures reach the threshold the breaker opens and
// rejects calls immediately; after the reset timeout it permits one
// trial call, closing again on success.
type Breaker struct {
	mu        sync.Mutex
	state     BreakerState
	failures  int
	openedAt  time.Time
	threshold int
	timeout   time.Duration
	now       func() time.Time
}

// NewBreaker creates a closed breaker. Zero threshold or timeout
// selects the defaults.
func NewBreaker(threshold int, timeout time.Duration) *Breaker {
	if threshold <= 0 {
		threshold = DefaultFailureThreshold
	}
	if timeout <= 0 {
		timeout = DefaultResetTimeout
	}
	return &Breaker{
		threshold: threshold,
		timeout:   timeout,
		now:       time.Now,
	}
}

// Allow reports whether a call may proceed, transitioning OPEN to
// HALF_OPEN once the reset timeout has elapsed. When it returns
// false the caller must fail with domain.ErrCircuitOpen.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return true
	case StateHalfOpen:
		// A trial call is already in flight.
		return false
	default: // StateOpen
		if b.now().Sub(b.openedAt) >= b.timeout {
			b.state = StateHalfOpen
			return true
		}
		return false
	}
}

// Record reports a call outcome. A success in HALF_OPEN closes the
// breaker and resets the counter; a failure re-opens it and restarts
// the timeout.
func (b *Breaker) Record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if success {
		b.state = StateClosed
		b.failures = 0
		return
	}

	switch b.state {
	case StateHalfOpen:
		b.state = StateOpen
		b.openedAt = b.now()
	case StateClosed:
		b.failures++
		if b.failures >= b.threshold {
			b.state = StateOpen
			b.openedAt = b.now()
		}
	case StateOpen:
		// Rejected calls are not recorded; nothing to do.
	}
}

// State returns the current state.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Failures returns the consecutive failure count.
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

// Err is the rejection error breakers surface.
func (b *Breaker) Err() error {
	return domain.ErrCircuitOpen
}
