package resilience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakerOpensAfterThreshold(t *testing.T) {
	b := NewBreaker(5, time.Minute)

	for i := 0; i < 4; i++ {
		assert.True(t, b.Allow())
		b.Record(false)
		assert.Equal(t, StateClosed, b.State(), "failure %d must not open the breaker", i+1)
	}

	assert.True(t, b.Allow())
	b.Record(false) // fifth consecutive failure
	assert.Equal(t, StateOpen, b.State())

	// Sixth call is rejected without invoking the protected function.
	assert.False(t, b.Allow())
}

func TestBreakerHalfOpenTrial(t *testing.T) {
	clock := time.Date(2023, 5, 10, 12, 0, 0, 0, time.UTC)
	b := NewBreaker(5, time.Minute)
	b.now = func() time.Time { return clock }

	for i := 0; i < 5; i++ {
		b.Allow()
		b.Record(false)
	}
	assert.Equal(t, StateOpen, b.State())
	assert.False(t, b.Allow())

	// Reset timeout elapses: exactly one trial call is permitted.
	clock = clock.Add(61 * time.Second)
	assert.True(t, b.Allow())
	assert.Equal(t, StateHalfOpen, b.State())
	assert.False(t, b.Allow(), "only one trial call in HALF_OPEN")

	// Successful trial closes the breaker and resets the counter.
	b.Record(true)
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, 0, b.Failures())
	assert.True(t, b.Allow())
}

func TestBreakerFailedTrialReopens(t *testing.T) {
	clock := time.Date(2023, 5, 10, 12, 0, 0, 0, time.UTC)
	b := NewBreaker(2, time.Minute)
	b.now = func() time.Time { return clock }

	b.Allow()
	b.Record(false)
	b.Allow()
	b.Record(false)
	assert.Equal(t, StateOpen, b.State())

	clock = clock.Add(2 * time.Minute)
	assert.True(t, b.Allow())
	b.Record(false) // trial fails

	assert.Equal(t, StateOpen, b.State())
	assert.False(t, b.Allow(), "timeout restarts after a failed trial")

	clock = clock.Add(2 * time.Minute)
	assert.True(t, b.Allow(), "a fresh trial is allowed after the restarted timeout")
}

func TestBreakerDefaults(t *testing.T) {
	b := NewBreaker(0, 0)
	assert.Equal(t, DefaultFailureThreshold, b.threshold)
	assert.Equal(t, DefaultResetTimeout, b.timeout)
}
