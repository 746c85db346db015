// Package resilience wraps outward calls with classified
// retry-with-backoff and a circuit breaker. Every call to a source
// adapter or the storage tier goes through an Executor.
package resilience

import (
	"context"
	"fmt"
	"time"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
	"github.com/atrium-legal/jurisync-cli/internal/logger"
)

// Executor default tuning.
const (
	// DefaultMaxAttempts bounds ordinary (non rate-limited) retries.
	DefaultMaxAttempts = 3

	// DefaultRateLimitCooldown is the long fixed wait after a
	// rate-limit rejection.
	DefaultRateLimitCooldown = 60 * time.Second
)

// defaultBackoff is the increasing delay schedule for transient and
// unclassified failures. Attempts beyond the schedule reuse the last
// delay.
var defaultBackoff = []time.Duration{1 * time.Second, 5 * time.Second, 30 * time.Second}

// Config tunes an Executor. Zero values select the defaults.
type Config struct {
	// MaxAttempts bounds ordinary retries.
	MaxAttempts int

	// Backoff is the increasing delay schedule between attempts.
	Backoff []time.Duration

	// RateLimitCooldown is the wait after a rate-limit rejection.
	RateLimitCooldown time.Duration

	// Breaker guards the call-site. Nil disables the breaker.
	Breaker *Breaker
}

// Executor retries a unit of work according to its failure class and
// short-circuits through an optional breaker. One Executor guards one
// call-site; construct them explicitly and inject them.
type Executor struct {
	maxAttempts int
	backoff     []time.Duration
	cooldown    time.Duration
	breaker     *Breaker

	// sleep is swapped in tests to avoid real waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewExecutor creates an executor from cfg.
func NewExecutor(cfg Config) *Executor {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if len(cfg.Backoff) == 0 {
		cfg.Backoff = defaultBackoff
	}
	if cfg.RateLimitCooldown <= 0 {
		cfg.RateLimitCooldown = DefaultRateLimitCooldown
	}
	return &Executor{
		maxAttempts: cfg.MaxAttempts,
		backoff:     cfg.Backoff,
		cooldown:    cfg.RateLimitCooldown,
		breaker:     cfg.Breaker,
		sleep:       sleepCtx,
	}
}

// Do runs fn until it succeeds, fails permanently, or the attempt
// budget is spent. Rate-limited failures wait the long cooldown and
// do not consume an ordinary attempt. op names the call-site in logs
// and wrapped errors.
func (e *Executor) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	var lastErr error
	attempt := 0

	for attempt < e.maxAttempts {
		if e.breaker != nil && !e.breaker.Allow() {
			return fmt.Errorf("%s: %w", op, e.breaker.Err())
		}

		err := fn(ctx)
		if e.breaker != nil {
			e.breaker.Record(err == nil)
		}
		if err == nil {
			return nil
		}
		lastErr = err

		switch Classify(err) {
		case ClassPermanent:
			return fmt.Errorf("%s: %w", op, err)

		case ClassRateLimited:
			// Does not count against the attempt budget.
			logger.Warn("%s rate limited, cooling down %s", op, e.cooldown)
			if serr := e.sleep(ctx, e.cooldown); serr != nil {
				return fmt.Errorf("%s: %w", op, serr)
			}

		default: // transient or unclassified
			attempt++
			if attempt >= e.maxAttempts {
				break
			}
			delay := e.backoff[min(attempt-1, len(e.backoff)-1)]
			logger.Debug("%s attempt %d/%d failed (%s): %v, retrying in %s",
				op, attempt, e.maxAttempts, Classify(err), err, delay)
			if serr := e.sleep(ctx, delay); serr != nil {
				return fmt.Errorf("%s: %w", op, serr)
			}
		}
	}

	return fmt.Errorf("%s: %w after %d attempts: %w", op, domain.ErrRetriesExhausted, e.maxAttempts, lastErr)
}

// sleepCtx waits for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
