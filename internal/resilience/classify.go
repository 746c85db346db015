package resilience

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
)

// FailureClass drives the retry strategy for one failed attempt.
type FailureClass int

const (
	// ClassTransient covers timeouts and connection failures; retried
	// on the backoff schedule.
	ClassTransient FailureClass = iota

	// ClassRateLimited covers quota rejections; retried after a long
	// cooldown without consuming an ordinary attempt.
	ClassRateLimited

	// ClassPermanent covers client errors; never retried.
	ClassPermanent

	// ClassUnknown covers everything else; treated like transient.
	ClassUnknown
)

// String returns the class name for log lines.
func (c FailureClass) String() string {
	switch c {
	case ClassTransient:
		return "transient"
	case ClassRateLimited:
		return "rate-limited"
	case ClassPermanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// Classify maps an error onto a failure class. Adapters tag their
// errors with the domain sentinels; raw network errors from the
// standard library are recognised directly.
func Classify(err error) FailureClass {
	switch {
	case err == nil:
		return ClassUnknown
	case errors.Is(err, domain.ErrRateLimited):
		return ClassRateLimited
	case errors.Is(err, domain.ErrPermanent),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidInput):
		return ClassPermanent
	case errors.Is(err, domain.ErrTransient),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET):
		return ClassTransient
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ClassTransient
	}

	return ClassUnknown
}
