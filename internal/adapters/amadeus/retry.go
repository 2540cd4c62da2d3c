package amadeus

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"time"
)

// RetryPolicy decides how many attempts a request gets, how long to wait
// between them and which errors are worth another attempt.
// HTTP status codes never reach Retryable: only errors returned while
// sending the request or reading its body do.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration // attempt is 1-based
	Retryable   func(err error) bool
}

// DefaultRetryPolicy: 3 attempts, linear backoff of 0.5s * attempt,
// transport errors only.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff:     LinearBackoff(500 * time.Millisecond),
		Retryable:   IsTransportError,
	}
}

// LinearBackoff waits step, 2*step, 3*step...
func LinearBackoff(step time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			return 0
		}
		return time.Duration(attempt) * step
	}
}

// IsTransportError reports whether err happened on the wire (dial, TLS,
// timeout, connection reset, truncated body) rather than in request building.
func IsTransportError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr)
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts <= 0 {
		return 1
	}
	return p.MaxAttempts
}

func (p RetryPolicy) backoff(attempt int) time.Duration {
	if p.Backoff == nil {
		return 0
	}
	return p.Backoff(attempt)
}

func (p RetryPolicy) retryable(err error) bool {
	if p.Retryable == nil {
		return IsTransportError(err)
	}
	return p.Retryable(err)
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
