// Package retry centralizes the backoff policies shared by the transfer and
// quarantine paths.
package retry

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// InitialInterval is the base delay before the first retry.
	InitialInterval = 500 * time.Millisecond
	// MaxInterval caps the delay between attempts.
	MaxInterval = 8 * time.Second
	// QuarantineMaxAttempts bounds quarantine move retries.
	QuarantineMaxAttempts = 5
)

// Transfer returns the policy for retrieval chunks: exponential growth with
// jitter, capped at MaxInterval, unbounded attempt count. Each failure is the
// caller's to log.
func Transfer() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = InitialInterval
	b.MaxInterval = MaxInterval
	b.MaxElapsedTime = 0 // retry until the error is classified permanent
	return b
}

// Quarantine returns the bounded policy for quarantine moves.
func Quarantine() backoff.BackOff {
	return backoff.WithMaxRetries(Transfer(), QuarantineMaxAttempts)
}
