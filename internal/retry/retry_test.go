package retry

import (
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferDelaysAreMonotonicUpToCap(t *testing.T) {
	b, ok := Transfer().(*backoff.ExponentialBackOff)
	require.True(t, ok)
	b.RandomizationFactor = 0 // strip jitter to observe the base curve

	var prev time.Duration
	for i := 0; i < 12; i++ {
		d := b.NextBackOff()
		require.NotEqual(t, backoff.Stop, d, "transfer policy must not give up")
		assert.GreaterOrEqual(t, d, prev, "delay %d regressed", i)
		assert.LessOrEqual(t, d, MaxInterval)
		prev = d
	}
	assert.Equal(t, MaxInterval, prev, "delays should reach the cap")
}

func TestTransferNeverStops(t *testing.T) {
	b := Transfer()
	for i := 0; i < 100; i++ {
		require.NotEqual(t, backoff.Stop, b.NextBackOff())
	}
}

func TestQuarantineIsBounded(t *testing.T) {
	b := Quarantine()
	stops := 0
	for i := 0; i < QuarantineMaxAttempts+5; i++ {
		if b.NextBackOff() == backoff.Stop {
			stops++
		}
	}
	assert.Greater(t, stops, 0, "quarantine policy must give up eventually")
}
