package provider

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeminiKeyRotationCyclesAllKeys(t *testing.T) {
	g := NewGemini([]string{"k1", "k2", "k3"}, "")

	var seen []string
	for i := 0; i < 6; i++ {
		seen = append(seen, g.takeKey())
		g.rotateKey()
	}
	assert.Equal(t, []string{"k1", "k2", "k3", "k1", "k2", "k3"}, seen)
}

func TestGeminiKeyRotationConcurrent(t *testing.T) {
	g := NewGemini([]string{"k1", "k2", "k3"}, "")
	valid := map[string]bool{"k1": true, "k2": true, "k3": true}

	// Workers share one instance; take+rotate from many goroutines must stay
	// race-free and always yield a configured key.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				if key := g.takeKey(); !valid[key] {
					t.Errorf("unexpected key %q", key)
					return
				}
				g.rotateKey()
			}
		}()
	}
	wg.Wait()
}

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New("googleapi: Error 429: rate limit"), true},
		{errors.New("quota exceeded for this project"), true},
		{errors.New("rpc error: code = ResourceExhausted desc = RESOURCE_EXHAUSTED"), true},
		{errors.New("googleapi: Error 400: invalid argument"), false},
		{errors.New("context canceled"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isQuotaError(tt.err), "error %v", tt.err)
	}
}
