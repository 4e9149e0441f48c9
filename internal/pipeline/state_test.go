package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionsFollowStageOrder(t *testing.T) {
	order := []State{
		StateDiscovered,
		StateRetrieving,
		StateTranscribing,
		StateAnalyzing,
		StatePersisting,
		StateProcessed,
	}
	for i := 0; i < len(order)-1; i++ {
		assert.True(t, CanTransition(order[i], order[i+1]),
			"%s -> %s", order[i], order[i+1])
	}
}

func TestEveryActiveStateCanFail(t *testing.T) {
	for _, s := range []State{
		StateDiscovered, StateRetrieving, StateTranscribing,
		StateAnalyzing, StatePersisting,
	} {
		assert.True(t, CanTransition(s, StateFailed), "%s -> failed", s)
	}
}

func TestNoSkippingStages(t *testing.T) {
	assert.False(t, CanTransition(StateDiscovered, StateTranscribing))
	assert.False(t, CanTransition(StateRetrieving, StateAnalyzing))
	assert.False(t, CanTransition(StateDiscovered, StateProcessed))
}

func TestNoLeavingTerminalStates(t *testing.T) {
	for _, s := range []State{StateProcessed, StateFailed} {
		assert.True(t, s.Terminal())
		for _, to := range []State{
			StateDiscovered, StateRetrieving, StateTranscribing,
			StateAnalyzing, StatePersisting, StateProcessed, StateFailed,
		} {
			assert.False(t, CanTransition(s, to), "%s -> %s", s, to)
		}
	}
}
