package transcriber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleSRT = `1
00:00:00,000 --> 00:00:04,500
Good morning, thanks for meeting us.

2
00:00:04,500 --> 00:00:09,000
Of course. Let's talk about the proposal.

3
00:02:55,000 --> 00:03:00,000
We'll follow up next week.
`

func TestParseSRT(t *testing.T) {
	text, minutes := ParseSRT(sampleSRT)

	assert.Equal(t,
		"Good morning, thanks for meeting us. Of course. Let's talk about the proposal. We'll follow up next week.",
		text)
	assert.InDelta(t, 3.0, minutes, 0.01)
}

func TestParseSRTEmpty(t *testing.T) {
	text, minutes := ParseSRT("")
	assert.Empty(t, text)
	assert.Zero(t, minutes)
}

func TestParseSRTIgnoresMalformedTimestamps(t *testing.T) {
	text, minutes := ParseSRT("1\nbroken --> also:broken\nhello there\n")
	assert.Equal(t, "hello there", text)
	assert.Zero(t, minutes)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in  string
		sec float64
		ok  bool
	}{
		{"00:00:04,500", 4.5, true},
		{"01:02:03,000", 3723, true},
		{"02:03", 0, false},
		{"aa:bb:cc", 0, false},
	}
	for _, tt := range tests {
		sec, ok := parseTimestamp(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.InDelta(t, tt.sec, sec, 0.001, "input %q", tt.in)
		}
	}
}
