package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateFromFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"Meeting_31-08-25.mp3", "2025-08-31", true},
		{"2025_09_04 site visit.m4a", "2025-09-04", true},
		{"call 01.12.2024.wav", "2024-12-01", true},
		{"recap 5/6/25.mp3", "2025-06-05", true},
		{"report_32-13-99.mp3", "", false}, // not a calendar date
		{"29-02-25.mp3", "", false},        // 2025 is not a leap year
		{"29-02-24.mp3", "2024-02-29", true},
		{"meeting with client.mp3", "", false},
		{"v1-2-345.mp3", "", false}, // 3-digit year
	}
	for _, tt := range tests {
		got, ok := DateFromFileName(tt.name)
		assert.Equal(t, tt.ok, ok, "file %q", tt.name)
		assert.Equal(t, tt.want, got, "file %q", tt.name)
	}
}

func TestDateFromFileNameFillsCoercedRecord(t *testing.T) {
	rec := Coerce(map[string]any{}, "Meeting_31-08-25.mp3")
	assert.True(t, rec.IsEmpty() == false)
	assert.Equal(t, "2025-08-31", rec["Date"])

	rec = Coerce(map[string]any{"Date": "2024-01-01"}, "Meeting_31-08-25.mp3")
	assert.Equal(t, "2024-01-01", rec["Date"])
}
