package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsContract(t *testing.T) {
	assert.Len(t, Fields, 48)

	seen := make(map[string]struct{})
	for _, f := range Fields {
		_, dup := seen[f]
		require.False(t, dup, "duplicate canonical field %q", f)
		seen[f] = struct{}{}
	}

	// The sink depends on these exact positions.
	assert.Equal(t, FieldDate, Fields[0])
	assert.Equal(t, FieldFileID, Fields[len(Fields)-1])
	assert.Equal(t, FieldFileName, Fields[len(Fields)-2])
}

func TestSubScoresAreCanonical(t *testing.T) {
	assert.Len(t, SubScores, 5)
	for _, s := range SubScores {
		_, ok := Resolve(s)
		assert.True(t, ok, "sub-score %q must be canonical", s)
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Owner Name", "ownername"},
		{"owner_name", "ownername"},
		{"  Total Score ", "totalscore"},
		{"% Score", "%score"},
		{"already", "already"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKey(tt.in), "input %q", tt.in)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"Date", FieldDate, true},                             // exact
		{"Owner (Who handled the meeting)", FieldOwner, true}, // exact
		{"owner", FieldOwner, true},                           // alias
		{"owner_name", FieldOwner, true},                      // alias, snake
		{"OwnerName", FieldOwner, true},                       // alias, camel
		{"percent_score", FieldPercentScore, true},            // alias
		{"total score", FieldTotalScore, true},                // fuzzy canonical
		{"society_name", FieldSocietyName, true},              // fuzzy canonical
		{"CLOSING SCORE", FieldClosingScore, true},            // fuzzy canonical
		{"unrelated_field", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Resolve(tt.key)
		assert.Equal(t, tt.ok, ok, "key %q", tt.key)
		assert.Equal(t, tt.want, got, "key %q", tt.key)
	}
}

func TestNewRecord(t *testing.T) {
	r := NewRecord()
	require.Len(t, r, len(Fields))
	for _, f := range Fields {
		assert.Equal(t, NA, r[f])
	}
	assert.True(t, r.IsEmpty())

	r[FieldDate] = "2025-01-01"
	assert.False(t, r.IsEmpty())
}

func TestRecordRowOrder(t *testing.T) {
	r := NewRecord()
	r[FieldDate] = "2025-08-31"
	r[FieldFileID] = "abc"

	row := r.Row()
	require.Len(t, row, len(Fields))
	assert.Equal(t, "2025-08-31", row[0])
	assert.Equal(t, "abc", row[len(row)-1])
	assert.Equal(t, NA, row[1])
}
