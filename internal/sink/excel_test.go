package sink

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"meeting-insights-go/internal/schema"
)

func readSheet(t *testing.T, path, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestAppendCreatesWorkbookWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	w := NewWorkbook(path, "Records")

	rec := schema.NewRecord()
	rec[schema.FieldFileName] = "call.mp3"
	require.NoError(t, w.Append(rec))

	rows := readSheet(t, path, "Records")
	require.Len(t, rows, 2)
	assert.Equal(t, schema.Fields, rows[0], "header row follows canonical field order")
}

func TestAppendedRowFollowsCanonicalOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	w := NewWorkbook(path, "Records")

	rec := schema.NewRecord()
	rec[schema.FieldDate] = "2025-08-31"
	rec[schema.FieldOwner] = "Jordan"
	rec[schema.FieldFileName] = "call.mp3"
	rec[schema.FieldFileID] = "abc123"
	require.NoError(t, w.Append(rec))

	rows := readSheet(t, path, "Records")
	require.Len(t, rows, 2)
	row := rows[1]
	require.Len(t, row, len(schema.Fields))
	for i, name := range schema.Fields {
		assert.Equal(t, rec[name], row[i], "column %q", name)
	}
}

func TestAppendAccumulatesAcrossReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	first := schema.NewRecord()
	first[schema.FieldFileName] = "one.mp3"
	require.NoError(t, NewWorkbook(path, "Records").Append(first))

	// A fresh Workbook against the same file appends, never truncates.
	second := schema.NewRecord()
	second[schema.FieldFileName] = "two.mp3"
	require.NoError(t, NewWorkbook(path, "Records").Append(second))

	rows := readSheet(t, path, "Records")
	require.Len(t, rows, 3)

	col := -1
	for i, name := range schema.Fields {
		if name == schema.FieldFileName {
			col = i
		}
	}
	require.GreaterOrEqual(t, col, 0)
	assert.Equal(t, "one.mp3", rows[1][col])
	assert.Equal(t, "two.mp3", rows[2][col])
}

func TestDefaultSheetName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	w := NewWorkbook(path, "")

	rec := schema.NewRecord()
	rec[schema.FieldFileName] = "call.mp3"
	require.NoError(t, w.Append(rec))

	rows := readSheet(t, path, "Records")
	require.Len(t, rows, 2)
}
