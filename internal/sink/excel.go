// Package sink appends canonical records to an Excel workbook, one row per
// record, columns in canonical field order.
package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"meeting-insights-go/internal/schema"
)

// Workbook writes records to one sheet of an .xlsx file. Safe for concurrent
// use; each append is saved through to disk.
type Workbook struct {
	mu    sync.Mutex
	path  string
	sheet string
}

func NewWorkbook(path, sheet string) *Workbook {
	if sheet == "" {
		sheet = "Records"
	}
	return &Workbook{path: path, sheet: sheet}
}

// Append adds one record row after the last populated row.
func (w *Workbook) Append(rec schema.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(w.sheet)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", w.sheet, err)
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return fmt.Errorf("compute append cell: %w", err)
	}
	row := make([]interface{}, 0, len(schema.Fields))
	for _, v := range rec.Row() {
		row = append(row, v)
	}
	if err := f.SetSheetRow(w.sheet, cell, &row); err != nil {
		return fmt.Errorf("write record row: %w", err)
	}
	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// open loads the workbook, creating it with the canonical header row when it
// does not exist yet.
func (w *Workbook) open() (*excelize.File, error) {
	if _, err := os.Stat(w.path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
			return nil, fmt.Errorf("create workbook directory: %w", err)
		}
		f := excelize.NewFile()
		defaultSheet := f.GetSheetName(0)
		if defaultSheet != w.sheet {
			if _, err := f.NewSheet(w.sheet); err != nil {
				return nil, fmt.Errorf("create sheet %s: %w", w.sheet, err)
			}
			if err := f.DeleteSheet(defaultSheet); err != nil {
				return nil, fmt.Errorf("drop default sheet: %w", err)
			}
		}
		header := make([]interface{}, 0, len(schema.Fields))
		for _, name := range schema.Fields {
			header = append(header, name)
		}
		if err := f.SetSheetRow(w.sheet, "A1", &header); err != nil {
			return nil, fmt.Errorf("write header row: %w", err)
		}
		return f, nil
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	if idx, err := f.GetSheetIndex(w.sheet); err != nil || idx == -1 {
		if _, err := f.NewSheet(w.sheet); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", w.sheet, err)
		}
		header := make([]interface{}, 0, len(schema.Fields))
		for _, name := range schema.Fields {
			header = append(header, name)
		}
		if err := f.SetSheetRow(w.sheet, "A1", &header); err != nil {
			return nil, fmt.Errorf("write header row: %w", err)
		}
	}
	return f, nil
}
