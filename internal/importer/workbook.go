package importer

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// MaxFileSize bounds uploaded spreadsheets at 25 MB; parsing is synchronous
// CPU work and the guard keeps it bounded.
const MaxFileSize = 25 * 1024 * 1024

var (
	ErrFileTooLarge = errors.New("file exceeds the 25 MB limit")
	ErrNoSheet      = errors.New("workbook has no sheets")
)

// Record is the header-keyed view of one data row. Missing cells read as "".
type Record map[string]string

// Workbook holds the first worksheet of an uploaded file in the two shapes
// the import pipeline needs: a positional matrix (row 0 = headers) and
// header-keyed records.
type Workbook struct {
	rows [][]string
}

// OpenWorkbook parses the first sheet of an xlsx payload.
func OpenWorkbook(data []byte) (*Workbook, error) {
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoSheet
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return &Workbook{rows: rows}, nil
}

// Matrix returns the raw positional view; cells are accessed by column index
// and absent cells are treated as empty by the parsers.
func (w *Workbook) Matrix() [][]string {
	return w.rows
}

// Headers returns the raw header row (row 0), unnormalized.
func (w *Workbook) Headers() []string {
	if len(w.rows) == 0 {
		return nil
	}
	return w.rows[0]
}

// Records returns the header-keyed view of rows 1..N. When the same header
// appears twice the first column wins; empty header cells carry no key.
func (w *Workbook) Records() []Record {
	if len(w.rows) < 2 {
		return nil
	}
	headers := w.rows[0]
	out := make([]Record, 0, len(w.rows)-1)
	for _, row := range w.rows[1:] {
		rec := make(Record, len(headers))
		for c, h := range headers {
			if h == "" {
				continue
			}
			if _, seen := rec[h]; seen {
				continue
			}
			if c < len(row) {
				rec[h] = row[c]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}
