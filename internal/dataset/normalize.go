package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Normalize assigns the fixed schema to raw positional records. The first record is the
// header artifact of the export format and is always discarded. Cells of the numeric columns
// that fail coercion hold Missing; a structurally malformed record fails the whole table.
func Normalize(records [][]string) (Table, error) {
	if len(records) <= 1 {
		return Table{}, fmt.Errorf("%w: no data rows", ErrSourceUnreadable)
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != ColumnCount {
			return Table{}, fmt.Errorf("%w: line %d has %d fields, want %d", ErrSourceUnreadable, i+2, len(rec), ColumnCount)
		}
		var values [ColumnCount]string
		copy(values[:], rec)
		rows = append(rows, NewRow(values))
	}
	return Table{rows: rows}, nil
}

// Load reads comma separated records from r and normalizes them.
func Load(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	return Normalize(records)
}

// LoadFile opens path and normalizes its contents.
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Table{}, fmt.Errorf("%w: file not found at %s", ErrSourceUnreadable, path)
		}
		return Table{}, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	defer f.Close()

	return Load(f)
}
