package app

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"coinlens/internal/dataset"
	"coinlens/internal/storage"
)

const (
	tableSheet   = "table"
	reportsSheet = "reports"
)

// Export writes the normalized table as CSV and/or XLSX. The XLSX workbook also carries the
// export's report log on a second sheet.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	if opts.CSVPath == "" && opts.XLSXPath == "" {
		return errors.New("at least one of --csv or --xlsx must be provided")
	}

	table, err := a.raw.Load(opts.File)
	if err != nil {
		return err
	}

	if opts.CSVPath != "" {
		if err := writeTableCSV(opts.CSVPath, table); err != nil {
			return err
		}
		a.Logger.Info().Str("path", opts.CSVPath).Int("rows", table.Len()).Msg("table exported as csv")
	}

	if opts.XLSXPath != "" {
		entries, err := a.store.Load(ctx, opts.File)
		if errors.Is(err, storage.ErrCorruptLog) {
			a.Logger.Warn().Err(err).Msg("report log unreadable; exporting table only")
			entries = nil
		} else if err != nil {
			return err
		}
		if err := writeWorkbook(opts.XLSXPath, table, entries); err != nil {
			return err
		}
		a.Logger.Info().Str("path", opts.XLSXPath).Int("rows", table.Len()).Int("entries", len(entries)).Msg("workbook exported")
	}
	return nil
}

func writeTableCSV(path string, table dataset.Table) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeRecords(file, table); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeRecords(w io.Writer, table dataset.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(dataset.Columns[:]); err != nil {
		return err
	}
	for _, row := range table.Rows() {
		values := row.Values()
		record := values[:]
		for i, col := range dataset.Columns {
			if v, ok := row.Numeric(col); ok {
				record[i] = ""
				if v.Valid {
					record[i] = v.String()
				}
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeWorkbook(path string, table dataset.Table, entries []storage.Entry) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), tableSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, 0, dataset.ColumnCount)
	for _, col := range dataset.Columns {
		header = append(header, col)
	}
	if err := f.SetSheetRow(tableSheet, "A1", &header); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}
	for i, row := range table.Rows() {
		cells := make([]any, 0, dataset.ColumnCount)
		for idx, raw := range row.Values() {
			if v, ok := row.Numeric(dataset.Columns[idx]); ok {
				if v.Valid {
					cells = append(cells, v.Float64)
				} else {
					cells = append(cells, nil)
				}
				continue
			}
			cells = append(cells, raw)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(tableSheet, cell, &cells); err != nil {
			return fmt.Errorf("write table row %d: %w", i, err)
		}
	}

	if _, err := f.NewSheet(reportsSheet); err != nil {
		return fmt.Errorf("create reports sheet: %w", err)
	}
	keys := entryKeys(entries)
	keyHeader := make([]any, len(keys))
	for i, k := range keys {
		keyHeader[i] = k
	}
	if err := f.SetSheetRow(reportsSheet, "A1", &keyHeader); err != nil {
		return fmt.Errorf("write reports header: %w", err)
	}
	for i, e := range entries {
		cells := make([]any, len(keys))
		for j, k := range keys {
			cells[j] = e[k]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(reportsSheet, cell, &cells); err != nil {
			return fmt.Errorf("write reports row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// entryKeys puts the reserved fields first and the rest in name order.
func entryKeys(entries []storage.Entry) []string {
	reserved := []string{storage.FieldTimestamp, storage.FieldAnalysisType}
	seen := map[string]bool{storage.FieldTimestamp: true, storage.FieldAnalysisType: true}
	var rest []string
	for _, e := range entries {
		for k := range e {
			if !seen[k] {
				seen[k] = true
				rest = append(rest, k)
			}
		}
	}
	sort.Strings(rest)
	return append(reserved, rest...)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
