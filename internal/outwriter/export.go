package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/novetech/deskeval/internal/contract"
	"github.com/novetech/deskeval/internal/parquet"
	"github.com/novetech/deskeval/schema"
)

// WriteDatasetExport re-emits a normalized dataset in the configured format.
// CSV export always uses comma delimiters and UTF-8 regardless of how the
// source file was read, with columns in canonical order. Text mode falls
// back to CSV since a raw dataset has no table rendering.
func WriteDatasetExport(ds *schema.Dataset, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDatasetJSON(w, ds)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet export requires --output-file")
		}
		if err := parquet.WriteTicketsParquet(parquet.FromDataset(ds), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
	default: // text and csv
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDatasetCSV(w, ds)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	}
	return nil
}

// writeDatasetCSV writes the raw cells of the recognized columns.
func writeDatasetCSV(w io.Writer, ds *schema.Dataset) error {
	header := make([]string, 0, len(ds.Columns))
	for _, col := range ds.Columns {
		header = append(header, string(col))
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, rec := range ds.Rows {
			row := make([]string, 0, len(ds.Columns))
			for _, col := range ds.Columns {
				row = append(row, rec.Cell(col))
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// writeDatasetJSON writes one object per row keyed by column name.
func writeDatasetJSON(w io.Writer, ds *schema.Dataset) error {
	rows := make([]map[string]string, 0, len(ds.Rows))
	for _, rec := range ds.Rows {
		obj := make(map[string]string, len(ds.Columns)+1)
		for _, col := range ds.Columns {
			obj[string(col)] = rec.Cell(col)
		}
		obj["shift"] = string(rec.Shift)
		rows = append(rows, obj)
	}
	return writeJSON(w, rows)
}
