package cmd

import (
	"github.com/novetech/deskeval/core"
	"github.com/novetech/deskeval/internal/contract"
	"github.com/novetech/deskeval/internal/outwriter"
	"github.com/spf13/cobra"
)

// exportCmd re-emits a normalized dataset.
var exportCmd = &cobra.Command{
	Use:   "export <input-file>",
	Short: "Re-emit a cleaned ticket export as CSV, JSON or Parquet.",
	Long: `Read a ticket export, normalize it, and write it back out.

The export keeps only the recognized columns in canonical order, always
comma-delimited UTF-8 for CSV regardless of how the source was encoded.
The optional reference period filters rows before writing.

Examples:
  # Clean up a messy semicolon/Latin-1 export
  deskeval export tickets.csv --output csv --output-file clean.csv

  # Parquet for DuckDB or pandas
  deskeval export tickets.csv --output parquet --output-file tickets.parquet

  # Only the first quarter
  deskeval export tickets.csv --start 2024-01-01 --end 2024-03-31 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runExport(); err != nil {
			contract.LogFatal("Cannot run export", err)
		}
	},
}

func runExport() error {
	ds, err := core.LoadDataset(cfg.InputFile, periodOrNil())
	if err != nil {
		return err
	}
	writer := outwriter.NewOutWriter()
	return writer.WriteExport(ds, cfg)
}
