package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/novetech/deskeval/internal/contract"
	"github.com/novetech/deskeval/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteKPIReport outputs the aggregated report, dispatching based on the
// output format configured. Parquet is reserved for dataset export.
func WriteKPIReport(report *schema.KPIReport, cfg *contract.Config, duration time.Duration) error {
	_, fmtMean := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report, fmtMean)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported by the export command")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(w, report, cfg, fmtMean, duration)
		}, "Wrote table")
	}
	return nil
}

// writeReportTable generates and writes the human-readable table.
func writeReportTable(w io.Writer, report *schema.KPIReport, cfg *contract.Config, fmtMean func(*float64) string, duration time.Duration) error {
	header := "Ticket report"
	if cfg.UseEmojis {
		header = "📊 " + header
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Responsible", "Tickets", "Wait", "Duration", "Rating"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxLabel := getMaxTableLabelWidth(cfg)
	var data [][]string
	for i, b := range report.Buckets {
		if i >= cfg.Limit {
			break
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateLabel(b.Label, maxLabel),
			strconv.Itoa(b.Stats.Count),
			formatWait(b.Stats.MeanWaitSeconds),
			schema.FormatMinutes(b.Stats.MeanDurationMinutes),
			fmtMean(b.Stats.MeanRating),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Overall: %d tickets, wait %s, duration %s, rating %s\n",
		report.Overall.Count,
		formatWait(report.Overall.MeanWaitSeconds),
		schema.FormatMinutes(report.Overall.MeanDurationMinutes),
		orDash(fmtMean(report.Overall.MeanRating))); err != nil {
		return err
	}

	if cfg.Detail {
		if err := writeBreakdown(w, "Shifts", report.Shifts); err != nil {
			return err
		}
		if err := writeBreakdown(w, "Top clients", report.TopClients); err != nil {
			return err
		}
		if err := writeBreakdown(w, "Top catalogs", report.TopCatalogs); err != nil {
			return err
		}
		if err := writeBreakdown(w, "Top catalog items", report.TopItems); err != nil {
			return err
		}
		if err := writeBreakdown(w, "Top ticket titles", report.TopTitles); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Report completed in %v. Reader: %s\n", duration, report.ReadConfig); err != nil {
		return err
	}
	return nil
}

// writeBreakdown prints one per-value count section.
func writeBreakdown(w io.Writer, title string, counts []schema.ValueCount) error {
	if len(counts) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s:\n", title); err != nil {
		return err
	}
	for _, c := range counts {
		if _, err := fmt.Fprintf(w, "  %s: %d (%.1f%%)\n", c.Value, c.Count, c.Percent); err != nil {
			return err
		}
	}
	return nil
}

// writeReportCSV writes the per-responsible rows in CSV format.
func writeReportCSV(w io.Writer, report *schema.KPIReport, fmtMean func(*float64) string) error {
	header := []string{"rank", "responsible", "tickets", "mean_wait_seconds", "mean_duration_minutes", "mean_rating"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, b := range report.Buckets {
			row := []string{
				strconv.Itoa(i + 1),
				b.Label,
				strconv.Itoa(b.Stats.Count),
				fmtMean(b.Stats.MeanWaitSeconds),
				fmtMean(b.Stats.MeanDurationMinutes),
				fmtMean(b.Stats.MeanRating),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// formatWait renders mean waiting seconds as a "mm:ss" display string.
func formatWait(seconds *float64) string {
	if seconds == nil {
		return "00:00"
	}
	minutes := *seconds / 60
	return schema.FormatMinutes(&minutes)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
