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

// WriteRecords outputs stored evaluation records, dispatching based on the
// output format configured.
func WriteRecords(records []schema.EvaluationRecord, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecordsCSV(w, records, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported by the export command")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecordsTable(w, records, cfg, fmtFloat)
		}, "Wrote table")
	}
	return nil
}

// writeRecordsTable generates and writes the human-readable history table.
func writeRecordsTable(w io.Writer, records []schema.EvaluationRecord, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No evaluation records found.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Saved At", "Technician", "Period", "Grade", "Band", "Stars", "Evaluator"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, rec := range records {
		band := string(rec.Grade)
		if cfg.UseColors {
			band = contract.GetColorGradeLabel(rec.Grade)
		}
		data = append(data, []string{
			rec.SavedAt.Format("2006-01-02 15:04"),
			rec.Technician,
			rec.ReferencePeriod,
			fmtFloat(rec.FinalGrade),
			band,
			schema.StarString(rec.Stars),
			rec.Evaluator,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if cfg.Detail {
		for _, rec := range records {
			if err := writeRecordDetail(w, &rec, fmtFloat); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeRecordDetail prints the goals and narrative sections of one record.
func writeRecordDetail(w io.Writer, rec *schema.EvaluationRecord, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "\n%s - %s (%s)\n", rec.Technician, rec.SavedAt.Format("2006-01-02"), rec.ReferencePeriod); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Proficiency %s | Competency %s | Final %s\n",
		fmtFloat(rec.ProficiencyIndex), fmtFloat(rec.CompetencyIndex), fmtFloat(rec.FinalGrade)); err != nil {
		return err
	}
	for _, goal := range rec.Goals {
		marker := " "
		if goal.IsCourse {
			marker = "C"
			if goal.CourseCompleted {
				marker = "✓"
			}
		}
		if _, err := fmt.Fprintf(w, "  [%s] %s (due %s)\n", marker, goal.Title, orDash(goal.DueDate)); err != nil {
			return err
		}
	}
	if rec.FinalFeedback != "" {
		if _, err := fmt.Fprintf(w, "  Feedback: %s\n", rec.FinalFeedback); err != nil {
			return err
		}
	}
	return nil
}

// writeRecordsCSV writes the history rows in CSV format.
func writeRecordsCSV(w io.Writer, records []schema.EvaluationRecord, fmtFloat func(float64) string) error {
	header := []string{"saved_at", "technician", "reference_period", "proficiency_index", "competency_index", "final_grade", "grade", "stars", "evaluator"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, rec := range records {
			row := []string{
				rec.SavedAt.Format(time.RFC3339),
				rec.Technician,
				rec.ReferencePeriod,
				fmtFloat(rec.ProficiencyIndex),
				fmtFloat(rec.CompetencyIndex),
				fmtFloat(rec.FinalGrade),
				string(rec.Grade),
				strconv.Itoa(rec.Stars),
				rec.Evaluator,
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
