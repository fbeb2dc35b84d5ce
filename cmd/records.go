package cmd

import (
	"fmt"

	"github.com/novetech/deskeval/internal/contract"
	"github.com/novetech/deskeval/internal/outwriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// recordsCmd lists stored evaluation records.
var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show stored evaluation records, newest first.",
	Long: `List persisted evaluation records.

Records are append-only and ordered newest first. Filter to one technician
with --technician; --detail adds the stored KPI indicators, goals and the
development plan per record.

Examples:
  # Show the latest evaluations across everyone
  deskeval records

  # Full history for one technician
  deskeval records --technician maria.silva --limit 50 --detail

  # Export history as JSON
  deskeval records --output json --output-file history.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runRecords(); err != nil {
			contract.LogFatal("Cannot list records", err)
		}
	},
}

func runRecords() error {
	records, err := storeManager.Evaluations().ListRecords(cfg.Technician, cfg.Limit)
	if err != nil {
		return err
	}
	writer := outwriter.NewOutWriter()
	return writer.WriteHistory(records, cfg)
}

// recordsCompleteCourseCmd marks a course goal done on the latest record.
var recordsCompleteCourseCmd = &cobra.Command{
	Use:   "complete-course",
	Short: "Mark a course goal complete on a technician's latest record",
	Long: `Mark a course goal as completed on the most recent evaluation record of
a technician, optionally attaching a certificate file path.

Only the latest record is ever updated; older records stay untouched.

Examples:
  # Complete the second goal of the latest record
  deskeval records complete-course --technician maria.silva --goal 2

  # Attach the certificate that proves it
  deskeval records complete-course --technician maria.silva --goal 2 \
    --certificate certs/itil-foundation.pdf`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runCompleteCourse(); err != nil {
			contract.LogFatal("Cannot complete course", err)
		}
	},
}

func runCompleteCourse() error {
	if cfg.Technician == "" {
		return fmt.Errorf("--technician is required")
	}
	goalIndex := viper.GetInt("goal")
	certificate := viper.GetString("certificate")

	rec, err := storeManager.Evaluations().LatestRecord(cfg.Technician)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no evaluation record found for %q", cfg.Technician)
	}
	if goalIndex < 1 || goalIndex > len(rec.Goals) {
		return fmt.Errorf("goal index %d out of range; the latest record has %d goals", goalIndex, len(rec.Goals))
	}

	goal := &rec.Goals[goalIndex-1]
	if !goal.IsCourse && !goal.DetectedAsCourse {
		return fmt.Errorf("goal %d (%q) is not a course goal", goalIndex, goal.Title)
	}
	goal.CourseCompleted = true
	if certificate != "" {
		goal.CertificatePath = certificate
	}

	if err := storeManager.Evaluations().UpdateLatestRecord(cfg.Technician, rec); err != nil {
		return err
	}
	fmt.Printf("Marked goal %d (%q) complete for %s\n", goalIndex, goal.Title, rec.Technician)
	return nil
}
