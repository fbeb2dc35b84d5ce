package cmd

import (
	"fmt"
	"time"

	"github.com/novetech/deskeval/core"
	"github.com/novetech/deskeval/core/match"
	"github.com/novetech/deskeval/internal/contract"
	"github.com/novetech/deskeval/internal/outwriter"
	"github.com/novetech/deskeval/schema"
	"github.com/spf13/cobra"
)

// reportCmd aggregates a ticket export into a ranked KPI report.
var reportCmd = &cobra.Command{
	Use:   "report <input-file>",
	Short: "Rank technicians by ticket KPIs from an exported CSV.",
	Long: `Read a helpdesk ticket export and rank technicians by ticket volume,
mean waiting time, mean handling duration and mean rating.

The reader recovers from common export quirks automatically: semicolon,
tab and pipe delimiters, UTF-8 BOMs and Latin-1 encoded files.

Examples:
  # Rank everyone in the export
  deskeval report tickets.csv

  # Focus on one technician within a reference period
  deskeval report tickets.csv --technician maria.silva --start 2024-01-01 --end 2024-03-31

  # Include shift, client and catalog breakdowns
  deskeval report tickets.csv --detail

  # Export findings to CSV for tracking
  deskeval report tickets.csv --output csv --output-file kpis.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runReport(); err != nil {
			contract.LogFatal("Cannot run report", err)
		}
	},
}

func runReport() error {
	started := time.Now()

	ds, err := core.LoadDataset(cfg.InputFile, periodOrNil())
	if err != nil {
		return err
	}

	report, ix := core.BuildReport(ds, periodOrNil())

	if cfg.Technician != "" {
		res, err := resolveAgainst(cfg.Technician, ds)
		if err != nil {
			return err
		}
		if res.Method == match.NoMatch {
			suggestions := match.Suggestions(schema.TechnicianAccount{Name: cfg.Technician}, ix, 3)
			if len(suggestions) == 0 {
				return fmt.Errorf("no ticket activity found for %q", cfg.Technician)
			}
			msg := fmt.Sprintf("no ticket activity found for %q. Closest labels:", cfg.Technician)
			for _, s := range suggestions {
				msg += fmt.Sprintf(" %q (%.0f%%)", s.Key, s.Similarity*100)
			}
			return fmt.Errorf("%s", msg)
		}
		report.Buckets = []schema.ResponsibleBucket{res.Bucket}
	}

	writer := outwriter.NewOutWriter()
	return writer.WriteReport(report, cfg, time.Since(started))
}

// periodOrNil converts the validated config period into the optional form
// the core layer takes.
func periodOrNil() *schema.PeriodWindow {
	if !cfg.HasPeriod {
		return nil
	}
	period := cfg.Period
	return &period
}

// resolveAgainst matches a technician identifier against a dataset using the
// stored accounts and manual aliases. An identifier matching a stored login
// resolves with the account's full name, so matching sees every known key.
func resolveAgainst(identifier string, ds *schema.Dataset) (match.Resolution, error) {
	aliases, err := storeManager.Aliases().ListAliases()
	if err != nil {
		return match.Resolution{}, fmt.Errorf("failed to load aliases: %w", err)
	}

	acct := schema.TechnicianAccount{Name: identifier, Login: identifier}
	users, err := storeManager.Users().ListUsers()
	if err != nil {
		return match.Resolution{}, fmt.Errorf("failed to load users: %w", err)
	}
	key := schema.NormalizeKey(identifier)
	for _, u := range users {
		if schema.NormalizeKey(u.Login) == key || schema.NormalizeKey(u.Name) == key {
			acct = u
			break
		}
	}

	return core.ResolveTechnician(acct, ds, aliases), nil
}
