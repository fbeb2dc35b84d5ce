// Package core orchestrates ingestion, filtering and aggregation into the
// report the command and MCP layers render.
package core

import (
	"fmt"
	"os"

	"github.com/novetech/deskeval/core/ingest"
	"github.com/novetech/deskeval/core/kpi"
	"github.com/novetech/deskeval/core/match"
	"github.com/novetech/deskeval/schema"
)

// topBreakdownLimit caps each per-column breakdown in a report.
const topBreakdownLimit = 5

// LoadDataset reads and normalizes a ticket export, applying the optional
// period filter.
func LoadDataset(path string, period *schema.PeriodWindow) (*schema.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	raw, err := ingest.ReadCSV(data)
	if err != nil {
		return nil, err
	}
	ds := ingest.Normalize(raw)

	if period != nil {
		ds, err = kpi.FilterByPeriod(ds, *period)
		if err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// BuildReport aggregates a dataset into the full report view.
func BuildReport(ds *schema.Dataset, period *schema.PeriodWindow) (*schema.KPIReport, *kpi.BucketIndex) {
	ix := kpi.Aggregate(ds)
	report := &schema.KPIReport{
		ReadConfig:  ds.ReadConfig,
		Period:      period,
		Overall:     kpi.ComputeKPIs(ds.Rows),
		Buckets:     ix.Buckets,
		Shifts:      kpi.ShiftCounts(ds),
		TopClients:  kpi.TopCounts(ds, schema.ColClient, topBreakdownLimit),
		TopCatalogs: kpi.TopCounts(ds, schema.ColCatalog, topBreakdownLimit),
		TopItems:    kpi.TopCounts(ds, schema.ColCatalogItem, topBreakdownLimit),
		TopTitles:   kpi.TopCounts(ds, schema.ColTicketTitle, topBreakdownLimit),
	}
	return report, ix
}

// ResolveTechnician matches an account against a dataset using the stored
// manual aliases.
func ResolveTechnician(acct schema.TechnicianAccount, ds *schema.Dataset, aliases map[string]string) match.Resolution {
	ix := kpi.Aggregate(ds)
	return match.Resolve(acct, ix, aliases)
}
