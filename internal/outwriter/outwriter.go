// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/novetech/deskeval/internal/contract"
	"github.com/novetech/deskeval/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints an aggregated KPI report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.KPIReport, cfg *contract.Config, duration time.Duration) error {
	return WriteKPIReport(report, cfg, duration)
}

// WriteHistory prints stored evaluation records using the configured output format.
func (ow *OutWriter) WriteHistory(records []schema.EvaluationRecord, cfg *contract.Config) error {
	return WriteRecords(records, cfg)
}

// WriteExport re-emits a normalized dataset using the configured output format.
func (ow *OutWriter) WriteExport(ds *schema.Dataset, cfg *contract.Config) error {
	return WriteDatasetExport(ds, cfg)
}
