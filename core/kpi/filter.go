// Package kpi filters normalized datasets and aggregates their indicators.
package kpi

import (
	"errors"
	"time"

	"github.com/novetech/deskeval/schema"
)

// Filtering errors.
var (
	ErrInvalidPeriod        = errors.New("period start is after period end")
	ErrNoCreatedAt          = errors.New("dataset has no created_at column")
	ErrUnparseableCreatedAt = errors.New("created_at column has no parseable timestamps")
)

// FilterByPeriod keeps the rows whose created_at date falls inside the
// inclusive window. Rows with an unparseable timestamp never match a
// period filter, but a dataset where every timestamp failed to parse is
// reported as unfilterable rather than returned empty. An inverted
// window is rejected outright instead of silently matching nothing.
func FilterByPeriod(ds *schema.Dataset, window schema.PeriodWindow) (*schema.Dataset, error) {
	if window.Start.After(window.End) {
		return nil, ErrInvalidPeriod
	}
	if !ds.HasColumn(schema.ColCreatedAt) {
		return nil, ErrNoCreatedAt
	}
	if len(ds.Rows) > 0 && !anyCreatedAt(ds.Rows) {
		return nil, ErrUnparseableCreatedAt
	}

	start := dateOnly(window.Start)
	end := dateOnly(window.End)

	out := &schema.Dataset{Columns: ds.Columns, ReadConfig: ds.ReadConfig}
	for _, rec := range ds.Rows {
		if rec.CreatedAt == nil {
			continue
		}
		day := dateOnly(*rec.CreatedAt)
		if day.Before(start) || day.After(end) {
			continue
		}
		out.Rows = append(out.Rows, rec)
	}
	return out, nil
}

func anyCreatedAt(rows []schema.Record) bool {
	for _, rec := range rows {
		if rec.CreatedAt != nil {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
