// Package schema has configs, models and shared helpers for all parts of deskeval.
package schema

import "time"

// Column identifies a recognized column in uploaded ticket exports.
// The values match the header names produced by the export tools.
type Column string

// Recognized columns of a ticket export.
const (
	ColAgent       Column = "name"
	ColGroup       Column = "group_attendants_name"
	ColClient      Column = "client_name"
	ColCatalog     Column = "services_catalog_name"
	ColCatalogArea Column = "services_catalog_area_name"
	ColCatalogItem Column = "services_catalog_item_name"
	ColTicketTitle Column = "ticket_title"
	ColDuration    Column = "duration"
	ColWaitingTime Column = "waiting_time"
	ColResponsible Column = "responsible"
	ColRating      Column = "rating"
	ColCreatedAt   Column = "created_at"
)

// RecognizedColumns lists the expected columns in canonical order.
// Export and projection both follow this order.
var RecognizedColumns = []Column{
	ColAgent, ColGroup, ColClient,
	ColCatalog, ColCatalogArea, ColCatalogItem,
	ColTicketTitle, ColDuration, ColWaitingTime,
	ColResponsible, ColRating, ColCreatedAt,
}

// RecognizedColumnSet is the lookup form of RecognizedColumns.
var RecognizedColumnSet = func() map[Column]struct{} {
	set := make(map[Column]struct{}, len(RecognizedColumns))
	for _, c := range RecognizedColumns {
		set[c] = struct{}{}
	}
	return set
}()

// RawTable is a parsed CSV before normalization: a header and string cells,
// tagged with the reader configuration that produced it.
type RawTable struct {
	Header     []string
	Rows       [][]string
	ReadConfig string
}

// Record is one normalized row of the uploaded dataset. Cells holds the raw
// string values for recognized columns present in the source; derived fields
// are either valid values or nil, never a malformed string.
type Record struct {
	Cells map[Column]string

	WaitSeconds     *int
	DurationMinutes *float64
	Rating          *float64
	CreatedAt       *time.Time
	Shift           Shift
}

// Cell returns the raw value of a recognized column, or "" when the column
// was missing from the source.
func (r *Record) Cell(c Column) string {
	return r.Cells[c]
}

// Dataset is a normalized ticket export. Columns lists the recognized
// columns that were actually present in the source, in canonical order.
// Row order matches the source file.
type Dataset struct {
	Columns    []Column
	Rows       []Record
	ReadConfig string
}

// HasColumn reports whether the source carried the given recognized column.
func (ds *Dataset) HasColumn(c Column) bool {
	for _, col := range ds.Columns {
		if col == c {
			return true
		}
	}
	return false
}

// PeriodWindow is an inclusive date range used for filtering.
type PeriodWindow struct {
	Start time.Time
	End   time.Time
}

// KPISnapshot holds the aggregate indicators for a set of records.
// Means are nil when no record in the set carried the underlying value.
type KPISnapshot struct {
	Count               int      `json:"count"`
	MeanWaitSeconds     *float64 `json:"mean_wait_seconds"`
	MeanDurationMinutes *float64 `json:"mean_duration_minutes"`
	MeanRating          *float64 `json:"mean_rating"`
}

// ResponsibleBucket is the aggregated KPI view for one distinct responsible
// label within a filtered dataset.
type ResponsibleBucket struct {
	Label string      `json:"label"`
	Stats KPISnapshot `json:"stats"`
}

// TechnicianAccount is a registered user as seen by the matcher. Accounts are
// owned by the user store; the core never mutates them.
type TechnicianAccount struct {
	Name  string `json:"name"`
	Login string `json:"login"`
	Role  string `json:"role"`
}

// KPIReport is the full aggregated view of one uploaded dataset, ready for
// rendering in any output mode.
type KPIReport struct {
	ReadConfig  string              `json:"read_config"`
	Period      *PeriodWindow       `json:"period,omitempty"`
	Overall     KPISnapshot         `json:"overall"`
	Buckets     []ResponsibleBucket `json:"responsibles"`
	Shifts      []ValueCount        `json:"shifts,omitempty"`
	TopClients  []ValueCount        `json:"top_clients,omitempty"`
	TopCatalogs []ValueCount        `json:"top_catalogs,omitempty"`
	TopItems    []ValueCount        `json:"top_items,omitempty"`
	TopTitles   []ValueCount        `json:"top_titles,omitempty"`
}

// StoreStatus summarizes the persistent store for status reporting.
type StoreStatus struct {
	Backend     DatabaseBackend `json:"backend"`
	Location    string          `json:"location"`
	RecordCount int             `json:"record_count"`
	AliasCount  int             `json:"alias_count"`
	UserCount   int             `json:"user_count"`
	PresetCount int             `json:"preset_count"`
}

// ValueCount is one entry of a per-column breakdown (e.g. tickets per shift).
type ValueCount struct {
	Value   string  `json:"value"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}
