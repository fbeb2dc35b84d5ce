// Package parquet provides data structures and functions for exporting
// normalized ticket datasets to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/novetech/deskeval/schema"
	"github.com/parquet-go/parquet-go"
)

// TicketRecord represents one normalized ticket row for columnar export.
// Raw cells keep the source strings; derived fields are nullable so
// malformed cells stay distinguishable from zeros.
type TicketRecord struct {
	Agent       string `parquet:"name,snappy"`
	Group       string `parquet:"group_attendants_name,snappy"`
	Client      string `parquet:"client_name,snappy"`
	Catalog     string `parquet:"services_catalog_name,snappy"`
	CatalogArea string `parquet:"services_catalog_area_name,snappy"`
	CatalogItem string `parquet:"services_catalog_item_name,snappy"`
	TicketTitle string `parquet:"ticket_title,snappy"`
	Duration    string `parquet:"duration,snappy"`
	WaitingTime string `parquet:"waiting_time,snappy"`
	Responsible string `parquet:"responsible,snappy"`
	Rating      string `parquet:"rating,snappy"`
	CreatedAt   string `parquet:"created_at,snappy"`

	WaitSeconds     *int32     `parquet:"wait_seconds,optional,snappy"`
	DurationMinutes *float64   `parquet:"duration_minutes,optional,snappy"`
	RatingValue     *float64   `parquet:"rating_value,optional,snappy"`
	CreatedAtTime   *time.Time `parquet:"created_at_time,optional,snappy"`
	Shift           string     `parquet:"shift,snappy"`
}

// FromDataset converts a normalized dataset into export rows.
func FromDataset(ds *schema.Dataset) []TicketRecord {
	records := make([]TicketRecord, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		rec := TicketRecord{
			Agent:       row.Cell(schema.ColAgent),
			Group:       row.Cell(schema.ColGroup),
			Client:      row.Cell(schema.ColClient),
			Catalog:     row.Cell(schema.ColCatalog),
			CatalogArea: row.Cell(schema.ColCatalogArea),
			CatalogItem: row.Cell(schema.ColCatalogItem),
			TicketTitle: row.Cell(schema.ColTicketTitle),
			Duration:    row.Cell(schema.ColDuration),
			WaitingTime: row.Cell(schema.ColWaitingTime),
			Responsible: row.Cell(schema.ColResponsible),
			Rating:      row.Cell(schema.ColRating),
			CreatedAt:   row.Cell(schema.ColCreatedAt),
			Shift:       string(row.Shift),
		}
		if row.WaitSeconds != nil {
			v := int32(*row.WaitSeconds)
			rec.WaitSeconds = &v
		}
		rec.DurationMinutes = row.DurationMinutes
		rec.RatingValue = row.Rating
		rec.CreatedAtTime = row.CreatedAt
		records = append(records, rec)
	}
	return records
}

// WriteTicketsParquet writes a slice of TicketRecord structs to a Parquet file.
func WriteTicketsParquet(data []TicketRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the TicketRecord struct tags
	writer := parquet.NewGenericWriter[TicketRecord](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
