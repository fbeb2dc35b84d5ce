package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/novetech/deskeval/schema"
)

// wordCharRe decides row validity: a row must have at least one word
// character in some recognized column to count as data.
var wordCharRe = regexp.MustCompile(`\w`)

// Normalize projects a raw table onto the recognized column set, drops rows
// with no meaningful content, and derives the typed fields every downstream
// consumer relies on. Unrecognized columns are discarded; recognized columns
// keep their canonical order regardless of the export's ordering.
func Normalize(raw *schema.RawTable) *schema.Dataset {
	colIndex := make(map[schema.Column]int)
	for i, name := range raw.Header {
		col := schema.Column(strings.TrimSpace(name))
		if _, known := schema.RecognizedColumnSet[col]; !known {
			continue
		}
		if _, seen := colIndex[col]; seen {
			continue // first occurrence wins
		}
		colIndex[col] = i
	}

	var columns []schema.Column
	for _, col := range schema.RecognizedColumns {
		if _, ok := colIndex[col]; ok {
			columns = append(columns, col)
		}
	}

	ds := &schema.Dataset{Columns: columns, ReadConfig: raw.ReadConfig}
	for _, row := range raw.Rows {
		rec := schema.Record{Cells: make(map[schema.Column]string, len(columns))}
		meaningful := false
		for _, col := range columns {
			idx := colIndex[col]
			if idx >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[idx])
			rec.Cells[col] = cell
			if !meaningful && wordCharRe.MatchString(cell) {
				meaningful = true
			}
		}
		if !meaningful {
			continue
		}

		rec.WaitSeconds = ParseSeconds(rec.Cell(schema.ColWaitingTime))
		rec.DurationMinutes = ParseMinutes(rec.Cell(schema.ColDuration))
		rec.Rating = parseRating(rec.Cell(schema.ColRating))
		rec.CreatedAt = ParseTimestamp(rec.Cell(schema.ColCreatedAt))
		rec.Shift = ClassifyShift(rec.CreatedAt)

		ds.Rows = append(ds.Rows, rec)
	}
	return ds
}

// parseRating reads a numeric satisfaction rating, accepting a comma as the
// decimal separator. Malformed values yield nil.
func parseRating(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
