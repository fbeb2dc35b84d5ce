package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/novetech/deskeval/schema"
)

// timestampLayouts are tried in order when parsing created_at values.
// Offset-bearing layouts are normalized to wall-clock time afterwards.
var timestampLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// clockParts splits a clock-style value into integer segments, requiring
// every segment to be digits only. ok is false for empty or malformed input.
func clockParts(s string) (parts []int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	segments := strings.Split(s, ":")
	if len(segments) > 3 {
		return nil, false
	}
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			return nil, false
		}
		for _, r := range seg {
			if r < '0' || r > '9' {
				return nil, false
			}
		}
		n, err := strconv.Atoi(seg)
		if err != nil {
			return nil, false
		}
		parts = append(parts, n)
	}
	return parts, true
}

// ParseSeconds parses a waiting-time value into whole seconds. Accepted
// forms are "H:M:S", "M:S" and a bare integer of seconds. Malformed values
// yield nil, never an error, so one bad cell cannot poison a dataset.
func ParseSeconds(s string) *int {
	parts, ok := clockParts(s)
	if !ok {
		return nil
	}
	var total int
	switch len(parts) {
	case 1:
		total = parts[0]
	case 2:
		total = parts[0]*60 + parts[1]
	case 3:
		total = parts[0]*3600 + parts[1]*60 + parts[2]
	}
	return &total
}

// ParseMinutes parses a duration value into fractional minutes. Accepted
// forms are "H:M:S", "M:S" and a bare integer of minutes. Malformed values
// yield nil.
func ParseMinutes(s string) *float64 {
	parts, ok := clockParts(s)
	if !ok {
		return nil
	}
	var total float64
	switch len(parts) {
	case 1:
		total = float64(parts[0])
	case 2:
		total = float64(parts[0]) + float64(parts[1])/60
	case 3:
		total = float64(parts[0])*60 + float64(parts[1]) + float64(parts[2])/60
	}
	return &total
}

// ParseTimestamp parses a created_at value against the known layouts and
// returns the wall-clock time with any zone offset discarded. Shift
// classification and period filtering work on local wall-clock hours, so
// offsets must not shift the time. Malformed values yield nil.
func ParseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
		return &wall
	}
	return nil
}

// ClassifyShift buckets a timestamp by its hour of day. Nil timestamps
// land in OtherShift.
func ClassifyShift(ts *time.Time) schema.Shift {
	if ts == nil {
		return schema.OtherShift
	}
	switch hour := ts.Hour(); {
	case hour >= 7 && hour < 13:
		return schema.MorningShift
	case hour >= 13 && hour < 18:
		return schema.AfternoonShift
	case hour >= 18 && hour < 23:
		return schema.EveningShift
	default:
		return schema.OvernightShift
	}
}
