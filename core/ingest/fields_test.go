package ingest

import (
	"testing"
	"time"

	"github.com/novetech/deskeval/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeconds(t *testing.T) {
	for name, tc := range map[string]struct {
		in   string
		want *int
	}{
		"hms":        {"1:45:30", ptr(6330)},
		"ms":         {"01:45", ptr(105)},
		"bare":       {"90", ptr(90)},
		"zero":       {"00:00:00", ptr(0)},
		"padded":     {" 02:30 ", ptr(150)},
		"empty":      {"", nil},
		"words":      {"fast", nil},
		"negative":   {"-1:00", nil},
		"float":      {"1.5", nil},
		"extra":      {"1:2:3:4", nil},
		"blank part": {"1::30", nil},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseSeconds(tc.in))
		})
	}
}

func TestParseMinutes(t *testing.T) {
	for name, tc := range map[string]struct {
		in   string
		want *float64
	}{
		"hms":   {"1:30:00", ptr(90.0)},
		"ms":    {"02:30", ptr(2.5)},
		"bare":  {"45", ptr(45.0)},
		"empty": {"", nil},
		"words": {"n/a", nil},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseMinutes(tc.in))
		})
	}
}

// The two clock parsers agree on every clock-style value: the minutes
// reading times sixty equals the seconds reading.
func TestClockParsersAgree(t *testing.T) {
	for _, in := range []string{"0:30", "1:45", "10:00", "1:02:03", "23:59:59"} {
		secs := ParseSeconds(in)
		mins := ParseMinutes(in)
		require.NotNil(t, secs, in)
		require.NotNil(t, mins, in)
		assert.InDelta(t, float64(*secs), *mins*60, 1e-9, in)
	}
}

func TestParseTimestamp(t *testing.T) {
	got := ParseTimestamp("2024-01-10 14:30:00")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC), *got)

	assert.Nil(t, ParseTimestamp(""))
	assert.Nil(t, ParseTimestamp("not a date"))
}

// Zone offsets must not shift the wall-clock hour; shifts are classified
// on the clock the agent worked.
func TestParseTimestampKeepsWallClock(t *testing.T) {
	got := ParseTimestamp("2024-01-10T14:30:00-03:00")
	require.NotNil(t, got)
	assert.Equal(t, 14, got.Hour())
	assert.Equal(t, time.UTC, got.Location())
}

func TestClassifyShift(t *testing.T) {
	at := func(hour int) *time.Time {
		ts := time.Date(2024, 5, 1, hour, 15, 0, 0, time.UTC)
		return &ts
	}
	assert.Equal(t, schema.MorningShift, ClassifyShift(at(7)))
	assert.Equal(t, schema.MorningShift, ClassifyShift(at(12)))
	assert.Equal(t, schema.AfternoonShift, ClassifyShift(at(13)))
	assert.Equal(t, schema.AfternoonShift, ClassifyShift(at(17)))
	assert.Equal(t, schema.EveningShift, ClassifyShift(at(18)))
	assert.Equal(t, schema.EveningShift, ClassifyShift(at(22)))
	assert.Equal(t, schema.OvernightShift, ClassifyShift(at(23)))
	assert.Equal(t, schema.OvernightShift, ClassifyShift(at(3)))
	assert.Equal(t, schema.OtherShift, ClassifyShift(nil))
}

func ptr[T any](v T) *T {
	return &v
}
