package kpi

import (
	"strconv"
	"testing"
	"time"

	"github.com/novetech/deskeval/core/ingest"
	"github.com/novetech/deskeval/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(responsible, waiting, duration, rating, created string) schema.Record {
	cells := map[schema.Column]string{
		schema.ColResponsible: responsible,
		schema.ColWaitingTime: waiting,
		schema.ColDuration:    duration,
		schema.ColRating:      rating,
		schema.ColCreatedAt:   created,
	}
	rec := schema.Record{Cells: cells}
	rec.WaitSeconds = ingest.ParseSeconds(waiting)
	rec.DurationMinutes = ingest.ParseMinutes(duration)
	if v, err := strconv.ParseFloat(rating, 64); err == nil {
		rec.Rating = &v
	}
	if ts, err := time.Parse("2006-01-02 15:04:05", created); err == nil {
		tsUTC := ts.UTC()
		rec.CreatedAt = &tsUTC
	}
	rec.Shift = ingest.ClassifyShift(rec.CreatedAt)
	return rec
}

func testDataset(rows ...schema.Record) *schema.Dataset {
	return &schema.Dataset{
		Columns: []schema.Column{
			schema.ColResponsible, schema.ColWaitingTime, schema.ColDuration,
			schema.ColRating, schema.ColCreatedAt,
		},
		Rows: rows,
	}
}

func TestAggregateMeans(t *testing.T) {
	ds := testDataset(
		row("Maria Silva", "01:40", "02:00", "4.0", "2024-01-10 09:00:00"),
		row("Maria Silva", "01:45", "02:30", "4.5", "2024-01-11 10:00:00"),
		row("Maria Silva", "01:50", "03:00", "5.0", "2024-01-12 11:00:00"),
		row("Pedro Souza", "00:30", "01:00", "3.0", "2024-01-10 09:00:00"),
	)

	ix := Aggregate(ds)
	bucket, ok := ix.Lookup("maria silva")
	require.True(t, ok)
	assert.Equal(t, "Maria Silva", bucket.Label)
	assert.Equal(t, 3, bucket.Stats.Count)
	require.NotNil(t, bucket.Stats.MeanRating)
	assert.InDelta(t, 4.5, *bucket.Stats.MeanRating, 1e-9)
	require.NotNil(t, bucket.Stats.MeanWaitSeconds)
	assert.InDelta(t, 105, *bucket.Stats.MeanWaitSeconds, 1e-9)
	require.NotNil(t, bucket.Stats.MeanDurationMinutes)
	assert.InDelta(t, 2.5, *bucket.Stats.MeanDurationMinutes, 1e-9)
}

// Bucket counts always partition the rows that carry a responsible label.
func TestAggregateCountsPartitionRows(t *testing.T) {
	ds := testDataset(
		row("Maria Silva", "", "", "", ""),
		row("Pedro Souza", "", "", "", ""),
		row("Maria Silva", "", "", "", ""),
		row("   ", "", "", "", ""),
		row("Ana Costa", "", "", "", ""),
	)

	ix := Aggregate(ds)
	total := 0
	for _, b := range ix.Buckets {
		total += b.Stats.Count
	}
	assert.Equal(t, 4, total)
	assert.Equal(t, []string{"Maria Silva", "Ana Costa", "Pedro Souza"}, ix.Labels())
}

func TestAggregateIndexKeys(t *testing.T) {
	ds := testDataset(
		row("João Silva (joao.silva)", "", "", "", ""),
		row("ana.costa@support.example", "", "", "", ""),
	)

	ix := Aggregate(ds)

	for _, key := range []string{"joao silva joao.silva", "joao.silva"} {
		bucket, ok := ix.Lookup(key)
		require.True(t, ok, key)
		assert.Equal(t, "João Silva (joao.silva)", bucket.Label)
	}
	for _, key := range []string{"ana.costa@support.example", "ana.costa"} {
		bucket, ok := ix.Lookup(key)
		require.True(t, ok, key)
		assert.Equal(t, "ana.costa@support.example", bucket.Label)
	}
}

// When two labels yield the same lookup key, the label appearing last in
// the source wins, regardless of how the buckets sort by count.
func TestAggregateKeyCollisionLastSourceLabelWins(t *testing.T) {
	ds := testDataset(
		row("João Silva (joao.silva)", "", "", "", ""),
		row("joao.silva@support.example", "", "", "", ""),
		row("joao.silva@support.example", "", "", "", ""),
	)

	ix := Aggregate(ds)
	assert.Equal(t, []string{"joao.silva@support.example", "João Silva (joao.silva)"}, ix.Labels())

	bucket, ok := ix.Lookup("joao.silva")
	require.True(t, ok)
	assert.Equal(t, "joao.silva@support.example", bucket.Label)
}

func TestComputeKPIsSkipsMissingValues(t *testing.T) {
	snap := ComputeKPIs([]schema.Record{
		row("x", "01:00", "", "4.0", ""),
		row("x", "", "", "", ""),
	})
	assert.Equal(t, 2, snap.Count)
	require.NotNil(t, snap.MeanWaitSeconds)
	assert.InDelta(t, 60, *snap.MeanWaitSeconds, 1e-9)
	assert.Nil(t, snap.MeanDurationMinutes)
}

func TestComputeKPIsEmpty(t *testing.T) {
	snap := ComputeKPIs(nil)
	assert.Equal(t, 0, snap.Count)
	assert.Nil(t, snap.MeanWaitSeconds)
	assert.Nil(t, snap.MeanRating)
}

func TestFilterByPeriod(t *testing.T) {
	ds := testDataset(
		row("Maria Silva", "", "", "", "2024-01-05 09:00:00"),
		row("Maria Silva", "", "", "", "2024-01-10 23:59:59"),
		row("Maria Silva", "", "", "", "2024-01-11 00:00:00"),
		row("Maria Silva", "", "", "", "not a date"),
	)

	got, err := FilterByPeriod(ds, schema.PeriodWindow{
		Start: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Len(t, got.Rows, 2)
}

func TestFilterByPeriodInvertedWindow(t *testing.T) {
	ds := testDataset(row("Maria Silva", "", "", "", "2024-01-07 09:00:00"))
	_, err := FilterByPeriod(ds, schema.PeriodWindow{
		Start: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestFilterByPeriodNoCreatedAt(t *testing.T) {
	ds := &schema.Dataset{Columns: []schema.Column{schema.ColResponsible}}
	_, err := FilterByPeriod(ds, schema.PeriodWindow{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrNoCreatedAt)
}

func TestFilterByPeriodAllTimestampsUnparseable(t *testing.T) {
	ds := testDataset(
		row("Maria Silva", "", "", "", "not a date"),
		row("Pedro Souza", "", "", "", "also not a date"),
	)
	require.True(t, ds.HasColumn(schema.ColCreatedAt))

	_, err := FilterByPeriod(ds, schema.PeriodWindow{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrUnparseableCreatedAt)
}

func TestFilterByPeriodEmptyDataset(t *testing.T) {
	ds := testDataset()
	got, err := FilterByPeriod(ds, schema.PeriodWindow{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, got.Rows)
}

func TestTopCounts(t *testing.T) {
	ds := &schema.Dataset{
		Columns: []schema.Column{schema.ColClient},
		Rows: []schema.Record{
			{Cells: map[schema.Column]string{schema.ColClient: "Acme"}},
			{Cells: map[schema.Column]string{schema.ColClient: "Acme"}},
			{Cells: map[schema.Column]string{schema.ColClient: "Globex"}},
			{Cells: map[schema.Column]string{schema.ColClient: ""}},
		},
	}

	got := TopCounts(ds, schema.ColClient, 0)
	require.Len(t, got, 2)
	assert.Equal(t, schema.ValueCount{Value: "Acme", Count: 2, Percent: 100 * 2.0 / 3.0}, got[0])
	assert.Equal(t, "Globex", got[1].Value)

	assert.Len(t, TopCounts(ds, schema.ColClient, 1), 1)
	assert.Nil(t, TopCounts(ds, schema.ColCatalog, 0))
}

func TestShiftCounts(t *testing.T) {
	ds := &schema.Dataset{Rows: []schema.Record{
		{Shift: schema.MorningShift},
		{Shift: schema.MorningShift},
		{Shift: schema.AfternoonShift},
	}}
	got := ShiftCounts(ds)
	require.Len(t, got, 2)
	assert.Equal(t, string(schema.MorningShift), got[0].Value)
	assert.Equal(t, 2, got[0].Count)
}
