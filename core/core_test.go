package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/novetech/deskeval/core/match"
	"github.com/novetech/deskeval/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `responsible,client_name,waiting_time,duration,rating,created_at
Maria Silva,Acme,01:40,02:00,4.0,2024-01-10 09:00:00
Maria Silva,Acme,01:45,02:30,4.5,2024-01-11 10:00:00
Maria Silva,Globex,01:50,03:00,5.0,2024-01-12 11:00:00
Pedro Souza,Acme,00:30,01:00,3.0,2024-02-01 14:00:00
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickets.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func TestLoadDatasetAndBuildReport(t *testing.T) {
	ds, err := LoadDataset(writeSample(t), nil)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 4)

	report, ix := BuildReport(ds, nil)
	assert.Equal(t, 4, report.Overall.Count)
	require.Len(t, report.Buckets, 2)
	assert.Equal(t, "Maria Silva", report.Buckets[0].Label)
	assert.Equal(t, 3, report.Buckets[0].Stats.Count)
	require.NotNil(t, report.Buckets[0].Stats.MeanRating)
	assert.InDelta(t, 4.5, *report.Buckets[0].Stats.MeanRating, 1e-9)
	require.NotNil(t, report.Buckets[0].Stats.MeanWaitSeconds)
	assert.InDelta(t, 105, *report.Buckets[0].Stats.MeanWaitSeconds, 1e-9)
	assert.NotEmpty(t, report.Shifts)
	assert.NotEmpty(t, report.TopClients)

	bucket, ok := ix.Lookup("pedro souza")
	require.True(t, ok)
	assert.Equal(t, 1, bucket.Stats.Count)
}

func TestLoadDatasetWithPeriod(t *testing.T) {
	period := &schema.PeriodWindow{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	ds, err := LoadDataset(writeSample(t), period)
	require.NoError(t, err)
	assert.Len(t, ds.Rows, 3)
}

func TestLoadDatasetInvalidPeriod(t *testing.T) {
	period := &schema.PeriodWindow{
		Start: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	}
	_, err := LoadDataset(writeSample(t), period)
	assert.Error(t, err)
}

func TestLoadDatasetMissingFile(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "absent.csv"), nil)
	assert.Error(t, err)
}

func TestResolveTechnician(t *testing.T) {
	ds, err := LoadDataset(writeSample(t), nil)
	require.NoError(t, err)

	res := ResolveTechnician(schema.TechnicianAccount{Name: "Maria Silva"}, ds, nil)
	assert.Equal(t, match.ExactMatch, res.Method)
	assert.Equal(t, "Maria Silva", res.Bucket.Label)
}
