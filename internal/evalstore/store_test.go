package evalstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/novetech/deskeval/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "deskeval_test.db")
	mgr, err := NewStoreManager(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr
}

func testRecord(technician string, savedAt time.Time) *schema.EvaluationRecord {
	return &schema.EvaluationRecord{
		SavedAt:       savedAt,
		Evaluator:     "coordinator",
		Technician:    technician,
		Goals:         []schema.Goal{{Title: "Close aging tickets"}},
		FinalFeedback: "Keep it up.",
		Inputs: schema.ScoreInputs{
			BlockWeights: schema.BlockWeights{Proficiency: 50, Competency: 50},
		},
	}
}

func TestSaveAndListRecords(t *testing.T) {
	mgr := newTestManager(t)
	store := mgr.Evaluations()

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveRecord(testRecord("Maria Silva", base)))
	require.NoError(t, store.SaveRecord(testRecord("Maria Silva", base.Add(time.Hour))))
	require.NoError(t, store.SaveRecord(testRecord("Pedro Souza", base.Add(2*time.Hour))))

	all, err := store.ListRecords("", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// newest first
	assert.Equal(t, "Pedro Souza", all[0].Technician)

	marias, err := store.ListRecords("Maria Silva", 0)
	require.NoError(t, err)
	require.Len(t, marias, 2)
	assert.True(t, marias[0].SavedAt.After(marias[1].SavedAt))

	limited, err := store.ListRecords("Maria Silva", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

// Technician lookup keys are normalized, so accents and case differences
// still find the records.
func TestListRecordsNormalizedLookup(t *testing.T) {
	mgr := newTestManager(t)
	store := mgr.Evaluations()

	require.NoError(t, store.SaveRecord(testRecord("João Conceição", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))))

	got, err := store.ListRecords("joao conceicao", 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSaveRecordRejectsInvalid(t *testing.T) {
	mgr := newTestManager(t)
	rec := testRecord("Maria Silva", time.Now())
	rec.Goals = nil
	assert.ErrorIs(t, mgr.Evaluations().SaveRecord(rec), schema.ErrNoGoals)

	all, err := mgr.Evaluations().ListRecords("", 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLatestAndUpdateLatestRecord(t *testing.T) {
	mgr := newTestManager(t)
	store := mgr.Evaluations()

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	first := testRecord("Maria Silva", base)
	first.Goals = []schema.Goal{{Title: "Kubernetes training course", IsCourse: true}}
	require.NoError(t, store.SaveRecord(first))
	require.NoError(t, store.SaveRecord(testRecord("Maria Silva", base.Add(time.Hour))))

	latest, err := store.LatestRecord("Maria Silva")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, base.Add(time.Hour), latest.SavedAt)

	latest.Goals = []schema.Goal{{Title: "Kubernetes training course", IsCourse: true, CourseCompleted: true}}
	require.NoError(t, store.UpdateLatestRecord("Maria Silva", latest))

	reloaded, err := store.LatestRecord("Maria Silva")
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	require.Len(t, reloaded.Goals, 1)
	assert.True(t, reloaded.Goals[0].CourseCompleted)

	// the older record is untouched
	all, err := store.ListRecords("Maria Silva", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.False(t, all[1].Goals[0].CourseCompleted)
}

func TestUpdateLatestRecordMissing(t *testing.T) {
	mgr := newTestManager(t)
	err := mgr.Evaluations().UpdateLatestRecord("Nobody", testRecord("Nobody", time.Now()))
	assert.ErrorIs(t, err, ErrNoSuchRecord)
}

func TestLatestRecordMissing(t *testing.T) {
	mgr := newTestManager(t)
	latest, err := mgr.Evaluations().LatestRecord("Nobody")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestAliases(t *testing.T) {
	mgr := newTestManager(t)
	aliases := mgr.Aliases()

	require.NoError(t, aliases.SetAlias("Maria Silva", "M. Silva (externo)"))
	require.NoError(t, aliases.SetAlias("maria silva", "Maria Silva | T2"))

	got, err := aliases.ListAliases()
	require.NoError(t, err)
	// the second set replaced the first since keys normalize identically
	require.Len(t, got, 1)
	assert.Equal(t, "Maria Silva | T2", got["maria silva"])

	require.NoError(t, aliases.DeleteAlias("MARIA SILVA"))
	got, err = aliases.ListAliases()
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.NoError(t, aliases.DeleteAlias("absent"))
}

func TestUsers(t *testing.T) {
	mgr := newTestManager(t)
	users := mgr.Users()

	require.NoError(t, users.UpsertUser(schema.TechnicianAccount{Login: "msilva", Name: "Maria Silva", Role: "technician"}))
	require.NoError(t, users.UpsertUser(schema.TechnicianAccount{Login: "psouza", Name: "Pedro Souza"}))
	require.NoError(t, users.UpsertUser(schema.TechnicianAccount{Login: "msilva", Name: "Maria S. Costa", Role: "senior"}))

	got, err := users.ListUsers()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "msilva", got[0].Login)
	assert.Equal(t, "Maria S. Costa", got[0].Name)
	assert.Equal(t, "senior", got[0].Role)

	require.NoError(t, users.DeleteUser("msilva"))
	got, err = users.ListUsers()
	require.NoError(t, err)
	assert.Len(t, got, 1)

	assert.Error(t, users.UpsertUser(schema.TechnicianAccount{Name: "No Login"}))
}

func TestPresets(t *testing.T) {
	mgr := newTestManager(t)
	presets := mgr.Presets()

	preset := schema.WeightPreset{
		Name:              "field-team",
		ToolWeights:       map[string]float64{"Ticketing": 50, "Field Toolkit": 50},
		CompetencyWeights: map[string]int{"Customer service": 2, "Level 1 support": 1},
		BlockWeights:      schema.BlockWeights{Proficiency: 60, Competency: 40},
	}
	require.NoError(t, presets.SavePreset(preset))

	got, err := presets.GetPreset("field-team")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, preset, *got)

	preset.BlockWeights = schema.BlockWeights{Proficiency: 70, Competency: 30}
	require.NoError(t, presets.SavePreset(preset))
	got, err = presets.GetPreset("field-team")
	require.NoError(t, err)
	assert.Equal(t, 70, got.BlockWeights.Proficiency)

	list, err := presets.ListPresets()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	missing, err := presets.GetPreset("absent")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, presets.DeletePreset("field-team"))
	list, err = presets.ListPresets()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStatusAndClear(t *testing.T) {
	mgr := newTestManager(t)
	require.NoError(t, mgr.Evaluations().SaveRecord(testRecord("Maria Silva", time.Now().UTC())))
	require.NoError(t, mgr.Aliases().SetAlias("maria silva", "Maria Silva"))
	require.NoError(t, mgr.Users().UpsertUser(schema.TechnicianAccount{Login: "msilva", Name: "Maria Silva"}))

	status, err := mgr.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.Equal(t, 1, status.RecordCount)
	assert.Equal(t, 1, status.AliasCount)
	assert.Equal(t, 1, status.UserCount)
	assert.Equal(t, 0, status.PresetCount)
	assert.NotEmpty(t, status.Location)

	require.NoError(t, mgr.Clear())
	status, err = mgr.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.RecordCount)
	assert.Zero(t, status.AliasCount)
}

func TestNoneBackendIsNoop(t *testing.T) {
	mgr, err := NewStoreManager(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = mgr.Close() }()

	require.NoError(t, mgr.Evaluations().SaveRecord(testRecord("Maria Silva", time.Now())))
	records, err := mgr.Evaluations().ListRecords("", 0)
	require.NoError(t, err)
	assert.Empty(t, records)

	aliases, err := mgr.Aliases().ListAliases()
	require.NoError(t, err)
	assert.Empty(t, aliases)

	status, err := mgr.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)
}
