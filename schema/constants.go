package schema

// Custom string types for type safety.
type (
	// Shift represents the coarse time-of-day bucket of a record.
	Shift string

	// GradeLabel represents the qualitative band of a final grade.
	GradeLabel string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the store.
	DatabaseBackend string
)

// All shifts supported. Hour ranges are disjoint and cover the full day;
// unparseable timestamps fall into OtherShift.
const (
	MorningShift   Shift = "Morning"   // 07:00-12:59
	AfternoonShift Shift = "Afternoon" // 13:00-17:59
	EveningShift   Shift = "Evening"   // 18:00-22:59
	OvernightShift Shift = "Overnight" // 23:00-06:59
	OtherShift     Shift = "Other"
)

// Qualitative grade bands, inclusive lower bounds on the 0-10 final grade.
const (
	ExcellentGrade   GradeLabel = "Excellent"         // >= 9.0
	VeryGoodGrade    GradeLabel = "Very Good"         // >= 8.0
	GoodGrade        GradeLabel = "Good"              // >= 7.0
	RegularGrade     GradeLabel = "Needs Improvement" // >= 6.0
	MustImproveGrade GradeLabel = "Must Improve"      // < 6.0
	UnknownGrade     GradeLabel = "N/A"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllShifts returns every shift bucket in display order.
var AllShifts = []Shift{MorningShift, AfternoonShift, EveningShift, OvernightShift, OtherShift}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
