package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/novetech/deskeval/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 10
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
)

// DateFormat is the representation of period boundary dates.
const DateFormat = "2006-01-02"

// Config holds the runtime configuration for a command invocation.
// This struct remains the "final, validated" config.
type Config struct {
	InputFile  string
	OutputFile string
	Output     schema.OutputMode
	Limit      int
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)

	HasPeriod bool
	Period    schema.PeriodWindow

	Technician string
	Evaluator  string
	Preset     string
	EvalFile   string
	Detail     bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputFileStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile     string `mapstructure:"output-file"`
	Output         string `mapstructure:"output"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Width          int    `mapstructure:"width"`
	Start          string `mapstructure:"start"`
	End            string `mapstructure:"end"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`

	// --- Fields from reportCmd.Flags() ---
	Technician string `mapstructure:"technician"`
	Detail     bool   `mapstructure:"detail"`

	// --- Fields from evaluateCmd.Flags() ---
	Evaluator string `mapstructure:"evaluator"`
	Preset    string `mapstructure:"preset"`
	EvalFile  string `mapstructure:"eval-file"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processPeriod(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-period fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.InputFile = input.InputFileStr
	cfg.OutputFile = input.OutputFile
	cfg.Technician = strings.TrimSpace(input.Technician)
	cfg.Evaluator = strings.TrimSpace(input.Evaluator)
	cfg.Preset = strings.TrimSpace(input.Preset)
	cfg.EvalFile = input.EvalFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Limit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.Limit = input.Limit

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// --- 3. Backend Validation ---
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	return nil
}

// processPeriod handles the optional reference period. Both bounds must be
// given together, and an inverted window is rejected here so every command
// fails the same way.
func processPeriod(cfg *Config, input *ConfigRawInput) error {
	start := strings.TrimSpace(input.Start)
	end := strings.TrimSpace(input.End)

	if start == "" && end == "" {
		cfg.HasPeriod = false
		return nil
	}
	if start == "" || end == "" {
		return fmt.Errorf("--start and --end must be provided together")
	}

	startTime, err := time.Parse(DateFormat, start)
	if err != nil {
		return fmt.Errorf("invalid start date '%s'. Expected %s: %w", start, DateFormat, err)
	}
	endTime, err := time.Parse(DateFormat, end)
	if err != nil {
		return fmt.Errorf("invalid end date '%s'. Expected %s: %w", end, DateFormat, err)
	}
	if startTime.After(endTime) {
		return fmt.Errorf("start date (%s) cannot be after end date (%s)", start, end)
	}

	cfg.HasPeriod = true
	cfg.Period = schema.PeriodWindow{Start: startTime, End: endTime}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
