// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"github.com/novetech/deskeval/schema"
)

// EvaluationStore defines the persistence operations for evaluation records.
// Records are append-only; UpdateLatestRecord exists solely so course
// progress can be marked on the most recent evaluation of a technician.
type EvaluationStore interface {
	// SaveRecord appends a validated evaluation record.
	SaveRecord(rec *schema.EvaluationRecord) error

	// ListRecords returns records newest first. An empty technician matches
	// everyone; a non-positive limit returns everything.
	ListRecords(technician string, limit int) ([]schema.EvaluationRecord, error)

	// LatestRecord returns the most recent record for a technician, or nil
	// when none exists.
	LatestRecord(technician string) (*schema.EvaluationRecord, error)

	// UpdateLatestRecord replaces the most recent record for a technician.
	UpdateLatestRecord(technician string, rec *schema.EvaluationRecord) error
}

// AliasStore defines the persistence operations for manual identity links.
// Keys are normalized account keys; values are responsible labels as they
// appear in uploaded datasets.
type AliasStore interface {
	SetAlias(key, label string) error
	DeleteAlias(key string) error
	ListAliases() (map[string]string, error)
}

// UserStore defines the persistence operations for technician accounts.
type UserStore interface {
	UpsertUser(acct schema.TechnicianAccount) error
	DeleteUser(login string) error
	ListUsers() ([]schema.TechnicianAccount, error)
}

// PresetStore defines the persistence operations for named weight presets.
type PresetStore interface {
	SavePreset(preset schema.WeightPreset) error
	GetPreset(name string) (*schema.WeightPreset, error)
	ListPresets() ([]schema.WeightPreset, error)
	DeletePreset(name string) error
}

// StoreManager bundles every store behind one lifecycle. This allows the
// command layer to be tested without a real database.
type StoreManager interface {
	Evaluations() EvaluationStore
	Aliases() AliasStore
	Users() UserStore
	Presets() PresetStore

	// GetStatus returns counts and location info for the store subcommands.
	GetStatus() (schema.StoreStatus, error)

	// Clear drops all stored rows while keeping the schema in place.
	Clear() error

	Close() error
}
