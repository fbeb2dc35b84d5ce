package evalstore

import (
	"fmt"

	"github.com/novetech/deskeval/internal/contract"
	"github.com/novetech/deskeval/schema"
)

// Manager bundles the store interfaces behind one connection lifecycle.
type Manager struct {
	store *StoreImpl
}

var _ contract.StoreManager = &Manager{} // Compile-time check

// NewStoreManager opens the configured backend and returns the manager the
// command layer works against.
func NewStoreManager(backend schema.DatabaseBackend, connStr string) (*Manager, error) {
	store, err := NewStore(backend, connStr)
	if err != nil {
		return nil, err
	}
	return &Manager{store: store}, nil
}

// Evaluations returns the evaluation record store.
func (m *Manager) Evaluations() contract.EvaluationStore { return m.store }

// Aliases returns the manual identity link store.
func (m *Manager) Aliases() contract.AliasStore { return m.store }

// Users returns the technician account store.
func (m *Manager) Users() contract.UserStore { return m.store }

// Presets returns the weight preset store.
func (m *Manager) Presets() contract.PresetStore { return m.store }

// GetStatus returns counts and location info for the store subcommands.
func (m *Manager) GetStatus() (schema.StoreStatus, error) {
	s := m.store
	status := schema.StoreStatus{Backend: s.backend}

	if s.backend == schema.NoneBackend || s.db == nil {
		return status, nil
	}
	status.Location = s.location

	counts := []struct {
		table string
		dest  *int
	}{
		{recordsTable, &status.RecordCount},
		{aliasesTable, &status.AliasCount},
		{usersTable, &status.UserCount},
		{presetsTable, &status.PresetCount},
	}
	for _, c := range counts {
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(c.table, s.backend))
		if err := s.db.QueryRow(query).Scan(c.dest); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", c.table, err)
		}
	}
	return status, nil
}

// Clear drops all stored rows while keeping the schema in place.
func (m *Manager) Clear() error {
	s := m.store
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}
	for _, table := range []string{recordsTable, aliasesTable, usersTable, presetsTable} {
		query := fmt.Sprintf("DELETE FROM %s", quoteTableName(table, s.backend))
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (m *Manager) Close() error {
	return m.store.Close()
}
