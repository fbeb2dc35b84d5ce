package cmd

import (
	"fmt"

	"github.com/novetech/deskeval/internal/contract"
	"github.com/novetech/deskeval/internal/evalstore"
	"github.com/novetech/deskeval/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	mgr, err := evalstore.NewStoreManager(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	storeManager = mgr

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func storeMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeMigrateSetupWrapper wraps storeMigrateSetup to provide PreRunE for migrate command.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeMigrateSetup()
}

// storeCmd focused on evaluation store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by reporting commands. This avoids input file
// handling and complex config processing for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the evaluation store",
	Long: `Manage the database holding evaluation records, identity links,
technician accounts and weight presets.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove all stored data
  migrate - Run database schema migrations

Examples:
  # Check store status
  deskeval store status

  # Clear everything and start fresh
  deskeval store clear`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the evaluation store.

Displays:
- Backend type and database location
- Number of stored evaluation records
- Number of identity links, accounts and weight presets

Examples:
  # Check store status
  deskeval store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := storeManager.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		printStoreStatus(status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored evaluation data",
	Long: `Delete all rows from the evaluation store while keeping the schema.

This removes:
- All evaluation records and their history
- Manual identity links
- Technician accounts
- Weight presets

WARNING: This action cannot be undone.

Examples:
  # Clear SQLite store (default)
  deskeval store clear

  # Clear MySQL store (set connection string via env variable)
  DESKEVAL_STORE_BACKEND=mysql DESKEVAL_STORE_DB_CONNECT="..." deskeval store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := storeManager.Clear(); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeMigrateCmd runs database migrations for the evaluation store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the evaluation store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  deskeval store migrate

  # Migrate to specific version
  deskeval store migrate --target-version 1

  # Rollback to initial state
  deskeval store migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := evalstore.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// printStoreStatus renders the store status block.
func printStoreStatus(status schema.StoreStatus) {
	fmt.Println("Evaluation store status:")
	fmt.Printf("  Backend:  %s\n", status.Backend)
	if status.Location != "" {
		fmt.Printf("  Location: %s\n", status.Location)
	}
	fmt.Printf("  Records:  %d\n", status.RecordCount)
	fmt.Printf("  Links:    %d\n", status.AliasCount)
	fmt.Printf("  Accounts: %d\n", status.UserCount)
	fmt.Printf("  Presets:  %d\n", status.PresetCount)
}
