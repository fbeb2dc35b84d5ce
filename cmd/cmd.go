// Package cmd defines the command-line interface for deskeval.
package cmd

import (
	"github.com/novetech/deskeval/internal/contract"
	"github.com/novetech/deskeval/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the link subcommands to the parent link command
	linkCmd.AddCommand(linkSetCmd)
	linkCmd.AddCommand(linkDeleteCmd)
	linkCmd.AddCommand(linkListCmd)

	// Add the records subcommands to the parent records command
	recordsCmd.AddCommand(recordsCompleteCourseCmd)

	// Add the users subcommands to the parent users command
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersRemoveCmd)

	// Add the presets subcommands to the parent presets command
	presetsCmd.AddCommand(presetsSaveCmd)
	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsShowCmd)
	presetsCmd.AddCommand(presetsDeleteCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("start", "", "Reference period start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("end", "", "Reference period end date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().StringP("technician", "t", "", "Focus on one technician (name, login or email)")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-result breakdowns")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of evaluateCmd to Viper
	evaluateCmd.Flags().String("evaluator", "", "Login of the coordinator performing the evaluation")
	evaluateCmd.Flags().String("preset", "", "Named weight preset to score with (defaults otherwise)")
	evaluateCmd.Flags().String("eval-file", "", "YAML file with the evaluation inputs")
	if err := viper.BindPFlags(evaluateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding evaluate flags", err)
	}

	// Bind all flags of recordsCompleteCourseCmd to Viper
	recordsCompleteCourseCmd.Flags().Int("goal", 0, "Index of the course goal to mark complete (1-based)")
	recordsCompleteCourseCmd.Flags().String("certificate", "", "Path to the uploaded certificate file")
	if err := viper.BindPFlags(recordsCompleteCourseCmd.Flags()); err != nil {
		contract.LogFatal("Error binding records complete-course flags", err)
	}

	// Bind all flags of usersAddCmd to Viper
	usersAddCmd.Flags().String("name", "", "Display name of the technician")
	usersAddCmd.Flags().String("role", "", "Role of the account (coordinator or technician)")
	if err := viper.BindPFlags(usersAddCmd.Flags()); err != nil {
		contract.LogFatal("Error binding users add flags", err)
	}

	// Bind all flags of presetsSaveCmd to Viper
	presetsSaveCmd.Flags().String("from-file", "", "YAML file with the weight sections to snapshot")
	if err := viper.BindPFlags(presetsSaveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding presets save flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
