package cmd

import (
	"fmt"
	"sort"

	"github.com/novetech/deskeval/internal/contract"
	"github.com/novetech/deskeval/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// presetsCmd manages named weight presets.
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage named weight presets",
	Long: `Manage named snapshots of the scoring weights.

A preset stores tool weights, competency weights and the block weights
blending the two indices. Evaluations reference a preset by name with
--preset; without one the built-in defaults apply.

Subcommands:
  save   - Store a preset from a weights file
  list   - Show all stored presets
  show   - Print one preset's weights
  delete - Remove a preset

Examples:
  # Save weights for the field team
  deskeval presets save field-team --from-file field-weights.yaml

  # Use them in an evaluation
  deskeval evaluate --evaluator chief.coord --eval-file maria.yaml --preset field-team`,
}

// presetWeightsFile is the shape of a weights YAML file. Missing sections
// fall back to the defaults.
type presetWeightsFile struct {
	ToolWeights       map[string]float64   `mapstructure:"tool_weights"`
	CompetencyWeights map[string]int       `mapstructure:"competency_weights"`
	BlockWeights      *schema.BlockWeights `mapstructure:"block_weights"`
}

// loadWeightsFile reads a weights YAML through a dedicated viper instance.
func loadWeightsFile(path string) (*presetWeightsFile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read weights file %q: %w", path, err)
	}
	in := &presetWeightsFile{}
	if err := v.Unmarshal(in); err != nil {
		return nil, fmt.Errorf("failed to parse weights file %q: %w", path, err)
	}
	return in, nil
}

// presetsSaveCmd stores a preset.
var presetsSaveCmd = &cobra.Command{
	Use:     "save <name>",
	Short:   "Store a named weight preset",
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		preset := schema.WeightPreset{
			Name:              args[0],
			ToolWeights:       schema.GetDefaultToolWeights(),
			CompetencyWeights: schema.GetDefaultCompetencyWeights(),
			BlockWeights:      schema.GetDefaultBlockWeights(),
		}

		if path := viper.GetString("from-file"); path != "" {
			in, err := loadWeightsFile(path)
			if err != nil {
				contract.LogFatal("Failed to load weights", err)
			}
			if len(in.ToolWeights) > 0 {
				preset.ToolWeights = in.ToolWeights
			}
			if len(in.CompetencyWeights) > 0 {
				preset.CompetencyWeights = in.CompetencyWeights
			}
			if in.BlockWeights != nil {
				preset.BlockWeights = *in.BlockWeights
			}
		}

		if preset.BlockWeights.Proficiency+preset.BlockWeights.Competency != 100 {
			contract.LogFatal("Cannot save preset", schema.ErrBlockWeightsSum)
		}
		if err := storeManager.Presets().SavePreset(preset); err != nil {
			contract.LogFatal("Failed to save preset", err)
		}
		fmt.Printf("Saved preset %q\n", preset.Name)
	},
}

// presetsListCmd lists stored presets.
var presetsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show all stored presets",
	Args:    cobra.NoArgs,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		presets, err := storeManager.Presets().ListPresets()
		if err != nil {
			contract.LogFatal("Failed to list presets", err)
		}
		if len(presets) == 0 {
			fmt.Println("No presets stored.")
			return
		}
		for _, p := range presets {
			fmt.Printf("%s (proficiency %d%% / competency %d%%)\n",
				p.Name, p.BlockWeights.Proficiency, p.BlockWeights.Competency)
		}
	},
}

// presetsShowCmd prints one preset.
var presetsShowCmd = &cobra.Command{
	Use:     "show <name>",
	Short:   "Print one preset's weights",
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		preset, err := storeManager.Presets().GetPreset(args[0])
		if err != nil {
			contract.LogFatal("Failed to load preset", err)
		}
		if preset == nil {
			contract.LogFatal("Failed to load preset", fmt.Errorf("no preset named %q", args[0]))
		}
		printPreset(preset)
	},
}

// presetsDeleteCmd removes a preset.
var presetsDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Short:   "Remove a stored preset",
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := storeManager.Presets().DeletePreset(args[0]); err != nil {
			contract.LogFatal("Failed to delete preset", err)
		}
		fmt.Printf("Deleted preset %q\n", args[0])
	},
}

func printPreset(preset *schema.WeightPreset) {
	fmt.Printf("Preset %q\n", preset.Name)
	fmt.Printf("  Blocks: proficiency %d%% / competency %d%%\n",
		preset.BlockWeights.Proficiency, preset.BlockWeights.Competency)

	fmt.Println("  Tool weights:")
	for _, name := range sortedKeys(preset.ToolWeights) {
		fmt.Printf("    %-20s %.0f\n", name, preset.ToolWeights[name])
	}
	fmt.Println("  Competency weights:")
	for _, name := range sortedKeys(preset.CompetencyWeights) {
		fmt.Printf("    %-20s %d\n", name, preset.CompetencyWeights[name])
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
