package cmd

import (
	"fmt"
	"sort"

	"github.com/novetech/deskeval/internal/contract"
	"github.com/novetech/deskeval/schema"
	"github.com/spf13/cobra"
)

// linkCmd manages manual identity links between accounts and dataset labels.
var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Manage manual links between accounts and dataset labels",
	Long: `Manage manual identity links.

When fuzzy matching cannot resolve a technician against the responsible
labels of an export, a manual link pins an account key to a label. Manual
links always win over exact and fuzzy matching.

Keys are normalized before storage: accents stripped, lowercased, spacing
collapsed. Linking "João Silva" and "joao silva" is the same link.

Subcommands:
  set    - Pin an account key to a dataset label
  delete - Remove a manual link
  list   - Show all manual links

Examples:
  # Pin a login to the label used in exports
  deskeval link set joao.silva "João Silva (joao.silva)"

  # Remove the link again
  deskeval link delete joao.silva`,
}

// linkSetCmd pins an account key to a label.
var linkSetCmd = &cobra.Command{
	Use:     "set <account-key> <label>",
	Short:   "Pin an account key to a dataset responsible label",
	Args:    cobra.ExactArgs(2),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		key := schema.NormalizeKey(args[0])
		if key == "" {
			contract.LogFatal("Cannot set link", fmt.Errorf("account key %q normalizes to nothing", args[0]))
		}
		if err := storeManager.Aliases().SetAlias(key, args[1]); err != nil {
			contract.LogFatal("Failed to set link", err)
		}
		fmt.Printf("Linked %q -> %q\n", key, args[1])
	},
}

// linkDeleteCmd removes a manual link.
var linkDeleteCmd = &cobra.Command{
	Use:     "delete <account-key>",
	Short:   "Remove a manual identity link",
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		key := schema.NormalizeKey(args[0])
		if err := storeManager.Aliases().DeleteAlias(key); err != nil {
			contract.LogFatal("Failed to delete link", err)
		}
		fmt.Printf("Deleted link for %q\n", key)
	},
}

// linkListCmd lists all manual links.
var linkListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show all manual identity links",
	Args:    cobra.NoArgs,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		aliases, err := storeManager.Aliases().ListAliases()
		if err != nil {
			contract.LogFatal("Failed to list links", err)
		}
		if len(aliases) == 0 {
			fmt.Println("No manual links stored.")
			return
		}
		keys := make([]string, 0, len(aliases))
		for k := range aliases {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s -> %s\n", k, aliases[k])
		}
	},
}
