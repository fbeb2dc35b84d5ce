package cmd

import (
	"fmt"

	"github.com/novetech/deskeval/internal/contract"
	"github.com/novetech/deskeval/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// usersCmd manages technician accounts.
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage technician accounts",
	Long: `Manage the accounts evaluations are matched against.

An account carries a display name, a login and an optional role. The name
and login (plus its email local part) are the keys identity matching tries
before falling back to fuzzy similarity.

Subcommands:
  add    - Add or update an account
  list   - Show all accounts
  remove - Delete an account

Examples:
  # Register a technician
  deskeval users add maria.silva --name "Maria Silva" --role technician

  # See who is registered
  deskeval users list`,
}

// usersAddCmd adds or updates an account.
var usersAddCmd = &cobra.Command{
	Use:     "add <login>",
	Short:   "Add or update a technician account",
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		acct := schema.TechnicianAccount{
			Login: args[0],
			Name:  viper.GetString("name"),
			Role:  viper.GetString("role"),
		}
		if acct.Name == "" {
			acct.Name = acct.Login
		}
		if err := storeManager.Users().UpsertUser(acct); err != nil {
			contract.LogFatal("Failed to add user", err)
		}
		fmt.Printf("Saved account %s (%s)\n", acct.Login, acct.Name)
	},
}

// usersListCmd lists all accounts.
var usersListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show all technician accounts",
	Args:    cobra.NoArgs,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		users, err := storeManager.Users().ListUsers()
		if err != nil {
			contract.LogFatal("Failed to list users", err)
		}
		if len(users) == 0 {
			fmt.Println("No accounts stored.")
			return
		}
		for _, u := range users {
			if u.Role != "" {
				fmt.Printf("%s  %s  [%s]\n", u.Login, u.Name, u.Role)
			} else {
				fmt.Printf("%s  %s\n", u.Login, u.Name)
			}
		}
	},
}

// usersRemoveCmd deletes an account.
var usersRemoveCmd = &cobra.Command{
	Use:     "remove <login>",
	Short:   "Delete a technician account",
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := storeManager.Users().DeleteUser(args[0]); err != nil {
			contract.LogFatal("Failed to remove user", err)
		}
		fmt.Printf("Removed account %s\n", args[0])
	},
}
