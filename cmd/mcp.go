package cmd

import (
	"context"

	"github.com/novetech/deskeval/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the deskeval MCP server",
	Long:  `Launch an MCP server that allows AI agents to run KPI reports, resolve technician identities and preview scores via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Suppress the normal header logs when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		return sharedSetup(cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(context.Background(), cfg, storeManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
