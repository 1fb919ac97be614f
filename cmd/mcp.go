package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo-cli/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server reads and edits the same task list as the timer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol, so the banner goes to stderr
		fmt.Fprintln(cmd.ErrOrStderr(), "🚀 Starting MCP server...")
		fmt.Fprintf(cmd.ErrOrStderr(), "   Tasks: %s\n", app.store.Location())
		fmt.Fprintln(cmd.ErrOrStderr(), "   Press Ctrl+C to stop")

		ctx, stop := setupSignalHandler()
		defer stop()

		server := mcp.NewServer(app.tasks, Version)
		if err := server.Start(ctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}
