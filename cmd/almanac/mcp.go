package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/offbeam-labs/almanac/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Almanac MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes the calendar
as MCP tools via STDIO.

The --db flag is optional. If not provided, a system-specific default location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\almanac\almanac.db
- macOS: ~/Library/Application Support/almanac/almanac.db
- Linux: ~/.local/share/almanac/almanac.db

Example:
  almanac mcp
  almanac mcp --db almanac.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Create server wrapper.
		srv, err := mcp.NewAlmanacMCPServer(dbPath, walMode, syncMode)
		if err != nil {
			return err
		}

		// Register all standard tools.
		db := srv.DB()
		s := srv.MCPRawServer()

		mcp.RegisterPingTool(s)
		mcp.RegisterCreateEventTool(s, db)
		mcp.RegisterGetEventTool(s, db)
		mcp.RegisterListEventsTool(s, db)
		mcp.RegisterUpdateEventTool(s, db)
		mcp.RegisterDeleteEventTool(s, db)
		mcp.RegisterEventsOnDayTool(s, db)
		mcp.RegisterUpcomingEventsTool(s, db)
		mcp.RegisterCheckConflictTool(s, db)

		// Log to stderr so we don't contaminate the JSON-RPC stream on stdout.
		fmt.Fprintf(os.Stderr, "Almanac MCP server started. DB: %s (WAL: %t, Sync: %s)\n", srv.DbPath, walMode, syncMode)
		fmt.Fprintln(os.Stderr, "Available tools: ping, create_event, get_event, list_events, update_event, delete_event, events_on_day, upcoming_events, check_conflict")
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		// Run the server (blocks until stdio closes).
		return srv.Start()
	},
}
