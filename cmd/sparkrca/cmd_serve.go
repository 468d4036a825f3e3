package main

import (
	"context"

	"github.com/spf13/cobra"

	"sparkrca/internal/logging"
	mcpserver "sparkrca/internal/mcp"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio for agent integration",
	Long: `Starts an MCP server over stdin/stdout exposing the diagnosis tools
(get_log, search_gc_indicators, search_oom_indicators, analyze_failure_pattern)
plus the deep-agent session tools (write_todos, write_file, ls, get_events).

The server monitors for parent process death. When the agent host
disconnects, the server self-terminates to prevent zombie processes.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	srv := mcpserver.NewServer(nil)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting sparkrca MCP server over stdio (parent watchdog active)")
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
