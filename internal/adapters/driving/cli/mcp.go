package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-chat/internal/adapters/driving/mcp"
	"github.com/custodia-labs/sercha-chat/internal/watcher"
)

var mcpWatch bool

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default, for Claude Desktop)
  sercha-chat mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  sercha-chat mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "sercha-chat": {
        "command": "/path/to/sercha-chat",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().BoolVar(&mcpWatch, "watch", false, "rebuild the index when files in the document directory change")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	if err := ensureIndex(cmd.Context()); err != nil {
		return err
	}

	// The server is long-running, so the document watcher runs alongside
	// it when requested.
	if mcpWatch {
		if libraryService == nil {
			return errors.New("library service not configured")
		}
		if chatConfig == nil || chatConfig.WatchDir == "" {
			return errors.New("watch directory not configured")
		}

		w, err := watcher.New(chatConfig.WatchDir, libraryService)
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}

		watchCtx, watchCancel := context.WithCancel(context.Background())
		defer watchCancel()

		go func() {
			if err := w.Run(watchCtx); err != nil {
				fmt.Fprintf(os.Stderr, "watcher stopped: %v\n", err)
			}
		}()
	}

	ports := &mcp.Ports{
		Assistant: assistantService,
		Library:   libraryService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
