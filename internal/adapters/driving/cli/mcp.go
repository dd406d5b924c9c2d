package cli

import (
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docflow/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC. Tools:
  process_file  run a document through the pipeline
  list_events   list processed events
  get_event     show one processed event

Use --port to start an HTTP server instead.

Examples:
  # Stdio mode
  docflow mcp

  # HTTP mode
  docflow mcp --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if err := requireSettings(); err != nil {
		return err
	}
	if builder == nil {
		return errors.New("pipeline builder not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	// Stdout carries JSON-RPC in stdio mode, so agent steps are dropped.
	out := io.Discard
	if port > 0 {
		out = cmd.ErrOrStderr()
	}
	asm, err := builder(*settings, BuildOptions{Out: out})
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	defer closeAssembly(asm)

	server, err := mcp.NewServer(&mcp.Ports{
		Pipeline: asm.Pipeline,
		Locate:   asm.Locate,
		Events:   eventService,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		return server.RunHTTP(cmd.Context(), fmt.Sprintf(":%d", port), func(addr net.Addr) {
			fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", addr)
		})
	}

	return server.Run(cmd.Context())
}
