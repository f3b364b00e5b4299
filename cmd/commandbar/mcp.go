package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/aretw0/commandbar/internal/cli"
	"github.com/aretw0/commandbar/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes session toolbars to AI agents as MCP tools (get_toolbar, activate_item,
patch_state, list_sessions) and resources.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		if transport, _ := cmd.Flags().GetString("transport"); transport != "" {
			app.Config.MCP.Transport = transport
		}
		if statePath, _ := cmd.Flags().GetString("state"); statePath != "" {
			sessionID, _ := cmd.Flags().GetString("session")
			if _, err := app.StartSession(cmd.Context(), sessionID, statePath); err != nil {
				return err
			}
		}

		srv := mcp.NewServer(app.Engine, app.Sessions, mcp.WithLogger(app.Logger))

		switch app.Config.MCP.Transport {
		case "stdio":
			// Keep stray log output off the JSON-RPC stream.
			log.SetOutput(os.Stderr)
			app.Logger.Info("Starting commandbar MCP server (stdio)")
			return srv.ServeStdio()

		case "sse":
			sigCtx := cli.NewSignalContext(cmd.Context())
			defer sigCtx.Cancel()

			baseURL := app.Config.MCP.BaseURL
			if baseURL == "" {
				baseURL = "http://" + app.Config.MCP.Addr
			}
			if err := srv.ServeSSE(sigCtx, app.Config.MCP.Addr, baseURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			app.Logger.Info("MCP server stopped gracefully")
			return nil

		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", app.Config.MCP.Transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "", "Transport protocol to use: 'stdio' or 'sse' (overrides mcp.transport)")
}
