package main

import (
	"fmt"
	"os"

	"github.com/aretw0/commandbar/internal/cli"
	"github.com/aretw0/commandbar/internal/config"
	"github.com/aretw0/commandbar/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "commandbar",
	Short: "commandbar derives editor toolbars from state snapshots",
	Long: `commandbar renders the toolbar of a snippet editor from a state tree (YAML or JSON)
and serves it over HTTP, MCP or an interactive terminal preview.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to commandbar.toml (default: ./commandbar.toml if present)")
	rootCmd.PersistentFlags().String("state", "", "State fixture (YAML or JSON) to start the session from")
	rootCmd.PersistentFlags().String("session", "default", "Session identifier")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides the config file)")
}

// loadApp reads the persistent flags and wires the application.
func loadApp(cmd *cobra.Command) (*cli.App, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return cli.NewApp(cfg, logging.New(level))
}
