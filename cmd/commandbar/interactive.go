package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/commandbar"
	"github.com/aretw0/commandbar/internal/cli"
	"github.com/aretw0/commandbar/internal/presentation/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"run"},
	Short:   "Browse and activate the toolbar in the terminal",
	Long: `Opens the session toolbar in a terminal UI. Activated items are dispatched through the
session, so the toolbar follows the reduced state. Use --plain for a line-oriented prompt
that reads key paths such as "share/new-public-gist".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		statePath, _ := cmd.Flags().GetString("state")
		sessionID, _ := cmd.Flags().GetString("session")
		plain, _ := cmd.Flags().GetBool("plain")
		headless, _ := cmd.Flags().GetBool("headless")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		tree, err := app.StartSession(sigCtx, sessionID, statePath)
		if err != nil {
			return err
		}

		if plain || headless {
			if !headless {
				tui.PrintBanner(os.Stdout, commandbar.Version)
			}
			runner := commandbar.NewRunner()
			runner.Input = os.Stdin
			runner.Output = os.Stdout
			runner.Headless = headless
			runner.Transition = app.Transition(sessionID)
			if !headless {
				runner.Renderer = tui.RenderToolbar
			}
			_, err := runner.Run(sigCtx, app.Engine, tree)
			return err
		}

		model := tui.NewModel(sigCtx, app.Engine, tree, app.Transition(sessionID))
		final, err := tea.NewProgram(model, tea.WithContext(sigCtx)).Run()
		if errors.Is(err, tea.ErrProgramKilled) && sigCtx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("interactive session failed: %w", err)
		}
		if m, ok := final.(tui.Model); ok && m.Err() != nil {
			return m.Err()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
	interactiveCmd.Flags().Bool("plain", false, "Use the line-oriented prompt instead of the full-screen UI")
	interactiveCmd.Flags().Bool("headless", false, "Plain prompt without banner, prompt or styling (for pipes)")
}
