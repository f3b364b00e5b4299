package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/commandbar"
	"github.com/aretw0/commandbar/internal/presentation/tui"
	"github.com/aretw0/commandbar/pkg/toolbar"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the toolbar of a session",
	Long: `Derives the toolbar of the session (started from --state when given) and prints it.
--view runner prints the header of the runner view instead of the editor toolbar.
When the tree carries no screen width, the terminal width is used as the viewport.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		statePath, _ := cmd.Flags().GetString("state")
		sessionID, _ := cmd.Flags().GetString("session")
		format, _ := cmd.Flags().GetString("format")

		tree, err := app.StartSession(cmd.Context(), sessionID, statePath)
		if err != nil {
			return err
		}

		cols := terminalWidth()
		if width, _ := cmd.Flags().GetInt("width"); width > 0 {
			tree = tree.WithWidth(width)
		} else if tree.Screen.Width == 0 && cols > 0 {
			tree = tree.WithWidth(cols * tui.CellWidth)
		}

		var tb toolbar.Toolbar
		switch view, _ := cmd.Flags().GetString("view"); view {
		case "editor":
			tb, err = app.Engine.Toolbar(tree)
			if err != nil {
				return err
			}
		case "runner":
			withBack, _ := cmd.Flags().GetBool("back")
			tb = app.RunnerToolbar(tree, withBack)
		default:
			return fmt.Errorf("unknown view %q (editor, runner)", view)
		}

		var render commandbar.ToolbarRenderer
		switch format {
		case "plain":
			render = commandbar.PlainRenderer
		case "pretty":
			render = tui.RenderToolbar
		case "markdown":
			render, err = tui.NewMarkdownRenderer(cols)
			if err != nil {
				return err
			}
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(tb)
		default:
			return fmt.Errorf("unknown format %q (plain, pretty, markdown, json)", format)
		}

		out, err := render(tb)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

// terminalWidth returns the column count of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("format", "f", "pretty", "Output format: plain, pretty, markdown, json")
	renderCmd.Flags().String("view", "editor", "Toolbar to render: editor, runner")
	renderCmd.Flags().Bool("back", false, "Runner view: offer the go-back item")
	renderCmd.Flags().Int("width", 0, "Viewport width in pixels (overrides the tree and the terminal)")
}
