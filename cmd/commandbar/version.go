package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/commandbar"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of commandbar",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("commandbar version %s\n", strings.TrimSpace(commandbar.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
