// Package cli implements the easysurf CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "easysurf",
	Short: "Surf conditions in your menu bar",
	Long: `easysurf shows the current surf conditions for a location as a colored
icon in the system tray. This command opens the settings window, queries the
running daemon and manages its lifecycle.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands (alphabetical)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}
