// Package commands implements the CLI commands for the upcalld dispatch
// service.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "upcalld",
	Short: "upcalld - asynchronous filesystem upcall dispatch service",
	Long: `upcalld runs the asynchronous dispatch layer that lets filesystem
backends notify a server core of events (cache invalidation, attribute
change, lock availability, layout recall, device notification, delegation
recall) without blocking the backend's own goroutine.

Use "upcalld [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: $XDG_CONFIG_HOME/upcalld/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(initCmd)
}
