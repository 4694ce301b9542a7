// Package commands implements the posixfs command line.
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
	cfgFile   string
	logLevel  string
	logFile   string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "posixfs",
	Short: "posixfs - FUSE client for PacioFS",
	Long: `posixfs mounts a PacioFS volume as a local filesystem. Every filesystem
call is forwarded to the PacioFS service over gRPC.

Configuration is read from --config, then from POSIXFS_* environment
variables, then from command line flags, each overriding the previous.

Use "posixfs [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. It is called once by main.main.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (TRACE, DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file, or stdout/stderr")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text or json)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(mkfsCmd)
	rootCmd.AddCommand(pingCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
