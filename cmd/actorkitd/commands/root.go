// Package commands holds the cobra command tree for actorkitd.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/roasbeef/actorkit/internal/build"
)

var (
	// configPath is the path to the YAML configuration file.
	configPath string

	// logDir is the directory rotating log files are written to; empty
	// disables file logging and leaves console logging only.
	logDir string

	// dispatchers overrides core.numberOfDispatchers from the config
	// document when non-zero.
	dispatchers int

	// maxLogFiles is the maximum number of rotated log files to keep.
	maxLogFiles int

	// maxLogFileSize is the maximum log file size in MB before rotation.
	maxLogFileSize int
)

// rootCmd is the base command for actorkitd.
var rootCmd = &cobra.Command{
	Use:   "actorkitd",
	Short: "actorkitd runs the actor runtime's example application tree",
	Long: `actorkitd wires a config document, a channel logger, and the
actor runtime's worker-pool scheduler together and runs one Gateway
start/stop cycle to completion.`,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", "",
		"Path to YAML config file (default: built-in defaults)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logDir, "log-dir", "",
		"Directory for rotating log files (empty disables file logging)",
	)
	rootCmd.PersistentFlags().IntVar(
		&dispatchers, "dispatchers", 0,
		"Number of scheduler dispatcher goroutines "+
			"(0: use ACTORKITD_DISPATCHERS env var, then config value)",
	)
	rootCmd.PersistentFlags().IntVar(
		&maxLogFiles, "max-log-files", build.DefaultMaxLogFiles,
		"Maximum number of rotated log files to keep",
	)
	rootCmd.PersistentFlags().IntVar(
		&maxLogFileSize, "max-log-file-size", build.DefaultMaxLogFileSize,
		"Maximum log file size in MB before rotation",
	)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}
