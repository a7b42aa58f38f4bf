// Package commands provides the command-line interface for the assetkit tool.
//
// It implements commands for:
//   - building save files
//   - encryption
//   - decryption
//   - checking include/exclude patterns
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"github.com/spf13/cobra"
)

// addFilterFlags registers the flags selecting and processing files under the roots.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("include", nil, "Patterns of files to process (find -path semantics, default *.txt)")
	cmd.Flags().StringSlice("exclude", nil, "Patterns of files to skip")
	cmd.Flags().String("include-from", "", "JSONC file with an array of include patterns")
	cmd.Flags().String("exclude-from", "", "JSONC file with an array of exclude patterns")
}

// addProcessFlags registers the flags controlling a processing run.
func addProcessFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("stats", false, "Print a summary when done")
	cmd.Flags().Bool("keep-going", false, "Process every file even when some fail")
}

// rootsFromArgs returns a PreRunE handler that takes positional args as the roots to walk.
func rootsFromArgs(a *app) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		if len(args) > 0 {
			a.cfg.Roots = args
		}

		return nil
	}
}
