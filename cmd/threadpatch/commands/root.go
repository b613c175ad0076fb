// Package commands implements the CLI commands for threadpatch.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/irahardianto/threadpatch/internal/platform/logger"
)

// Global flag values accessible to all commands.
var (
	flagJSON    bool
	flagVerbose bool
	flagNoColor bool
	flagConfig  string
	flagTheme   string
)

// rootCmd is the base command for the threadpatch CLI.
var rootCmd = &cobra.Command{
	Use:   "threadpatch",
	Short: "Consolidate patches mailed across a thread",
	Long: `Threadpatch reads the messages of a mailing-list patch thread, extracts the
unified diffs they carry, and merges successive revisions into one diff per file.
Inside an overlapping region the most recent message wins.

It can also split raw diff text into per-file sections with classified,
line-numbered and syntax-highlighted lines.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		l := logger.New(cmd.ErrOrStderr(), flagVerbose, flagJSON)
		ctx := logger.WithContext(cmd.Context(), l)
		cmd.SetContext(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output results as JSON to stdout")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log parsing and merge decisions to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config file (default: ./.threadpatch.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Highlighting theme: light or dark")
}

// Execute runs the root command. Returns an error if the command fails.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
