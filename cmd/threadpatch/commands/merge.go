package commands

import (
	"github.com/spf13/cobra"

	"github.com/irahardianto/threadpatch/internal/engine/config"
)

var flagFormat string

var mergeCmd = &cobra.Command{
	Use:   "merge <thread-file>",
	Short: "Merge the patch revisions of a thread into one diff per file",
	Long: `Read a thread file (YAML or JSON list of dated messages), extract every diff
block, and reconcile hunks touching the same file. Overlapping regions take the
content of the most recent message.

Output formats: diff (default), json, sarif (overlap diagnostics), sections.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		opts := outputOpts(cfg, cmd.OutOrStdout())
		if flagFormat != "" {
			opts.Format = config.Format(flagFormat)
		}

		return newPipeline(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr()).Merge(ctx, args[0], opts)
	},
}

func init() {
	mergeCmd.Flags().StringVar(&flagFormat, "format", "", "Output format: diff, json, sarif or sections")
	rootCmd.AddCommand(mergeCmd)
}
