package commands

import (
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file|-]",
	Short: "Extract the diff blocks embedded in an email body",
	Long: `Scan free-form message text for "diff --git" blocks and print each block,
stopping at the mail signature separator.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		p := newPipeline(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		p.Stdin = cmd.InOrStdin()
		return p.Extract(ctx, inputArg(args), outputOpts(cfg, cmd.OutOrStdout()))
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
