package commands

import (
	"github.com/spf13/cobra"
)

var flagLineNumbers bool

var splitCmd = &cobra.Command{
	Use:   "split [file|-]",
	Short: "Split diff text into per-file sections",
	Long: `Split raw diff text into one section per "diff --git" header and classify
every line. With --json the sections are printed with their line kinds and
highlight indexes; otherwise they are printed as diff text, colored and
syntax-highlighted on a terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		opts := outputOpts(cfg, cmd.OutOrStdout())
		opts.LineNumbers = flagLineNumbers

		p := newPipeline(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		p.Stdin = cmd.InOrStdin()
		return p.Split(ctx, inputArg(args), opts)
	},
}

func init() {
	splitCmd.Flags().BoolVarP(&flagLineNumbers, "line-numbers", "n", false, "Prefix lines with old and new file line numbers")
	rootCmd.AddCommand(splitCmd)
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
