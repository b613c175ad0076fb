package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/irahardianto/threadpatch/internal/engine/config"
	"github.com/irahardianto/threadpatch/internal/platform/logger"
)

var flagForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default .threadpatch.yaml in the current directory",
	Long:  "Write a commented .threadpatch.yaml with the default theme, limits and output settings.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		projectDir, err := getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}

		return initProject(ctx, projectDir, &config.RealFileSystem{}, cmd.OutOrStdout(), flagForce)
	},
}

// initProject writes the default config into projectDir with injected
// dependencies for testability. An existing file is kept unless force is set.
func initProject(ctx context.Context, projectDir string, fsys config.FileSystem, out io.Writer, force bool) error {
	log := logger.FromContext(ctx)
	configPath := filepath.Join(projectDir, config.FileName)

	_, err := fsys.ReadFile(configPath)
	switch {
	case err == nil && !force:
		fmt.Fprintf(out, "⚡ Config already exists at %s. Skipping generation.\n", configPath)
		return nil
	case err != nil && !fsys.IsNotExist(err):
		return fmt.Errorf("checking %s: %w", configPath, err)
	}

	if err := fsys.WriteFile(configPath, []byte(config.GenerateConfigYAML())); err != nil {
		return fmt.Errorf("writing %s: %w", config.FileName, err)
	}

	log.Info("config written", "path", configPath)
	fmt.Fprintf(out, "✅ Created %s\n", configPath)
	return nil
}

// getwd is a variable for testability (defaults to os.Getwd).
var getwd = os.Getwd

func init() {
	initCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
