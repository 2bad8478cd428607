package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/tally/internal/config"
)

// initCmd creates the .tally directory for an election folder
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .tally/ with a default config",
	Long: `Creates .tally/config.yaml and .tally/logs/ in the election folder.
An existing config is left untouched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := config.InitTallyDir(projectDir); err != nil {
		return fmt.Errorf("init %s: %w", projectDir, err)
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Config ready at %s\n", cfg.ProjectConfigPath())
	return nil
}
