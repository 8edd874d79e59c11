package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/slipbox/internal/platform"
	"github.com/aretw0/slipbox/pkg/adapters/fs"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the slip-box settings file",
	Long: `Create .slipbox/config.yaml with the default settings in the slip-box
directory. An existing file is left untouched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := baseDir()
	if err != nil {
		return err
	}

	path, created, err := platform.InitConfig(dir, fs.DefaultSystemDir)
	if err != nil {
		return fmt.Errorf("failed to initialize slip-box: %w", err)
	}

	if !created {
		fmt.Fprintln(cmd.OutOrStdout(), "Settings already exist at", path)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Initialized slip-box settings in", path)
	return nil
}
