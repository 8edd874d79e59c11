package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/slipbox/pkg/render"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every note sorted by id",
	Long: `List every note of the slip-box sorted by id, with the notes it references.

Examples:
  slipbox list
  slipbox list -r -p '*.md'
  slipbox list --format json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	engine, err := svc.Load(cmd.Context())
	if err != nil {
		return err
	}
	if engine.Corpus().Empty() {
		return nil
	}

	return render.Notes(cmd.OutOrStdout(), format, engine.List())
}
