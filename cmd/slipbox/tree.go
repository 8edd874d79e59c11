package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/slipbox/pkg/render"
)

var treeCmd = &cobra.Command{
	Use:   "tree <id>",
	Short: "Show what a note references and what references it",
	Long: `Show the neighborhood of a note: the notes it references (descendants)
and the notes that reference it (linkers).

Examples:
  slipbox tree 2a1
  slipbox tree 2a1 --format text`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
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

	tree, err := engine.Tree(args[0])
	if err != nil {
		return err
	}
	return render.Tree(cmd.OutOrStdout(), format, tree)
}
