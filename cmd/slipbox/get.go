package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/slipbox/pkg/render"
)

var getCmd = &cobra.Command{
	Use:   "get <id>...",
	Short: "Show the notes with the given ids",
	Long: `Show the notes with the given ids, in the order requested.
Ids that match no note are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
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

	return render.Notes(cmd.OutOrStdout(), format, engine.Get(args...))
}
