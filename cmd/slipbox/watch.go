package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aretw0/slipbox/pkg/core"
	"github.com/aretw0/slipbox/pkg/render"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "List the notes again whenever the slip-box changes",
	Long: `Print the note list, then print it again after every change to the
slip-box until interrupted. A change that leaves the slip-box unreadable
is logged and the previous listing stays on screen.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	events, err := svc.Watch(ctx)
	if err != nil {
		return err
	}

	if err := relist(ctx, cmd, svc, format); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			slog.Info("change detected", "event", event.String())
			if err := relist(ctx, cmd, svc, format); err != nil {
				slog.Error("reload failed", "error", err)
			}
		}
	}
}

func relist(ctx context.Context, cmd *cobra.Command, svc *core.Service, format render.Format) error {
	engine, err := svc.Load(ctx)
	if err != nil {
		return err
	}
	if engine.Corpus().Empty() {
		slog.Info("slip-box is empty")
		return nil
	}

	out := cmd.OutOrStdout()
	if err := render.Notes(out, format, engine.List()); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out)
	return err
}
