package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/slipbox/pkg/adapters/fs"
	"github.com/aretw0/slipbox/pkg/core"
	"github.com/aretw0/slipbox/pkg/render"
)

var statusDiagram bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the slip-box and the components reading it",
	Long: `Load the slip-box once and report how many notes it holds, which ids
are declared more than once, and the state of the service and its source.

Use --diagram to print the same information as a Mermaid diagram.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusDiagram, "diagram", false, "print a Mermaid diagram")
}

type statusReport struct {
	Notes      int                 `json:"notes" yaml:"notes"`
	Untagged   int                 `json:"untagged" yaml:"untagged"`
	Duplicates map[string][]string `json:"duplicates" yaml:"duplicates"`
	Service    any                 `json:"service" yaml:"service"`
	Source     any                 `json:"source" yaml:"source"`
}

func runStatus(cmd *cobra.Command, args []string) error {
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

	report := statusReport{
		Notes:      engine.Corpus().Len(),
		Duplicates: engine.Index().Duplicates(),
		Service:    svc.State(),
	}
	for _, n := range engine.Corpus().Notes() {
		if !n.Tagged() {
			report.Untagged++
		}
	}
	if intro, ok := svc.Source().(introspection.Introspectable); ok {
		report.Source = intro.State()
	}

	out := cmd.OutOrStdout()
	if statusDiagram {
		config := introspection.DefaultDiagramConfig()
		config.SecondaryID = "slipbox"
		config.SecondaryLabel = "Slip-box Topology"
		_, err := fmt.Fprintln(out, introspection.TreeDiagram(statusTree(report), config))
		return err
	}

	switch format {
	case render.FormatPretty, render.FormatText:
		return printStatus(cmd, report)
	default:
		return render.Encode(out, format, report)
	}
}

func printStatus(cmd *cobra.Command, r statusReport) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "notes:\t%d\n", r.Notes)
	fmt.Fprintf(tw, "untagged:\t%d\n", r.Untagged)

	ids := make([]string, 0, len(r.Duplicates))
	for id := range r.Duplicates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(tw, "duplicate %s:\t%s\n", id, strings.Join(r.Duplicates[id], ", "))
	}

	if st, ok := r.Source.(fs.SourceState); ok {
		fmt.Fprintf(tw, "path:\t%s\n", st.Path)
		fmt.Fprintf(tw, "patterns:\t%s\n", strings.Join(st.Patterns, ", "))
		fmt.Fprintf(tw, "recursive:\t%t\n", st.Recursive)
	}
	return tw.Flush()
}

type statusNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []statusNode
}

// statusTree arranges the report for introspection.TreeDiagram. Status values
// must be among the classes of introspection.DefaultStyles().
func statusTree(r statusReport) statusNode {
	service := statusNode{
		Name:   "Service",
		Status: "running",
		Metadata: map[string]string{
			"type":  "process",
			"notes": strconv.Itoa(r.Notes),
		},
	}
	if st, ok := r.Service.(core.ServiceState); ok {
		service.Metadata["loads"] = strconv.Itoa(st.Loads)
	}

	if st, ok := r.Source.(fs.SourceState); ok {
		watcher := "suspended"
		if st.WatcherActive {
			watcher = "running"
		}
		service.Children = append(service.Children, statusNode{
			Name:   "Source",
			Status: "running",
			Metadata: map[string]string{
				"type":  "container",
				"path":  st.Path,
				"files": strconv.Itoa(st.LastCount),
			},
			Children: []statusNode{{
				Name:     "Watcher",
				Status:   watcher,
				Metadata: map[string]string{"type": "goroutine"},
			}},
		})
	}

	return statusNode{
		Name:   "Slip-box",
		Status: "running",
		Metadata: map[string]string{
			"type":       "container",
			"untagged":   strconv.Itoa(r.Untagged),
			"duplicates": strconv.Itoa(len(r.Duplicates)),
		},
		Children: []statusNode{service},
	}
}
