package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/slipbox/pkg/core"
)

// prettyNotes keeps the classic slip-box listing: id, name, then the
// references, separated by runs of tabs.
func prettyNotes(w io.Writer, notes []core.Note) error {
	for _, n := range notes {
		line := n.ID + "\t\t\t\t" + n.Name
		if len(n.References) > 0 {
			line += "\t\t\treferences: " + strings.Join(n.References, ", ")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// textNotes prints one aligned row per note.
func textNotes(w io.Writer, notes []core.Note) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", n.ID, n.Name, strings.Join(n.References, ","))
	}
	return tw.Flush()
}

func prettyTree(w io.Writer, tree core.Tree) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\t%s\n", tree.Root.ID, tree.Root.Name)

	section := func(title string, notes []core.Note) {
		fmt.Fprintf(&b, "  %s:\n", title)
		if len(notes) == 0 {
			b.WriteString("    (empty)\n")
			return
		}
		for _, n := range notes {
			fmt.Fprintf(&b, "    %s\t%s\n", n.ID, n.Name)
		}
	}
	section("descendants", tree.Descendants)
	section("linkers", tree.Linkers)

	_, err := io.WriteString(w, b.String())
	return err
}

// textTree prints the three-column linkers | root | descendants table.
func textTree(w io.Writer, tree core.Tree) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINKERS\tROOT\tDESCENDANTS")
	for _, row := range Columns(tree) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row[0], row[1], row[2])
	}
	return tw.Flush()
}

// Columns lays a tree out as rows of (linker, root, descendant) ids.
// The root appears on the first row only; the shorter of the two lists is
// padded with blanks up to the length of the longer one.
func Columns(tree core.Tree) [][3]string {
	n := max(len(tree.Linkers), len(tree.Descendants), 1)

	rows := make([][3]string, n)
	rows[0][1] = tree.Root.ID
	for i, l := range tree.Linkers {
		rows[i][0] = l.ID
	}
	for i, d := range tree.Descendants {
		rows[i][2] = d.ID
	}
	return rows
}
