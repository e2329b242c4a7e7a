package cst

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented textual rendering of n to w, one node per line,
// for the `pact parse` subcommand's CST inspection output.
func Dump(w io.Writer, n Node) {
	dump(w, n, 0)
}

func dump(w io.Writer, n Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.Kind {
	case KindAtom:
		fmt.Fprintf(w, "%s%s\n", indent, n.Atom.String())
	case KindList, KindVector:
		fmt.Fprintf(w, "%s%s\n", indent, n.Kind)
		for _, c := range n.Children {
			dump(w, c, depth+1)
		}
	case KindMap:
		fmt.Fprintf(w, "%smap\n", indent)
		for _, e := range n.Entries {
			dump(w, e.Key, depth+1)
			dump(w, e.Value, depth+2)
		}
	}
}
