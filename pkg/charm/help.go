package charm

import (
	"fmt"
	"os"
	"strings"
)

// displayHelp prints usage for the deepest resolved Spec in p: its own
// Usage/Short/Long, then its child commands (hidden ones only when
// showHidden is set).
func displayHelp(p path, showHidden bool) {
	target := p.tail()
	if target == nil {
		return
	}
	var names []string
	for _, n := range p {
		names = append(names, n.spec.Name)
	}
	fmt.Fprintf(os.Stdout, "Usage: %s\n", strings.Join(names, " ")+suffix(target))
	if target.Short != "" {
		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, target.Short)
	}
	if target.Long != "" {
		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, target.Long)
	}
	if len(target.children) > 0 {
		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, "Commands:")
		for _, c := range target.children {
			if c.Hidden && !showHidden {
				continue
			}
			fmt.Fprintf(os.Stdout, "  %-16s %s\n", c.Name, c.Short)
		}
	}
}

func suffix(s *Spec) string {
	if s.Usage != "" {
		return " " + s.Usage
	}
	if len(s.children) > 0 {
		return " <command>"
	}
	return ""
}
