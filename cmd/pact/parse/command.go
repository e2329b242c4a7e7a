// Package parse implements `pact parse`: runs the lexer and parser and
// prints the resulting CST structure.
package parse

import (
	"flag"
	"fmt"
	"os"

	"github.com/akitaonrails/pact-lang/cmd/pact/root"
	"github.com/akitaonrails/pact-lang/compiler"
	"github.com/akitaonrails/pact-lang/compiler/cst"
	"github.com/akitaonrails/pact-lang/pkg/charm"
)

var Spec = &charm.Spec{
	Name:  "parse",
	Usage: "parse <input.pct>",
	Short: "run the lexer and parser, printing the CST",
	New:   New,
}

func init() {
	root.Pact.Add(Spec)
}

type Command struct {
	*root.Command
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	return &Command{Command: parent.(*root.Command)}, nil
}

func (c *Command) Run(args []string) error {
	if len(args) != 1 {
		return charm.NeedHelp
	}
	log, err := c.Logger()
	if err != nil {
		return root.InternalError(err.Error())
	}
	defer log.Sync()

	src, err := os.ReadFile(args[0])
	if err != nil {
		return root.UserError(fmt.Sprintf("error: %v", err))
	}

	d := compiler.NewDriver(log)
	tree, coll := d.ParseOnly(args[0], string(src))
	for _, e := range coll.All() {
		fmt.Fprintln(os.Stderr, e.Error())
	}
	if coll.HasErrors() {
		return root.UserErrorSilent()
	}
	cst.Dump(os.Stdout, tree)
	return nil
}
