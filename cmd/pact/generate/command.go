// Package generate implements `pact generate`: the spec-generator external
// collaborator, reading a YAML subset and emitting Pact source.
package generate

import (
	"flag"
	"fmt"
	"os"

	"github.com/akitaonrails/pact-lang/cmd/pact/root"
	"github.com/akitaonrails/pact-lang/pkg/charm"
	"github.com/akitaonrails/pact-lang/specgen"
)

var Spec = &charm.Spec{
	Name:  "generate",
	Usage: "generate <spec.yaml> -o <out.pct>",
	Short: "generate Pact source from a YAML spec document",
	New:   New,
}

func init() {
	root.Pact.Add(Spec)
}

type Command struct {
	*root.Command
	out string
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	f.StringVar(&c.out, "o", "", "output .pct file path")
	return c, nil
}

func (c *Command) Run(args []string) error {
	if len(args) != 1 || c.out == "" {
		return charm.NeedHelp
	}
	log, err := c.Logger()
	if err != nil {
		return root.InternalError(err.Error())
	}
	defer log.Sync()

	yamlBytes, err := os.ReadFile(args[0])
	if err != nil {
		return root.UserError(fmt.Sprintf("error: %v", err))
	}
	src, err := specgen.Generate(yamlBytes)
	if err != nil {
		return root.UserError(err.Error())
	}
	if err := os.WriteFile(c.out, []byte(src), 0o644); err != nil {
		return root.InternalError(err.Error())
	}
	return nil
}
