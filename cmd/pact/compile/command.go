// Package compile implements `pact compile`: runs the full pipeline and
// writes one target-language source file per module into an output
// directory.
package compile

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/akitaonrails/pact-lang/cmd/pact/root"
	"github.com/akitaonrails/pact-lang/compiler"
	"github.com/akitaonrails/pact-lang/pkg/charm"
)

var Spec = &charm.Spec{
	Name:  "compile",
	Usage: "compile <input.pct> -o <outdir>",
	Short: "run the full pipeline and write target-language source",
	New:   New,
}

func init() {
	root.Pact.Add(Spec)
}

type Command struct {
	*root.Command
	outDir string
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	f.StringVar(&c.outDir, "o", ".", "output directory for generated source files")
	return c, nil
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
	files, coll := d.Compile(args[0], string(src))
	for _, e := range coll.All() {
		fmt.Fprintln(os.Stderr, e.Error())
	}
	if coll.HasErrors() || files == nil {
		return root.UserErrorSilent()
	}

	if err := os.MkdirAll(c.outDir, 0o755); err != nil {
		return root.InternalError(err.Error())
	}
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(c.outDir, name), []byte(text), 0o644); err != nil {
			return root.InternalError(err.Error())
		}
	}
	return nil
}
