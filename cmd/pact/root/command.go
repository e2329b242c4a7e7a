// Package root defines the pact command's root charm.Spec, the common
// flags every subcommand inherits, and the exit-code classification the
// driver's error-handling design (§7) requires of the CLI surface.
package root

import (
	"flag"

	"github.com/akitaonrails/pact-lang/cli"
	"github.com/akitaonrails/pact-lang/pkg/charm"
)

var Pact = &charm.Spec{
	Name:  "pact",
	Usage: "pact [options] <command>",
	Short: "compile Pact source into target-language source",
	Long: `
The pact command runs the Pact compiler pipeline: lexer, parser, lowering,
semantic analysis, and code emission.

Use "pact compile" to emit target-language source, "pact check" to run
diagnostics through semantic analysis without emitting code, "pact parse"
to inspect the concrete syntax tree, and "pact generate" to produce Pact
source from a YAML spec document.
`,
	New: New,
}

type Command struct {
	cli.Flags
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{}
	c.SetFlags(f)
	return c, nil
}

func (c *Command) Run(args []string) error {
	return charm.NeedHelp
}

// ExitError carries the process exit code a subcommand wants: 1 for user
// error (bad file, parse/semantic diagnostics), 2 for internal failure.
// Msg is printed to stderr by main only when non-empty, since most
// 1-exits have already printed their diagnostics themselves.
type ExitError struct {
	Code int
	Msg  string
}

func (e ExitError) Error() string { return e.Msg }

func UserError(msg string) error { return ExitError{Code: 1, Msg: msg} }
func UserErrorSilent() error     { return ExitError{Code: 1} }
func InternalError(msg string) error { return ExitError{Code: 2, Msg: msg} }
