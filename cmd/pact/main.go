// Command pact is the CLI entry point: compile, check, parse, and
// generate subcommands over the Pact compiler pipeline.
package main

import (
	"errors"
	"fmt"
	"os"

	_ "github.com/akitaonrails/pact-lang/cmd/pact/check"
	_ "github.com/akitaonrails/pact-lang/cmd/pact/compile"
	_ "github.com/akitaonrails/pact-lang/cmd/pact/generate"
	_ "github.com/akitaonrails/pact-lang/cmd/pact/parse"
	"github.com/akitaonrails/pact-lang/cmd/pact/root"
)

func main() {
	err := root.Pact.Exec(os.Args[1:])
	if err == nil {
		os.Exit(0)
	}
	var ee root.ExitError
	if errors.As(err, &ee) {
		if ee.Msg != "" {
			fmt.Fprintln(os.Stderr, ee.Msg)
		}
		os.Exit(ee.Code)
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(2)
}
