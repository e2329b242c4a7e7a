// Package cli holds the flag structs shared across cmd/pact subcommands:
// the global logging verbosity flag every subcommand inherits, following
// the dbflags/queryflags pattern this compiler's teacher wires through its
// own root command.
package cli

import (
	"flag"

	"go.uber.org/zap"
)

// Flags owns flags common to every pact subcommand.
type Flags struct {
	Verbose bool
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&f.Verbose, "v", false, "enable verbose (debug-level) logging")
}

// Logger builds the *zap.Logger the driver logs through, switching between
// a production JSON encoder and a development console encoder based on
// -v.
func (f *Flags) Logger() (*zap.Logger, error) {
	if f.Verbose {
		cfg := zap.NewDevelopmentConfig()
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
