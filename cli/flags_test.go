package cli_test

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akitaonrails/pact-lang/cli"
)

func TestSetFlagsRegistersVerboseFlag(t *testing.T) {
	var f cli.Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetFlags(fs)
	require.NoError(t, fs.Parse([]string{"-v"}))
	require.True(t, f.Verbose)
}

func TestSetFlagsDefaultsToQuiet(t *testing.T) {
	var f cli.Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetFlags(fs)
	require.NoError(t, fs.Parse(nil))
	require.False(t, f.Verbose)
}

func TestLoggerBuildsProductionLoggerByDefault(t *testing.T) {
	f := cli.Flags{Verbose: false}
	logger, err := f.Logger()
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestLoggerBuildsDevelopmentLoggerWhenVerbose(t *testing.T) {
	f := cli.Flags{Verbose: true}
	logger, err := f.Logger()
	require.NoError(t, err)
	require.NotNil(t, logger)
}
