package charm_test

import (
	"errors"
	"flag"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akitaonrails/pact-lang/pkg/charm"
)

type rootCmd struct{}

func (rootCmd) Run(args []string) error { return charm.NeedHelp }

type greetCmd struct {
	name  string
	ran   []string
	loud  bool
}

func (c *greetCmd) Run(args []string) error {
	c.ran = args
	return nil
}

func newRootSpec() (*charm.Spec, *greetCmd) {
	root := &charm.Spec{
		Name:  "app",
		Usage: "app <command>",
		Short: "test root",
		New: func(parent charm.Command, fs *flag.FlagSet) (charm.Command, error) {
			return rootCmd{}, nil
		},
	}
	cmd := &greetCmd{}
	greet := &charm.Spec{
		Name:  "greet",
		Usage: "greet <name>",
		Short: "greet someone",
		New: func(parent charm.Command, fs *flag.FlagSet) (charm.Command, error) {
			fs.BoolVar(&cmd.loud, "loud", false, "shout it")
			return cmd, nil
		},
	}
	root.Add(greet)
	return root, cmd
}

func TestExecDispatchesToLeafCommand(t *testing.T) {
	root, cmd := newRootSpec()
	err := root.Exec([]string{"greet", "world"})
	require.NoError(t, err)
	require.Equal(t, []string{"world"}, cmd.ran)
}

func TestExecParsesLeafFlags(t *testing.T) {
	root, cmd := newRootSpec()
	err := root.Exec([]string{"greet", "-loud", "world"})
	require.NoError(t, err)
	require.True(t, cmd.loud)
	require.Equal(t, []string{"world"}, cmd.ran)
}

func TestExecUnknownCommandErrors(t *testing.T) {
	root, _ := newRootSpec()
	err := root.Exec([]string{"bogus"})
	require.Error(t, err)
	require.NotErrorIs(t, err, charm.NeedHelp)
}

func TestExecHelpTokenDoesNotError(t *testing.T) {
	root, _ := newRootSpec()
	err := root.Exec([]string{"greet", "--help"})
	require.NoError(t, err)
}

func TestExecBareRootNeedsHelpNotError(t *testing.T) {
	root, _ := newRootSpec()
	err := root.Exec(nil)
	require.NoError(t, err)
}

func TestNoRunReturnsNeedHelpWhenNoArgs(t *testing.T) {
	err := charm.NoRun(nil)
	require.True(t, errors.Is(err, charm.NeedHelp))
}

func TestNoRunReturnsErrNoRunWithArgs(t *testing.T) {
	err := charm.NoRun([]string{"x"})
	require.True(t, errors.Is(err, charm.ErrNoRun))
}
