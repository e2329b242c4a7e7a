package check_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akitaonrails/pact-lang/cmd/pact/check"
	"github.com/akitaonrails/pact-lang/cmd/pact/root"
	"github.com/akitaonrails/pact-lang/pkg/charm"
)

func TestRunRequiresExactlyOneArg(t *testing.T) {
	c := &check.Command{Command: &root.Command{}}
	err := c.Run(nil)
	require.ErrorIs(t, err, charm.NeedHelp)
}

func TestRunAcceptsSemanticallyValidModule(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.pct")
	require.NoError(t, os.WriteFile(path, []byte("(module m (fn f (returns (union (ok Int))) (ok 1)))"), 0o644))

	c := &check.Command{Command: &root.Command{}}
	err := c.Run([]string{path})
	require.NoError(t, err)
}

func TestRunRejectsUnresolvedSymbolSilently(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.pct")
	require.NoError(t, os.WriteFile(path, []byte("(module m (fn f (returns (union (ok Int))) (ok unbound-thing)))"), 0o644))

	c := &check.Command{Command: &root.Command{}}
	err := c.Run([]string{path})
	var ee root.ExitError
	require.ErrorAs(t, err, &ee)
	require.Equal(t, 1, ee.Code)
	require.Empty(t, ee.Msg)
}
