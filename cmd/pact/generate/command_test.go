package generate_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akitaonrails/pact-lang/cmd/pact/generate"
	"github.com/akitaonrails/pact-lang/cmd/pact/root"
	"github.com/akitaonrails/pact-lang/pkg/charm"
)

const sampleYAML = `
spec: order-service
domain:
  Order:
    - name: id
      type: uuid
endpoints:
  get-order:
    description: fetch an order
    input:
      source: url
      fields:
        - name: id
          type: uuid
    outputs:
      - label: found
        type: uuid
        is_success: true
        http_status: 200
`

func newViaNew(t *testing.T, flagArgs []string) *generate.Command {
	t.Helper()
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	cmd, err := generate.New(&root.Command{}, fs)
	require.NoError(t, err)
	require.NoError(t, fs.Parse(flagArgs))
	return cmd.(*generate.Command)
}

func TestRunRequiresInputAndOutputFlag(t *testing.T) {
	c := newViaNew(t, nil)
	err := c.Run([]string{"spec.yaml"})
	require.ErrorIs(t, err, charm.NeedHelp)
}

func TestRunWritesGeneratedPactSource(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "spec.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0o644))
	outPath := filepath.Join(dir, "out.pct")

	c := newViaNew(t, []string{"-o", outPath})
	err := c.Run([]string{yamlPath})
	require.NoError(t, err)

	out, readErr := os.ReadFile(outPath)
	require.NoError(t, readErr)
	require.Contains(t, string(out), "(module order-service")
}

func TestRunReportsInvalidYAMLAsUserError(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "spec.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("not: [valid"), 0o644))
	outPath := filepath.Join(dir, "out.pct")

	c := newViaNew(t, []string{"-o", outPath})
	err := c.Run([]string{yamlPath})
	var ee root.ExitError
	require.ErrorAs(t, err, &ee)
	require.Equal(t, 1, ee.Code)
	require.NotEmpty(t, ee.Msg)
}
