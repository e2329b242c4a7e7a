package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akitaonrails/pact-lang/compiler"
)

const sampleModule = `
(module orders
  :version 1
  :provenance {:req "REQ-1" :author "alice" :created "2026-01-01"}

  (type Order
    :invariants [(greater-than total 0)]
    (field id UUID :immutable :generated)
    (field total Int :min-len 1 :format uuid))

  (effect-set db-read [:reads orders])
  (effect-set db-write [:writes orders])

  (fn get-order
    :provenance {:req "REQ-1" :author "alice" :created "2026-01-01"}
    :effects [db-read]
    :total true
    (param id UUID :source path)
    (returns (union
      (ok Order :http 200)
      (err :not-found {message: String} :http 404)))
    (match (query :orders id)
      (ok o) (ok o)
      (err _) (err :not-found {message: "missing"}))))
`

func TestCompileEmitsStructAndTraitAndEnum(t *testing.T) {
	d := compiler.NewDriver(nil)
	out, coll := d.Compile("orders.pct", sampleModule)
	require.False(t, coll.HasErrors())
	require.Contains(t, out, "orders.rs")
	src := out["orders.rs"]

	require.Contains(t, src, "pub struct Order {")
	require.Contains(t, src, "pub trait DbRead {")
	require.Contains(t, src, "pub trait DbWrite {")
	require.Contains(t, src, "pub enum GetOrderResult {")
	require.Contains(t, src, "fn http_status(&self) -> u16")
	require.Contains(t, src, "impl fmt::Display for GetOrderResult {")
	require.Contains(t, src, "pub fn get_order")
	require.Contains(t, src, "OkGetOrder(")
	require.Contains(t, src, "ErrGetOrder_NotFound(")
}

func TestCompileDeterministicAcrossRuns(t *testing.T) {
	d := compiler.NewDriver(nil)
	out1, coll1 := d.Compile("orders.pct", sampleModule)
	require.False(t, coll1.HasErrors())
	out2, coll2 := d.Compile("orders.pct", sampleModule)
	require.False(t, coll2.HasErrors())
	require.Equal(t, out1, out2)
}

func TestCompileFailsOnSemanticError(t *testing.T) {
	src := `(module m (fn f (returns (union (ok Int))) (ok unbound-thing)))`
	d := compiler.NewDriver(nil)
	out, coll := d.Compile("m.pct", src)
	require.True(t, coll.HasErrors())
	require.Nil(t, out)
}

func TestLowerOnlySkipsSemanticAnalysis(t *testing.T) {
	src := `(module m (fn f (returns (union (ok Int))) (ok unbound-thing)))`
	d := compiler.NewDriver(nil)
	mod, coll := d.LowerOnly("m.pct", src)
	require.False(t, coll.HasErrors())
	require.NotNil(t, mod)
	require.Equal(t, "m", mod.Name)
}
