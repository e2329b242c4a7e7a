package lowering_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akitaonrails/pact-lang/compiler/ast"
	"github.com/akitaonrails/pact-lang/compiler/diag"
	"github.com/akitaonrails/pact-lang/compiler/lexer"
	"github.com/akitaonrails/pact-lang/compiler/lowering"
	"github.com/akitaonrails/pact-lang/compiler/parser"
	"github.com/akitaonrails/pact-lang/compiler/srcfiles"
)

func lower(t *testing.T, src string) (*ast.Module, *diag.Collector) {
	t.Helper()
	coll := diag.NewCollector(srcfiles.Single("test.pct", src))
	toks := lexer.New(src, coll).Tokenize()
	tree := parser.ParseAll(toks, coll)
	mod := lowering.Lower(tree, coll)
	return mod, coll
}

const sampleSrc = `
(module orders
  :version 1
  :provenance {:req "REQ-1" :author "alice" :created "2026-01-01" :test ["t1"]}

  (type Order
    :invariants [(> total 0)]
    (field id UUID :immutable :generated)
    (field total Int :min-len 1))

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
    (match (query orders id)
      (some o) (ok o)
      none (err :not-found {message: "missing"}))))
`

func TestLowerModuleHeader(t *testing.T) {
	mod, coll := lower(t, sampleSrc)
	require.False(t, coll.HasErrors())
	require.NotNil(t, mod)
	require.Equal(t, "orders", mod.Name)
	require.NotNil(t, mod.Version)
	require.EqualValues(t, 1, *mod.Version)
	require.Equal(t, "REQ-1", mod.Provenance.Req)
	require.Equal(t, "alice", mod.Provenance.Author)
	require.Equal(t, []string{"t1"}, mod.Provenance.Test)
}

func TestLowerTypeDef(t *testing.T) {
	mod, coll := lower(t, sampleSrc)
	require.False(t, coll.HasErrors())
	var td *ast.TypeDef
	for _, d := range mod.Decls {
		if t2, ok := d.(*ast.TypeDef); ok {
			td = t2
		}
	}
	require.NotNil(t, td)
	require.Equal(t, "Order", td.Name)
	require.Len(t, td.Fields, 2)
	require.True(t, td.Fields[0].Immutable)
	require.True(t, td.Fields[0].Generated)
	require.NotNil(t, td.Fields[1].MinLen)
	require.EqualValues(t, 1, *td.Fields[1].MinLen)
	require.Len(t, td.Invariants, 1)
}

func TestLowerEffectSetDef(t *testing.T) {
	mod, coll := lower(t, sampleSrc)
	require.False(t, coll.HasErrors())
	var es *ast.EffectSetDef
	for _, d := range mod.Decls {
		if e, ok := d.(*ast.EffectSetDef); ok && e.Name == "db-read" {
			es = e
		}
	}
	require.NotNil(t, es)
	require.Len(t, es.Bindings, 1)
	require.Equal(t, ast.Reads, es.Bindings[0].Kind)
	require.Equal(t, "orders", es.Bindings[0].Resource)
}

func TestLowerFnDef(t *testing.T) {
	mod, coll := lower(t, sampleSrc)
	require.False(t, coll.HasErrors())
	var fn *ast.FnDef
	for _, d := range mod.Decls {
		if f, ok := d.(*ast.FnDef); ok {
			fn = f
		}
	}
	require.NotNil(t, fn)
	require.Equal(t, "get-order", fn.Name)
	require.True(t, fn.Total)
	require.Equal(t, []string{"db-read"}, fn.Effects)
	require.Len(t, fn.Params, 1)
	require.Equal(t, "id", fn.Params[0].Name)
	require.Equal(t, "path", fn.Params[0].Source)
	require.Len(t, fn.Returns, 2)
	require.False(t, fn.Returns[0].IsErr)
	require.EqualValues(t, 200, fn.Returns[0].HTTPCode)
	require.True(t, fn.Returns[1].IsErr)
	require.Equal(t, "not-found", fn.Returns[1].Tag)
	require.EqualValues(t, 404, fn.Returns[1].HTTPCode)

	match, ok := fn.Body.(*ast.MatchExpr)
	require.True(t, ok)
	require.Len(t, match.Arms, 2)
}

func TestLowerMissingModuleForm(t *testing.T) {
	mod, coll := lower(t, "(not-a-module)")
	require.True(t, coll.HasErrors())
	require.Nil(t, mod)
}

func TestLowerUnknownAttributeIsReported(t *testing.T) {
	_, coll := lower(t, `(module m :bogus 1 (fn f (returns (union (ok Int))) 1))`)
	require.True(t, coll.HasErrors())
}
