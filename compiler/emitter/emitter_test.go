package emitter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akitaonrails/pact-lang/compiler/diag"
	"github.com/akitaonrails/pact-lang/compiler/emitter"
	"github.com/akitaonrails/pact-lang/compiler/lexer"
	"github.com/akitaonrails/pact-lang/compiler/lowering"
	"github.com/akitaonrails/pact-lang/compiler/parser"
	"github.com/akitaonrails/pact-lang/compiler/srcfiles"
)

func TestEmitTypeDefStructAndValidate(t *testing.T) {
	src := `
(module m
  (type Widget
    (field id UUID :immutable :generated)
    (field name String :min-len 1 :max-len 40)))
`
	coll := diag.NewCollector(srcfiles.Single("m.pct", src))
	toks := lexer.New(src, coll).Tokenize()
	tree := parser.ParseAll(toks, coll)
	mod := lowering.Lower(tree, coll)
	require.False(t, coll.HasErrors())

	out := emitter.Emit(mod)
	require.Contains(t, out, "pub struct Widget {")
	require.Contains(t, out, "pub id: Uuid,")
	require.Contains(t, out, "pub name: String,")
	require.Contains(t, out, "pub fn validate(&self) -> Result<(), Vec<String>> {")
	require.Contains(t, out, "if self.name.len() < 1")
	require.Contains(t, out, "if self.name.len() > 40")
}

func TestEmitEnumFieldType(t *testing.T) {
	src := `
(module m
  (type Status
    (field state (enum :active :closed) :immutable)))
`
	coll := diag.NewCollector(srcfiles.Single("m.pct", src))
	toks := lexer.New(src, coll).Tokenize()
	tree := parser.ParseAll(toks, coll)
	mod := lowering.Lower(tree, coll)
	require.False(t, coll.HasErrors())

	out := emitter.Emit(mod)
	require.Contains(t, out, "pub struct Status {")
	require.Contains(t, out, "pub state: ActiveClosed,")
	require.Contains(t, out, "pub enum ActiveClosed {")
	require.Contains(t, out, "Active,")
	require.Contains(t, out, "Closed,")
}

func TestEmitFormatFieldEmitsRegexFunction(t *testing.T) {
	src := `
(module m
  (type Order
    (field total Int :format uuid)))
`
	coll := diag.NewCollector(srcfiles.Single("m.pct", src))
	toks := lexer.New(src, coll).Tokenize()
	tree := parser.ParseAll(toks, coll)
	mod := lowering.Lower(tree, coll)
	require.False(t, coll.HasErrors())

	out := emitter.Emit(mod)
	require.Contains(t, out, "fn uuid_regex() -> &'static Regex {")
	require.Contains(t, out, "static UUID_FORMAT: Lazy<Regex>")
	require.Contains(t, out, "if !uuid_regex().is_match(&self.total)")
}

func TestEmitListFieldType(t *testing.T) {
	src := `
(module m
  (type Bundle
    (field tags (list String))))
`
	coll := diag.NewCollector(srcfiles.Single("m.pct", src))
	toks := lexer.New(src, coll).Tokenize()
	tree := parser.ParseAll(toks, coll)
	mod := lowering.Lower(tree, coll)
	require.False(t, coll.HasErrors())

	out := emitter.Emit(mod)
	require.Contains(t, out, "pub tags: Vec<String>,")
}

func TestEmitLatencyBudgetDoc(t *testing.T) {
	src := `
(module m
  (fn f
    :latency-budget 10m
    (returns (union (ok Int)))
    1))
`
	coll := diag.NewCollector(srcfiles.Single("m.pct", src))
	toks := lexer.New(src, coll).Tokenize()
	tree := parser.ParseAll(toks, coll)
	mod := lowering.Lower(tree, coll)
	require.False(t, coll.HasErrors())

	out := emitter.Emit(mod)
	require.Contains(t, out, "/// Latency budget: 10m")
}
