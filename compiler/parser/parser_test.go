package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akitaonrails/pact-lang/compiler/cst"
	"github.com/akitaonrails/pact-lang/compiler/diag"
	"github.com/akitaonrails/pact-lang/compiler/lexer"
	"github.com/akitaonrails/pact-lang/compiler/parser"
	"github.com/akitaonrails/pact-lang/compiler/srcfiles"
	"github.com/akitaonrails/pact-lang/compiler/token"
)

func parseSrc(t *testing.T, src string) (cst.Node, *diag.Collector) {
	t.Helper()
	coll := diag.NewCollector(srcfiles.Single("test.pct", src))
	toks := lexer.New(src, coll).Tokenize()
	tree := parser.ParseAll(toks, coll)
	return tree, coll
}

func TestParseSimpleList(t *testing.T) {
	tree, coll := parseSrc(t, "(a b c)")
	require.False(t, coll.HasErrors())
	require.Len(t, tree.Children, 1)
	form := tree.Children[0]
	require.Equal(t, cst.KindList, form.Kind)
	head, ok := form.HeadSymbol()
	require.True(t, ok)
	require.Equal(t, "a", head)
	require.Len(t, form.Rest(), 2)
}

func TestParseVector(t *testing.T) {
	tree, coll := parseSrc(t, "[1 2 3]")
	require.False(t, coll.HasErrors())
	form := tree.Children[0]
	require.Equal(t, cst.KindVector, form.Kind)
	require.Len(t, form.Children, 3)
}

func TestParseMapWithColonKeyword(t *testing.T) {
	tree, coll := parseSrc(t, "{:a 1 :b 2}")
	require.False(t, coll.HasErrors())
	form := tree.Children[0]
	require.Equal(t, cst.KindMap, form.Kind)
	require.Len(t, form.Entries, 2)
	require.Equal(t, token.Keyword, form.Entries[0].Key.Atom.Kind)
}

func TestParseMapWithSymbolColonSeparator(t *testing.T) {
	tree, coll := parseSrc(t, "{a: 1, b: 2}")
	require.False(t, coll.HasErrors())
	form := tree.Children[0]
	require.Equal(t, cst.KindMap, form.Kind)
	require.Len(t, form.Entries, 2)
	require.Equal(t, token.Symbol, form.Entries[0].Key.Atom.Kind)
	require.Equal(t, int64(1), form.Entries[0].Value.Atom.Int)
}

func TestParseOddMapArityError(t *testing.T) {
	_, coll := parseSrc(t, "{:a 1 :b}")
	require.True(t, coll.HasErrors())
}

func TestParseUnterminatedListError(t *testing.T) {
	_, coll := parseSrc(t, "(a (b c)")
	require.True(t, coll.HasErrors())
}

func TestParseNestedForms(t *testing.T) {
	tree, coll := parseSrc(t, `(fn foo [a b] (if a b c))`)
	require.False(t, coll.HasErrors())
	form := tree.Children[0]
	head, _ := form.HeadSymbol()
	require.Equal(t, "fn", head)
	rest := form.Rest()
	require.Equal(t, cst.KindVector, rest[1].Kind)
	require.Equal(t, cst.KindList, rest[2].Kind)
}
