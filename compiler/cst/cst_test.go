package cst_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akitaonrails/pact-lang/compiler/cst"
	"github.com/akitaonrails/pact-lang/compiler/token"
)

func symbolAtom(text string) cst.Node {
	return cst.Node{Kind: cst.KindAtom, Atom: token.Token{Kind: token.Symbol, Text: text}}
}

func keywordAtom(text string) cst.Node {
	return cst.Node{Kind: cst.KindAtom, Atom: token.Token{Kind: token.Keyword, Text: text}}
}

func TestKindString(t *testing.T) {
	require.Equal(t, "atom", cst.KindAtom.String())
	require.Equal(t, "list", cst.KindList.String())
	require.Equal(t, "vector", cst.KindVector.String())
	require.Equal(t, "map", cst.KindMap.String())
}

func TestNodeHeadAndHeadSymbol(t *testing.T) {
	list := cst.Node{
		Kind:     cst.KindList,
		Children: []cst.Node{symbolAtom("fn"), symbolAtom("f")},
	}
	head, ok := list.Head()
	require.True(t, ok)
	require.True(t, head.IsAtom())

	name, ok := list.HeadSymbol()
	require.True(t, ok)
	require.Equal(t, "fn", name)

	require.Equal(t, []cst.Node{symbolAtom("f")}, list.Rest())
}

func TestNodeHeadEmptyList(t *testing.T) {
	empty := cst.Node{Kind: cst.KindList}
	_, ok := empty.Head()
	require.False(t, ok)
	require.Nil(t, empty.Rest())
}

func TestNodeHeadSymbolRejectsKeywordHead(t *testing.T) {
	list := cst.Node{
		Kind:     cst.KindList,
		Children: []cst.Node{keywordAtom("total")},
	}
	_, ok := list.HeadSymbol()
	require.False(t, ok)
}

func TestNodeHeadSymbolRejectsNonList(t *testing.T) {
	_, ok := symbolAtom("x").HeadSymbol()
	require.False(t, ok)
}

func TestDumpRendersAtomAndListIndentation(t *testing.T) {
	tree := cst.Node{
		Kind: cst.KindList,
		Children: []cst.Node{
			symbolAtom("fn"),
			symbolAtom("f"),
		},
	}
	var buf bytes.Buffer
	cst.Dump(&buf, tree)
	out := buf.String()
	require.Contains(t, out, "list\n")
	require.Contains(t, out, "  symbol(\"fn\")\n")
	require.Contains(t, out, "  symbol(\"f\")\n")
}

func TestDumpRendersMapEntries(t *testing.T) {
	tree := cst.Node{
		Kind: cst.KindMap,
		Entries: []cst.MapEntry{
			{Key: keywordAtom("req"), Value: cst.Node{Kind: cst.KindAtom, Atom: token.Token{Kind: token.String, Text: "REQ-1"}}},
		},
	}
	var buf bytes.Buffer
	cst.Dump(&buf, tree)
	out := buf.String()
	require.Contains(t, out, "map\n")
	require.Contains(t, out, "keyword(\"req\")\n")
	require.Contains(t, out, "string(\"REQ-1\")\n")
}
