package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akitaonrails/pact-lang/compiler/diag"
	"github.com/akitaonrails/pact-lang/compiler/lexer"
	"github.com/akitaonrails/pact-lang/compiler/srcfiles"
	"github.com/akitaonrails/pact-lang/compiler/token"
)

func tokenize(t *testing.T, src string) ([]token.Token, *diag.Collector) {
	t.Helper()
	coll := diag.NewCollector(srcfiles.Single("test.pct", src))
	toks := lexer.New(src, coll).Tokenize()
	return toks, coll
}

func TestLexerStructuralTokens(t *testing.T) {
	toks, coll := tokenize(t, "([{}])")
	require.False(t, coll.HasErrors())
	kinds := []token.Kind{token.LParen, token.LBracket, token.LBrace, token.RBrace, token.RBracket, token.RParen, token.EOF}
	require.Len(t, toks, len(kinds))
	for i, k := range kinds {
		require.Equal(t, k, toks[i].Kind)
	}
}

func TestLexerSymbolAndKeyword(t *testing.T) {
	toks, coll := tokenize(t, "fn-name :keyword-name")
	require.False(t, coll.HasErrors())
	require.Equal(t, token.Symbol, toks[0].Kind)
	require.Equal(t, "fn-name", toks[0].Text)
	require.Equal(t, token.Keyword, toks[1].Kind)
	require.Equal(t, "keyword-name", toks[1].Text)
}

func TestLexerBooleanLiterals(t *testing.T) {
	toks, coll := tokenize(t, "true false")
	require.False(t, coll.HasErrors())
	require.Equal(t, token.Boolean, toks[0].Kind)
	require.True(t, toks[0].Bool)
	require.Equal(t, token.Boolean, toks[1].Kind)
	require.False(t, toks[1].Bool)
}

func TestLexerNegativeZeroInteger(t *testing.T) {
	toks, coll := tokenize(t, "-0")
	require.False(t, coll.HasErrors())
	require.Equal(t, token.Integer, toks[0].Kind)
	require.EqualValues(t, 0, toks[0].Int)
}

func TestLexerDurationSuffixPrecedence(t *testing.T) {
	cases := []struct {
		src  string
		unit token.DurationUnit
	}{
		{"1ms", token.Ms},
		{"1s", token.S},
		{"1m", token.M},
		{"1h", token.H},
	}
	for _, c := range cases {
		toks, coll := tokenize(t, c.src)
		require.False(t, coll.HasErrors(), c.src)
		require.Equal(t, token.Duration, toks[0].Kind, c.src)
		require.EqualValues(t, 1, toks[0].Int, c.src)
		require.Equal(t, c.unit, toks[0].Unit, c.src)
	}
}

func TestLexerMsDoesNotLexAsMThenS(t *testing.T) {
	toks, coll := tokenize(t, "10ms")
	require.False(t, coll.HasErrors())
	require.Len(t, toks, 2) // Duration, EOF
	require.Equal(t, token.Duration, toks[0].Kind)
	require.Equal(t, token.Ms, toks[0].Unit)
}

func TestLexerStringEscapes(t *testing.T) {
	toks, coll := tokenize(t, `"a\nb\t\"c\""`)
	require.False(t, coll.HasErrors())
	require.Equal(t, token.String, toks[0].Kind)
	require.Equal(t, "a\nb\t\"c\"", toks[0].Text)
}

func TestLexerUnterminatedString(t *testing.T) {
	_, coll := tokenize(t, `"abc`)
	require.True(t, coll.HasErrors())
}

func TestLexerRegexEscapedSlashDoesNotTerminate(t *testing.T) {
	toks, coll := tokenize(t, `#/https?:\/\/.+/`)
	require.False(t, coll.HasErrors())
	require.Equal(t, token.Regex, toks[0].Kind)
	require.Equal(t, `https?:\/\/.+`, toks[0].Text)
}

func TestLexerLineComment(t *testing.T) {
	toks, coll := tokenize(t, ";; a comment\nfoo")
	require.False(t, coll.HasErrors())
	require.Equal(t, token.Symbol, toks[0].Kind)
	require.Equal(t, "foo", toks[0].Text)
}

func TestLexerUnexpectedChar(t *testing.T) {
	_, coll := tokenize(t, "@")
	require.True(t, coll.HasErrors())
}
