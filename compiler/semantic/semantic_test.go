package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akitaonrails/pact-lang/compiler/diag"
	"github.com/akitaonrails/pact-lang/compiler/lexer"
	"github.com/akitaonrails/pact-lang/compiler/lowering"
	"github.com/akitaonrails/pact-lang/compiler/parser"
	"github.com/akitaonrails/pact-lang/compiler/semantic"
	"github.com/akitaonrails/pact-lang/compiler/srcfiles"
)

func analyze(t *testing.T, src string) *diag.Collector {
	t.Helper()
	coll := diag.NewCollector(srcfiles.Single("test.pct", src))
	toks := lexer.New(src, coll).Tokenize()
	tree := parser.ParseAll(toks, coll)
	mod := lowering.Lower(tree, coll)
	require.NotNil(t, mod)
	semantic.Analyze(mod, coll)
	return coll
}

func TestResolveNamesAcceptsParamsAndLetBindings(t *testing.T) {
	coll := analyze(t, `
(module m
  (fn f
    (param x Int)
    (returns (union (ok Int)))
    (let [y (std/add x 1)] (ok y))))
`)
	require.False(t, coll.HasErrors())
}

func TestResolveNamesRejectsUnknownSymbol(t *testing.T) {
	coll := analyze(t, `
(module m
  (fn f
    (returns (union (ok Int)))
    (ok unbound-thing)))
`)
	require.True(t, coll.HasErrors())
}

func TestResolveNamesRejectsDuplicateDeclaration(t *testing.T) {
	coll := analyze(t, `
(module m
  (fn f (returns (union (ok Int))) 1)
  (fn f (returns (union (ok Int))) 2))
`)
	require.True(t, coll.HasErrors())
}

func TestResolveNamesAllowsQualifiedExternalCallee(t *testing.T) {
	coll := analyze(t, `
(module m
  (fn f
    (returns (union (ok Int)))
    (ok (ext/helper 1))))
`)
	require.False(t, coll.HasErrors())
}

func TestEffectCheckRejectsMissingDeclaredEffect(t *testing.T) {
	coll := analyze(t, `
(module m
  (effect-set db-read [:reads orders])

  (fn reader
    :effects [db-read]
    (returns (union (ok Int)))
    1)

  (fn caller
    (returns (union (ok Int)))
    (ok (reader))))
`)
	require.True(t, coll.HasErrors())
}

func TestEffectCheckAcceptsSubsumedEffects(t *testing.T) {
	coll := analyze(t, `
(module m
  (effect-set db-read [:reads orders])

  (fn reader
    :effects [db-read]
    (returns (union (ok Int)))
    1)

  (fn caller
    :effects [db-read]
    (returns (union (ok Int)))
    (ok (reader))))
`)
	require.False(t, coll.HasErrors())
}

func TestEffectCheckIntrinsicConventionWarnsNotErrors(t *testing.T) {
	coll := analyze(t, `
(module m
  (fn caller
    (returns (union (ok Int)))
    (ok (query :orders))))
`)
	require.False(t, coll.HasErrors())
	found := false
	for _, e := range coll.All() {
		if e.Sev == srcfiles.SeverityWarning {
			found = true
		}
	}
	require.True(t, found)
}

func TestTotalityAcceptsExhaustiveMatch(t *testing.T) {
	coll := analyze(t, `
(module m
  (fn inner
    (param x Int)
    (returns (union (ok Int) (err :bad {message: String})))
    1)

  (fn f
    :total true
    (param x Int)
    (returns (union (ok Int) (err :bad {message: String})))
    (match (inner x)
      (ok v) (ok v)
      (err _) (err :bad {message: "no"}))))
`)
	require.False(t, coll.HasErrors())
}

func TestTotalityRejectsMissingArm(t *testing.T) {
	coll := analyze(t, `
(module m
  (fn inner
    (returns (union (ok Int) (err :bad {message: String})))
    1)

  (fn f
    :total true
    (returns (union (ok Int) (err :bad {message: String})))
    (match (inner)
      (ok v) (ok v))))
`)
	require.True(t, coll.HasErrors())
}

func TestTotalityWarnsUnreachableArmAfterCatchAll(t *testing.T) {
	coll := analyze(t, `
(module m
  (fn inner
    (returns (union (ok Int) (err :bad {message: String})))
    1)

  (fn f
    :total true
    (returns (union (ok Int) (err :bad {message: String})))
    (match (inner)
      _ (ok 0)
      (ok v) (ok v))))
`)
	require.False(t, coll.HasErrors())
	found := false
	for _, e := range coll.All() {
		if e.Sev == srcfiles.SeverityWarning {
			found = true
		}
	}
	require.True(t, found)
}

func TestTotalityWarnsUnknownDomainForUnboundScrutinee(t *testing.T) {
	coll := analyze(t, `
(module m
  (fn f
    :total true
    (param x Int)
    (returns (union (ok Int)))
    (match x
      (ok v) (ok v))))
`)
	require.False(t, coll.HasErrors())
	found := false
	for _, e := range coll.All() {
		if e.Sev == srcfiles.SeverityWarning {
			found = true
		}
	}
	require.True(t, found)
}
