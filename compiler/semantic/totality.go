package semantic

import (
	"sort"
	"strings"

	"github.com/akitaonrails/pact-lang/compiler/ast"
	"github.com/akitaonrails/pact-lang/compiler/diag"
)

// variantKey identifies one arm of a declared Union return type: Kind plus,
// for CtorErr, its tag. Ok variants of a single union are not distinguished
// by payload type since the surface syntax carries only one ok arm per
// union in practice; callers that declare several would collide here,
// matching how match patterns themselves cannot distinguish ok payloads
// either.
type variantKey struct {
	Kind ast.CtorKind
	Tag  string
}

func (k variantKey) String() string {
	if k.Kind == ast.CtorErr && k.Tag != "" {
		return "err :" + k.Tag
	}
	return k.Kind.String()
}

func universeOf(variants []ast.Variant) map[variantKey]bool {
	u := make(map[variantKey]bool)
	for _, v := range variants {
		if v.IsErr {
			u[variantKey{Kind: ast.CtorErr, Tag: v.Tag}] = true
		} else {
			u[variantKey{Kind: ast.CtorOk}] = true
		}
	}
	return u
}

// CheckTotality runs the match-exhaustiveness analysis (§4.4.3) for every
// FnDef declared :total true. It is otherwise a no-op: totality is opt-in.
func CheckTotality(mod *ast.Module, table *ModuleTable, d *diag.Collector) {
	for _, decl := range mod.Decls {
		fn, ok := decl.(*ast.FnDef)
		if !ok || !fn.Total {
			continue
		}
		env := &totalityEnv{table: table, bound: make(map[string]map[variantKey]bool)}
		if fn.Body != nil {
			env.walk(fn, fn.Body, d)
		}
	}
}

type totalityEnv struct {
	table *ModuleTable
	bound map[string]map[variantKey]bool // let-bound names known to carry a finite union
}

// walk descends through a function body looking for Match nodes, tracking
// let-bindings whose value is a call to an in-module FnDef so the
// scrutinee's universe can be recovered even when it's a bare symbol.
func (env *totalityEnv) walk(fn *ast.FnDef, e ast.Expr, d *diag.Collector) {
	switch n := e.(type) {
	case *ast.LetExpr:
		for _, b := range n.Bindings {
			env.walk(fn, b.Val, d)
			if u := env.universeOfExpr(b.Val); u != nil {
				env.bound[b.Name] = u
			}
		}
		env.walk(fn, n.Body, d)
	case *ast.MatchExpr:
		env.walk(fn, n.Scrutinee, d)
		env.checkMatch(fn, n, d)
		for _, arm := range n.Arms {
			env.walk(fn, arm.Body, d)
		}
	case *ast.IfExpr:
		env.walk(fn, n.Cond, d)
		env.walk(fn, n.Then, d)
		env.walk(fn, n.Else, d)
	case *ast.CallExpr:
		for _, a := range n.Args {
			env.walk(fn, a, d)
		}
	case *ast.FieldAccessExpr:
		env.walk(fn, n.Obj, d)
	case *ast.CtorExpr:
		for _, p := range n.Payload {
			env.walk(fn, p, d)
		}
	case *ast.MapLitExpr:
		for _, entry := range n.Entries {
			env.walk(fn, entry.Value, d)
		}
	case *ast.VecLitExpr:
		for _, el := range n.Elements {
			env.walk(fn, el, d)
		}
	}
}

// universeOfExpr recovers the variant universe of e when it is a
// Ctor-producing expression whose union is statically known: a call to an
// in-module FnDef, or (transitively) a previously bound name.
func (env *totalityEnv) universeOfExpr(e ast.Expr) map[variantKey]bool {
	switch n := e.(type) {
	case *ast.CallExpr:
		if callee, ok := env.table.Fns[n.Callee]; ok && len(callee.Returns) > 0 {
			return universeOf(callee.Returns)
		}
	case *ast.LiteralExpr:
		if n.Kind == ast.LitSymbolRef {
			if u, ok := env.bound[n.Str]; ok {
				return u
			}
		}
	}
	return nil
}

func (env *totalityEnv) checkMatch(fn *ast.FnDef, m *ast.MatchExpr, d *diag.Collector) {
	universe := env.universeOfExpr(m.Scrutinee)
	if universe == nil {
		d.Warnf(diag.UnknownExhaustivenessDomain, m.Pos().Offset, m.Pos().Offset,
			"match in total function %q has no statically known variant universe", fn.Name)
		return
	}
	remaining := make(map[variantKey]bool, len(universe))
	for k := range universe {
		remaining[k] = true
	}
	sawCatchAll := false
	for _, arm := range m.Arms {
		if sawCatchAll {
			d.Warnf(diag.UnreachableArm, arm.Body.Pos().Offset, arm.Body.Pos().Offset,
				"arm in function %q is unreachable: an earlier arm already matches everything", fn.Name)
			continue
		}
		covered, isCatchAll := coverage(arm.Pattern, universe)
		if isCatchAll {
			sawCatchAll = true
		}
		for k := range covered {
			delete(remaining, k)
		}
	}
	if len(remaining) > 0 {
		var names []string
		for k := range remaining {
			names = append(names, k.String())
		}
		sort.Strings(names)
		d.Errorf(diag.NonExhaustiveMatch, m.Pos().Offset, m.Pos().Offset,
			"match in total function %q is not exhaustive: missing %s", fn.Name, strings.Join(names, ", "))
	}
}

// coverage reports which variants a single arm pattern covers, and whether
// the pattern is a catch-all (wildcard or bare binding) that renders every
// later arm unreachable. `err _` covers every err variant but is not a
// catch-all.
func coverage(p ast.Pattern, universe map[variantKey]bool) (map[variantKey]bool, bool) {
	switch pat := p.(type) {
	case *ast.WildcardPattern, *ast.BindingPattern:
		all := make(map[variantKey]bool, len(universe))
		for k := range universe {
			all[k] = true
		}
		return all, true
	case *ast.CtorPattern:
		if pat.Kind == ast.CtorErr && pat.Tag == "" {
			covered := make(map[variantKey]bool)
			for k := range universe {
				if k.Kind == ast.CtorErr {
					covered[k] = true
				}
			}
			return covered, false
		}
		return map[variantKey]bool{{Kind: pat.Kind, Tag: pat.Tag}: true}, false
	default:
		return nil, false
	}
}
