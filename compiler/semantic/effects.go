package semantic

import (
	"sort"
	"strings"

	"github.com/akitaonrails/pact-lang/compiler/ast"
	"github.com/akitaonrails/pact-lang/compiler/diag"
)

// effectKey is the (kind, resource) pair effect subsumption is checked on.
type effectKey struct {
	Kind     ast.EffectKind
	Resource string
}

func (k effectKey) String() string {
	return k.Kind.String() + " " + k.Resource
}

func envOf(table *ModuleTable, names []string) map[effectKey]bool {
	env := make(map[effectKey]bool)
	for _, name := range names {
		set, ok := table.EffectSets[name]
		if !ok {
			continue
		}
		for _, b := range set.Bindings {
			env[effectKey{Kind: b.Kind, Resource: b.Resource}] = true
		}
	}
	return env
}

// CheckEffects runs the mandatory call-graph effect-subsumption check
// (§4.4.2): for every in-module callee reachable from a FnDef's body, the
// caller's declared effect environment must be a superset of the callee's.
// It also runs a supplemental, warning-only convention-based check for
// calls to intrinsics following the query/get/lookup (read) and `*!`
// (write) naming convention, since intrinsics have no declared effect set
// of their own to check against.
func CheckEffects(mod *ast.Module, table *ModuleTable, d *diag.Collector) {
	for _, decl := range mod.Decls {
		fn, ok := decl.(*ast.FnDef)
		if !ok {
			continue
		}
		callerEnv := envOf(table, fn.Effects)
		if fn.Body != nil {
			walkCalls(fn.Body, func(call *ast.CallExpr) {
				checkCallEffect(fn, call, table, callerEnv, d)
			})
		}
	}
}

func checkCallEffect(fn *ast.FnDef, call *ast.CallExpr, table *ModuleTable, callerEnv map[effectKey]bool, d *diag.Collector) {
	if isQualified(call.Callee) {
		return
	}
	if callee, ok := table.Fns[call.Callee]; ok {
		calleeEnv := envOf(table, callee.Effects)
		var missing []effectKey
		for k := range calleeEnv {
			if !callerEnv[k] {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			sort.Slice(missing, func(i, j int) bool { return missing[i].String() < missing[j].String() })
			var names []string
			for _, m := range missing {
				names = append(names, m.String())
			}
			d.Errorf(diag.EffectEscape, call.Pos().Offset, call.Pos().Offset,
				"function %q calls %q without declaring required effects: %s", fn.Name, callee.Name, strings.Join(names, ", "))
		}
		return
	}
	checkIntrinsicConvention(fn, call, callerEnv, d)
}

// checkIntrinsicConvention implements the supplemented convention-based
// effect inference for calls with no in-module FnDef: `query`/`get`/
// `lookup` imply a read, and a `!`-suffixed name implies a write on the
// resource named by its first argument. Since intrinsics are opaque by
// definition, a missing declared effect is a warning, not an error.
func checkIntrinsicConvention(fn *ast.FnDef, call *ast.CallExpr, callerEnv map[effectKey]bool, d *diag.Collector) {
	name := call.Callee
	resource := firstArgSymbolOrKeyword(call)
	if resource == "" {
		return
	}
	var kind ast.EffectKind
	var matched bool
	switch {
	case name == "query" || name == "get" || name == "lookup":
		kind, matched = ast.Reads, true
	case strings.HasSuffix(name, "!"):
		kind, matched = ast.Writes, true
	}
	if !matched {
		return
	}
	if !callerEnv[effectKey{Kind: kind, Resource: resource}] {
		d.Warnf(diag.IntrinsicEffectEscape, call.Pos().Offset, call.Pos().Offset,
			"function %q calls intrinsic %q implying %s %s, which is not in its declared effects", fn.Name, name, kind, resource)
	}
}

func firstArgSymbolOrKeyword(call *ast.CallExpr) string {
	if len(call.Args) == 0 {
		return ""
	}
	lit, ok := call.Args[0].(*ast.LiteralExpr)
	if !ok {
		return ""
	}
	if lit.Kind == ast.LitSymbolRef || lit.Kind == ast.LitKeyword {
		return lit.Str
	}
	return ""
}

// walkCalls visits every CallExpr reachable from e, descending through all
// expression forms.
func walkCalls(e ast.Expr, visit func(*ast.CallExpr)) {
	switch n := e.(type) {
	case *ast.CallExpr:
		visit(n)
		for _, a := range n.Args {
			walkCalls(a, visit)
		}
	case *ast.LetExpr:
		for _, b := range n.Bindings {
			walkCalls(b.Val, visit)
		}
		walkCalls(n.Body, visit)
	case *ast.MatchExpr:
		walkCalls(n.Scrutinee, visit)
		for _, arm := range n.Arms {
			if arm.Guard != nil {
				walkCalls(arm.Guard, visit)
			}
			walkCalls(arm.Body, visit)
		}
	case *ast.IfExpr:
		walkCalls(n.Cond, visit)
		walkCalls(n.Then, visit)
		walkCalls(n.Else, visit)
	case *ast.FieldAccessExpr:
		walkCalls(n.Obj, visit)
	case *ast.CtorExpr:
		for _, p := range n.Payload {
			walkCalls(p, visit)
		}
	case *ast.MapLitExpr:
		for _, entry := range n.Entries {
			walkCalls(entry.Value, visit)
		}
	case *ast.VecLitExpr:
		for _, el := range n.Elements {
			walkCalls(el, visit)
		}
	}
}
