package semantic

import (
	"strings"

	"github.com/akitaonrails/pact-lang/compiler/ast"
	"github.com/akitaonrails/pact-lang/compiler/diag"
)

// ModuleTable is the resolved module-scope symbol table built by the name
// resolution pass; the effect and totality passes both consult it.
type ModuleTable struct {
	Types      map[string]*ast.TypeDef
	EffectSets map[string]*ast.EffectSetDef
	Fns        map[string]*ast.FnDef
}

func newModuleTable() *ModuleTable {
	return &ModuleTable{
		Types:      make(map[string]*ast.TypeDef),
		EffectSets: make(map[string]*ast.EffectSetDef),
		Fns:        make(map[string]*ast.FnDef),
	}
}

// isQualified reports whether a callee/reference symbol is a qualified
// `ns/name` external reference, which name resolution treats as opaque.
func isQualified(name string) bool {
	return strings.Contains(name, "/")
}

// ResolveNames runs the module-scope collection pass and then, for every
// FnDef, resolves calls, field accesses, and bare-symbol references against
// the active scope chain (parameters, then nested let/match bindings).
func ResolveNames(mod *ast.Module, d *diag.Collector) *ModuleTable {
	table := newModuleTable()
	declarePos := func(pos int, name string, already bool) {
		if already {
			d.Errorf(diag.DuplicateDeclaration, pos, pos, "duplicate declaration %q", name)
		}
	}
	for _, decl := range mod.Decls {
		switch n := decl.(type) {
		case *ast.TypeDef:
			if _, exists := table.Types[n.Name]; exists {
				declarePos(n.Pos().Offset, n.Name, true)
			}
			table.Types[n.Name] = n
		case *ast.EffectSetDef:
			if _, exists := table.EffectSets[n.Name]; exists {
				declarePos(n.Pos().Offset, n.Name, true)
			}
			table.EffectSets[n.Name] = n
		case *ast.FnDef:
			if _, exists := table.Fns[n.Name]; exists {
				declarePos(n.Pos().Offset, n.Name, true)
			}
			table.Fns[n.Name] = n
		}
	}

	r := &resolver{table: table, diag: d}
	for _, decl := range mod.Decls {
		fn, ok := decl.(*ast.FnDef)
		if !ok {
			continue
		}
		r.resolveFn(fn)
	}
	return table
}

type resolver struct {
	table *ModuleTable
	diag  *diag.Collector
}

func (r *resolver) resolveFn(fn *ast.FnDef) {
	for _, name := range fn.Effects {
		if _, ok := r.table.EffectSets[name]; !ok {
			r.diag.Errorf(diag.UnknownEffectSet, fn.Pos().Offset, fn.Pos().Offset, "unknown effect-set %q referenced by fn %q", name, fn.Name)
		}
	}
	scope := NewScope(nil)
	for _, p := range fn.Params {
		scope.Declare(p.Name)
	}
	if fn.IdempotencyKey != nil {
		r.resolveExpr(fn.IdempotencyKey, scope)
	}
	if fn.Body != nil {
		r.resolveExpr(fn.Body, scope)
	}
}

func (r *resolver) resolveExpr(e ast.Expr, scope *Scope) {
	switch n := e.(type) {
	case *ast.LetExpr:
		inner := NewScope(scope)
		for _, b := range n.Bindings {
			r.resolveExpr(b.Val, inner)
			inner.Declare(b.Name)
		}
		r.resolveExpr(n.Body, inner)
	case *ast.MatchExpr:
		r.resolveExpr(n.Scrutinee, scope)
		for _, arm := range n.Arms {
			armScope := NewScope(scope)
			r.declarePattern(arm.Pattern, armScope)
			if arm.Guard != nil {
				r.resolveExpr(arm.Guard, armScope)
			}
			r.resolveExpr(arm.Body, armScope)
		}
	case *ast.IfExpr:
		r.resolveExpr(n.Cond, scope)
		r.resolveExpr(n.Then, scope)
		r.resolveExpr(n.Else, scope)
	case *ast.CallExpr:
		r.resolveCallee(n.Callee, n.Pos().Offset, scope)
		for _, a := range n.Args {
			r.resolveExpr(a, scope)
		}
	case *ast.FieldAccessExpr:
		r.resolveExpr(n.Obj, scope)
	case *ast.CtorExpr:
		for _, p := range n.Payload {
			r.resolveExpr(p, scope)
		}
	case *ast.MapLitExpr:
		for _, entry := range n.Entries {
			r.resolveExpr(entry.Value, scope)
		}
	case *ast.VecLitExpr:
		for _, el := range n.Elements {
			r.resolveExpr(el, scope)
		}
	case *ast.LiteralExpr:
		if n.Kind == ast.LitSymbolRef {
			r.resolveSymbolRef(n.Str, n.Pos().Offset, scope)
		}
	}
}

// resolveCallee handles a Call node's callee. An unqualified name that
// isn't an in-module Fn is treated as an opaque external/intrinsic
// operation (query, build, get, and similar naming-convention intrinsics),
// per the Design Notes open question on unenumerated intrinsics — the same
// policy effects.go's checkIntrinsicConvention applies to these calls. It
// is never an error: only FieldAccess object roots and other bare-symbol
// references are required to resolve, via resolveSymbolRef.
func (r *resolver) resolveCallee(name string, pos int, scope *Scope) {
	if isQualified(name) || scope.Lookup(name) {
		return
	}
	if _, ok := r.table.Fns[name]; ok {
		return
	}
}

// resolveSymbolRef handles a bare symbol used anywhere other than a Call
// callee: a FieldAccess object root, a Ctor/Call argument, a map/vector
// element. It resolves against the scope chain, the module's Fns, and its
// TypeDefs (a bare type name like `T` in `(build T {...})` refers to a
// declared type, not a binding). Unqualified names found nowhere raise
// UnresolvedSymbol.
func (r *resolver) resolveSymbolRef(name string, pos int, scope *Scope) {
	if isQualified(name) {
		return
	}
	if scope.Lookup(name) {
		return
	}
	if _, ok := r.table.Fns[name]; ok {
		return
	}
	if _, ok := r.table.Types[name]; ok {
		return
	}
	r.diag.Errorf(diag.UnresolvedSymbol, pos, pos, "unresolved symbol %q", name)
}

func (r *resolver) declarePattern(p ast.Pattern, scope *Scope) {
	switch pat := p.(type) {
	case *ast.BindingPattern:
		scope.Declare(pat.Name)
	case *ast.CtorPattern:
		for _, sub := range pat.SubPats {
			r.declarePattern(sub, scope)
		}
	}
}
