// Package semantic implements the three-pass semantic analyzer: name
// resolution, effect checking, and match-exhaustiveness (totality).
package semantic

import (
	"github.com/akitaonrails/pact-lang/compiler/ast"
	"github.com/akitaonrails/pact-lang/compiler/diag"
)

// Analyze runs all three passes over mod in order, sharing the module
// symbol table the resolution pass builds. Each pass keeps collecting
// diagnostics even after the previous one reported errors, matching the
// pipeline's resynchronize-and-continue propagation policy; only the
// driver decides whether to halt before code generation.
func Analyze(mod *ast.Module, d *diag.Collector) *ModuleTable {
	table := ResolveNames(mod, d)
	CheckEffects(mod, table, d)
	CheckTotality(mod, table, d)
	return table
}
