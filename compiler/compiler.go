// Package compiler wires the lexer, parser, lowering, semantic analysis,
// and emitter stages into the Driver the CLI and spec generator both call.
package compiler

import (
	"go.uber.org/zap"

	"github.com/akitaonrails/pact-lang/compiler/ast"
	"github.com/akitaonrails/pact-lang/compiler/cst"
	"github.com/akitaonrails/pact-lang/compiler/diag"
	"github.com/akitaonrails/pact-lang/compiler/emitter"
	"github.com/akitaonrails/pact-lang/compiler/lexer"
	"github.com/akitaonrails/pact-lang/compiler/lowering"
	"github.com/akitaonrails/pact-lang/compiler/parser"
	"github.com/akitaonrails/pact-lang/compiler/semantic"
	"github.com/akitaonrails/pact-lang/compiler/srcfiles"
	"github.com/akitaonrails/pact-lang/compiler/token"
)

// Driver runs the pipeline to any of its four barriers: parse-only,
// lower-only, check (through semantic analysis), or full compile.
type Driver struct {
	Log *zap.Logger
}

func NewDriver(log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{Log: log}
}

func (d *Driver) newCollector(name, src string) *diag.Collector {
	return diag.NewCollector(srcfiles.Single(name, src))
}

func (d *Driver) lexAndParse(name, src string, coll *diag.Collector) (cst.Node, []token.Token) {
	toks := lexer.New(src, coll).Tokenize()
	d.Log.Debug("lexed source", zap.String("file", name), zap.Int("tokens", len(toks)))
	tree := parser.ParseAll(toks, coll)
	d.Log.Debug("parsed source", zap.String("file", name), zap.Int("top_level_forms", len(tree.Children)))
	return tree, toks
}

// ParseOnly runs the lexer and parser and returns the resulting CST.
func (d *Driver) ParseOnly(name, src string) (cst.Node, *diag.Collector) {
	coll := d.newCollector(name, src)
	tree, _ := d.lexAndParse(name, src, coll)
	return tree, coll
}

// LowerOnly runs the pipeline through lowering only, skipping semantic
// analysis. The spec generator uses this to validate generated source
// without running the full semantic pass, which is explicitly out of
// scope for generator diagnostics per §6.3.
func (d *Driver) LowerOnly(name, src string) (*ast.Module, *diag.Collector) {
	coll := d.newCollector(name, src)
	tree, _ := d.lexAndParse(name, src, coll)
	if coll.HasErrors() {
		return nil, coll
	}
	mod := lowering.Lower(tree, coll)
	return mod, coll
}

// Check runs the pipeline through semantic analysis and returns the
// annotated module.
func (d *Driver) Check(name, src string) (*ast.Module, *diag.Collector) {
	coll := d.newCollector(name, src)
	tree, _ := d.lexAndParse(name, src, coll)
	if coll.HasErrors() {
		return nil, coll
	}
	mod := lowering.Lower(tree, coll)
	if mod == nil || coll.HasErrors() {
		return mod, coll
	}
	d.Log.Debug("lowered module", zap.String("module", mod.Name), zap.Int("decls", len(mod.Decls)))
	table := semantic.Analyze(mod, coll)
	_ = table
	for _, err := range coll.All() {
		if err.Sev == srcfiles.SeverityWarning {
			d.Log.Warn(err.Error())
		}
	}
	d.Log.Debug("semantic analysis complete", zap.Int("diagnostics", len(coll.All())))
	return mod, coll
}

// Compile runs the full pipeline and, when semantic analysis produced zero
// errors, emits target-language source text for the module. Per §4.5 one
// logical file is produced per module, keyed by module name.
func (d *Driver) Compile(name, src string) (map[string]string, *diag.Collector) {
	mod, coll := d.Check(name, src)
	if mod == nil || coll.HasErrors() {
		return nil, coll
	}
	out := emitter.Emit(mod)
	d.Log.Debug("emitted target source", zap.String("module", mod.Name), zap.Int("bytes", len(out)))
	return map[string]string{mod.Name + ".rs": out}, coll
}
