// Package emitter renders a validated AST as target-language (Rust-like)
// source text. Rendering is deterministic: declarations are walked in
// source order and every map/slice already carries source order from
// lowering, so two runs over the same AST produce byte-identical output.
package emitter

import (
	"fmt"
	"strings"

	"github.com/akitaonrails/pact-lang/compiler/ast"
)

type emitter struct {
	out    strings.Builder
	indent int
}

// Emit renders one module's full source text.
func Emit(mod *ast.Module) string {
	e := &emitter{}
	e.emitHeader(mod)
	e.line("")

	var types []*ast.TypeDef
	var effectSets []*ast.EffectSetDef
	var fns []*ast.FnDef
	for _, d := range mod.Decls {
		switch n := d.(type) {
		case *ast.TypeDef:
			types = append(types, n)
		case *ast.EffectSetDef:
			effectSets = append(effectSets, n)
		case *ast.FnDef:
			fns = append(fns, n)
		}
	}

	for _, te := range collectEnumTypes(types) {
		e.emitEnumType(te)
		e.line("")
	}
	for _, format := range collectFormats(types) {
		e.emitFormatRegex(format)
		e.line("")
	}
	for _, t := range types {
		e.emitTypeDef(t)
		e.line("")
	}
	for _, es := range effectSets {
		e.emitEffectTrait(es)
		e.line("")
	}
	for _, fn := range fns {
		e.emitReturnEnum(fn)
		e.line("")
	}
	for _, fn := range fns {
		e.emitFunction(fn, effectSets)
		e.line("")
	}
	return e.out.String()
}

func (e *emitter) emitHeader(mod *ast.Module) {
	e.line("// " + strings.Repeat("=", 60))
	e.line(fmt.Sprintf("// Generated from Pact module: %s", mod.Name))
	if mod.Version != nil {
		e.line(fmt.Sprintf("// Version: %d", *mod.Version))
	}
	if mod.ParentVersion != nil {
		e.line(fmt.Sprintf("// Parent version: %d", *mod.ParentVersion))
	}
	if mod.Provenance.Req != "" {
		e.line(fmt.Sprintf("// Spec: %s", mod.Provenance.Req))
	}
	if mod.Provenance.Author != "" {
		e.line(fmt.Sprintf("// Author: %s", mod.Provenance.Author))
	}
	if mod.Provenance.Created != "" {
		e.line(fmt.Sprintf("// Created: %s", mod.Provenance.Created))
	}
	if len(mod.Provenance.Test) > 0 {
		e.line(fmt.Sprintf("// Tests: %s", strings.Join(mod.Provenance.Test, ", ")))
	}
	for _, m := range mod.Provenance.Extra {
		e.line(fmt.Sprintf("// %s: %s", m.Key, rawFormText(m.Value)))
	}
	if mod.DeltaInfo != nil {
		e.line(fmt.Sprintf("// Delta: %s %s — %s", mod.DeltaInfo.Operation, mod.DeltaInfo.Target, mod.DeltaInfo.Description))
	}
	e.line("// " + strings.Repeat("=", 60))
	e.line("")
	e.line("use std::fmt;")
	e.line("use once_cell::sync::Lazy;")
	e.line("use regex::Regex;")
}

// collectEnumTypes walks every TypeDef's fields (recursing through list
// element types) and returns the distinct supplemented `(enum ...)` type
// expressions referenced, in first-seen order, so each gets exactly one
// `pub enum` declaration regardless of how many fields reference it.
func collectEnumTypes(types []*ast.TypeDef) []*ast.TypeExpr {
	seen := make(map[string]bool)
	var out []*ast.TypeExpr
	var walk func(te *ast.TypeExpr)
	walk = func(te *ast.TypeExpr) {
		if te == nil {
			return
		}
		switch te.Kind {
		case ast.TypeEnum:
			name := typeExprToTarget(te)
			if !seen[name] {
				seen[name] = true
				out = append(out, te)
			}
		case ast.TypeList:
			walk(te.Elem)
		}
	}
	for _, t := range types {
		for _, f := range t.Fields {
			walk(f.TypeExpr)
		}
	}
	return out
}

func (e *emitter) emitEnumType(te *ast.TypeExpr) {
	e.line("#[derive(Debug, Clone, PartialEq, Eq)]")
	e.line(fmt.Sprintf("pub enum %s {", typeExprToTarget(te)))
	e.indent++
	for _, v := range te.Variants {
		e.line(pascal(v) + ",")
	}
	e.indent--
	e.line("}")
}

// formatPatterns maps the fixed vocabulary of `:format` keywords (spec.md's
// `format(keyword)` field constraint) to the regex each one validates
// against. An unrecognized keyword falls back to a catch-all pattern rather
// than emitting a call to an undefined function.
var formatPatterns = map[string]string{
	"uuid":  `^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`,
	"email": `^[^@\s]+@[^@\s]+\.[^@\s]+$`,
	"url":   `^https?://\S+$`,
	"slug":  `^[a-z0-9]+(-[a-z0-9]+)*$`,
}

func formatRegexPattern(format string) string {
	if p, ok := formatPatterns[format]; ok {
		return p
	}
	return ".*"
}

// collectFormats returns the distinct `:format` keywords referenced across
// types' fields, in first-seen order, so each keyword backs exactly one
// regex static regardless of how many fields use it.
func collectFormats(types []*ast.TypeDef) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range types {
		for _, f := range t.Fields {
			if f.Format == "" || seen[f.Format] {
				continue
			}
			seen[f.Format] = true
			out = append(out, f.Format)
		}
	}
	return out
}

func (e *emitter) emitFormatRegex(format string) {
	fnName := snake(format)
	staticName := strings.ToUpper(fnName) + "_FORMAT"
	e.line(fmt.Sprintf(`static %s: Lazy<Regex> = Lazy::new(|| Regex::new(r"%s").unwrap());`, staticName, formatRegexPattern(format)))
	e.line("")
	e.line(fmt.Sprintf("fn %s_regex() -> &'static Regex {", fnName))
	e.indent++
	e.line("&" + staticName)
	e.indent--
	e.line("}")
}

func (e *emitter) emitTypeDef(t *ast.TypeDef) {
	if len(t.Invariants) > 0 {
		e.line(fmt.Sprintf("/// Type: %s", t.Name))
		e.line("///")
		e.line("/// Invariants:")
		for _, inv := range t.Invariants {
			e.line(fmt.Sprintf("/// - %s", exprSummary(inv)))
		}
	}
	for _, m := range t.Extra {
		e.line(fmt.Sprintf("/// %s: %s", m.Key, rawFormText(m.Value)))
	}

	e.line("#[derive(Debug, Clone)]")
	e.line(fmt.Sprintf("pub struct %s {", pascal(t.Name)))
	e.indent++
	for _, f := range t.Fields {
		var annotations []string
		if f.Immutable {
			annotations = append(annotations, "immutable")
		}
		if f.Generated {
			annotations = append(annotations, "generated")
		}
		if len(annotations) > 0 {
			e.line("/// " + strings.Join(annotations, ", "))
		}
		if f.MinLen != nil {
			e.line(fmt.Sprintf("/// min_len: %d", *f.MinLen))
		}
		if f.MaxLen != nil {
			e.line(fmt.Sprintf("/// max_len: %d", *f.MaxLen))
		}
		if f.Format != "" {
			e.line(fmt.Sprintf("/// format: %s", f.Format))
		}
		if f.UniqueWithin != "" {
			e.line(fmt.Sprintf("/// unique_within: %s", f.UniqueWithin))
		}
		e.line(fmt.Sprintf("pub %s: %s,", snake(f.Name), typeRefToTarget(f)))
	}
	e.indent--
	e.line("}")

	e.line("")
	e.line(fmt.Sprintf("impl %s {", pascal(t.Name)))
	e.indent++
	e.line("pub fn validate(&self) -> Result<(), Vec<String>> {")
	e.indent++
	e.line("let mut errors = Vec::new();")
	for _, f := range t.Fields {
		fieldSnake := snake(f.Name)
		if f.MinLen != nil {
			e.line(fmt.Sprintf(`if self.%s.len() < %d { errors.push(format!("{} must be at least %d characters", "%s")); }`,
				fieldSnake, *f.MinLen, *f.MinLen, f.Name))
		}
		if f.MaxLen != nil {
			e.line(fmt.Sprintf(`if self.%s.len() > %d { errors.push(format!("{} must be at most %d characters", "%s")); }`,
				fieldSnake, *f.MaxLen, *f.MaxLen, f.Name))
		}
		if f.Format != "" {
			e.line(fmt.Sprintf(`if !%s_regex().is_match(&self.%s) { errors.push(format!("{} does not match format %s", "%s")); }`,
				snake(f.Format), fieldSnake, f.Format, f.Name))
		}
	}
	for _, inv := range t.Invariants {
		e.line(fmt.Sprintf("if !(%s) { errors.push(\"invariant failed: %s\".to_string()); }", exprInline(inv), exprSummary(inv)))
	}
	e.line("if errors.is_empty() { Ok(()) } else { Err(errors) }")
	e.indent--
	e.line("}")
	e.indent--
	e.line("}")
}

func (e *emitter) emitEffectTrait(es *ast.EffectSetDef) {
	var descs []string
	for _, b := range es.Bindings {
		descs = append(descs, fmt.Sprintf("%s(%s)", pascal(b.Kind.String()), b.Resource))
	}
	e.line(fmt.Sprintf("/// Effect set: %s — [%s]", es.Name, strings.Join(descs, ", ")))
	e.line(fmt.Sprintf("pub trait %s {", pascal(es.Name)))
	e.indent++
	for _, b := range es.Bindings {
		store := pascal(b.Resource)
		switch b.Kind {
		case ast.Reads:
			e.line(fmt.Sprintf("fn read_%s<Q>(&self, query: Q) -> Option<%sItem> where Q: Into<%sQuery>;", snake(b.Resource), store, store))
		case ast.Writes:
			e.line(fmt.Sprintf("fn insert_%s(&mut self, item: %sItem) -> Result<%sItem, %sError>;", snake(b.Resource), store, store, store))
			e.line(fmt.Sprintf("fn update_%s(&mut self, item: %sItem) -> Result<%sItem, %sError>;", snake(b.Resource), store, store, store))
		case ast.Sends:
			e.line(fmt.Sprintf("fn send_%s(&mut self, payload: impl Into<Vec<u8>>);", snake(b.Resource)))
		}
	}
	e.indent--
	e.line("}")
}

func resultEnumName(fn *ast.FnDef) string {
	return pascal(fn.Name) + "Result"
}

// okVariantName and errVariantName produce the deterministic return-enum
// variant names the Naming policy mandates: `Ok<FnName>` for the success
// variant, `Err<FnName>_<Tag>` for each error variant.
func okVariantName(fnNamePascal string) string {
	return "Ok" + fnNamePascal
}

func errVariantName(fnNamePascal, tag string) string {
	return "Err" + fnNamePascal + "_" + pascal(tag)
}

func (e *emitter) emitReturnEnum(fn *ast.FnDef) {
	enumName := resultEnumName(fn)
	fnNamePascal := pascal(fn.Name)
	e.emitFnDocHeader(fn)
	e.line("#[derive(Debug)]")
	e.line(fmt.Sprintf("pub enum %s {", enumName))
	e.indent++
	for _, v := range fn.Returns {
		if v.HTTPCode != 0 {
			e.line(fmt.Sprintf("/// HTTP %d", v.HTTPCode))
		}
		if !v.IsErr {
			payload := "()"
			if v.PayloadType != "" {
				payload = typeNameToTarget(v.PayloadType)
			}
			e.line(fmt.Sprintf("%s(%s),", okVariantName(fnNamePascal), payload))
			continue
		}
		name := errVariantName(fnNamePascal, v.Tag)
		payload := "()"
		if v.PayloadForm != nil {
			payload = exprPayloadType(*v.PayloadForm)
		}
		if payload == "()" {
			e.line(fmt.Sprintf("%s,", name))
		} else {
			e.line(fmt.Sprintf("%s(%s),", name, payload))
		}
	}
	e.indent--
	e.line("}")

	e.line("")
	e.line(fmt.Sprintf("impl %s {", enumName))
	e.indent++
	e.line("pub fn http_status(&self) -> u16 {")
	e.indent++
	e.line("match self {")
	e.indent++
	for _, v := range fn.Returns {
		if !v.IsErr {
			status := v.HTTPCode
			if status == 0 {
				status = 200
			}
			e.line(fmt.Sprintf("%s::%s(_) => %d,", enumName, okVariantName(fnNamePascal), status))
			continue
		}
		status := v.HTTPCode
		if status == 0 {
			status = 500
		}
		name := errVariantName(fnNamePascal, v.Tag)
		payload := "()"
		if v.PayloadForm != nil {
			payload = exprPayloadType(*v.PayloadForm)
		}
		if payload == "()" {
			e.line(fmt.Sprintf("%s::%s => %d,", enumName, name, status))
		} else {
			e.line(fmt.Sprintf("%s::%s(_) => %d,", enumName, name, status))
		}
	}
	e.indent--
	e.line("}")
	e.indent--
	e.line("}")
	e.indent--
	e.line("}")

	e.line("")
	e.line(fmt.Sprintf("impl fmt::Display for %s {", enumName))
	e.indent++
	e.line("fn fmt(&self, f: &mut fmt::Formatter<'_>) -> fmt::Result {")
	e.indent++
	e.line("match self {")
	e.indent++
	for _, v := range fn.Returns {
		if !v.IsErr {
			e.line(fmt.Sprintf(`%s::%s(v) => write!(f, "Ok: {:?}", v),`, enumName, okVariantName(fnNamePascal)))
			continue
		}
		name := errVariantName(fnNamePascal, v.Tag)
		payload := "()"
		if v.PayloadForm != nil {
			payload = exprPayloadType(*v.PayloadForm)
		}
		if payload == "()" {
			e.line(fmt.Sprintf(`%s::%s => write!(f, "Error: %s"),`, enumName, name, v.Tag))
		} else {
			e.line(fmt.Sprintf(`%s::%s(v) => write!(f, "Error(%s): {:?}", v),`, enumName, name, v.Tag))
		}
	}
	e.indent--
	e.line("}")
	e.indent--
	e.line("}")
	e.indent--
	e.line("}")
}

func (e *emitter) emitFnDocHeader(fn *ast.FnDef) {
	if fn.Provenance.Req != "" {
		e.line(fmt.Sprintf("/// Spec: %s", fn.Provenance.Req))
	}
	if len(fn.Provenance.Test) > 0 {
		e.line(fmt.Sprintf("/// Tests: %s", strings.Join(fn.Provenance.Test, ", ")))
	}
	if fn.Total {
		e.line("/// Total: this function handles all cases exhaustively")
	}
	if fn.LatencyBudget != nil {
		e.line(fmt.Sprintf("/// Latency budget: %d%s", fn.LatencyBudget.Magnitude, fn.LatencyBudget.Unit))
	}
	if len(fn.CalledBy) > 0 {
		e.line(fmt.Sprintf("/// Called by: %s", strings.Join(fn.CalledBy, ", ")))
	}
	for _, m := range fn.Extra {
		e.line(fmt.Sprintf("/// %s: %s", m.Key, rawFormText(m.Value)))
	}
}

func (e *emitter) emitFunction(fn *ast.FnDef, effectSets []*ast.EffectSetDef) {
	fnName := snake(fn.Name)
	returnType := resultEnumName(fn)

	var traitBounds []string
	for _, eff := range fn.Effects {
		traitBounds = append(traitBounds, pascal(eff))
	}

	var params []string
	if len(traitBounds) > 0 {
		params = append(params, "ctx: &mut Ctx")
	}
	for _, p := range fn.Params {
		params = append(params, fmt.Sprintf("%s: %s", snake(p.Name), paramTypeToTarget(p)))
	}

	generics := ""
	if len(traitBounds) > 0 {
		generics = fmt.Sprintf("<Ctx: %s>", strings.Join(traitBounds, " + "))
	}

	e.emitFnDocHeader(fn)
	if len(fn.Effects) > 0 {
		var descs []string
		for _, name := range fn.Effects {
			for _, es := range effectSets {
				if es.Name != name {
					continue
				}
				var effs []string
				for _, b := range es.Bindings {
					effs = append(effs, fmt.Sprintf("%s(%s)", pascal(b.Kind.String()), b.Resource))
				}
				descs = append(descs, fmt.Sprintf("%s: [%s]", name, strings.Join(effs, ", ")))
			}
		}
		e.line(fmt.Sprintf("/// Effects: %s", strings.Join(descs, "; ")))
	}

	e.line(fmt.Sprintf("pub fn %s%s(%s) -> %s {", fnName, generics, strings.Join(params, ", "), returnType))
	e.indent++
	e.emitExpr(fn.Body, returnType)
	e.indent--
	e.line("}")
}

func (e *emitter) line(s string) {
	if s == "" {
		e.out.WriteByte('\n')
		return
	}
	e.writeIndent()
	e.out.WriteString(s)
	e.out.WriteByte('\n')
}

func (e *emitter) writeIndent() {
	for i := 0; i < e.indent; i++ {
		e.out.WriteString("    ")
	}
}

// pascal converts a kebab-case Pact identifier to PascalCase.
func pascal(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' || r == '/' })
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]) + strings.ToLower(p[1:]))
	}
	return b.String()
}

// snake converts a kebab-case Pact identifier to snake_case.
func snake(name string) string {
	return strings.NewReplacer("-", "_", "/", "_").Replace(name)
}
