package emitter

import (
	"fmt"
	"strings"

	"github.com/akitaonrails/pact-lang/compiler/ast"
)

// emitExpr renders e as a statement-position block, following the original
// body's let/match/if structure; anything else falls through to a single
// inline expression statement.
func (e *emitter) emitExpr(expr ast.Expr, returnType string) {
	switch n := expr.(type) {
	case *ast.LetExpr:
		for _, b := range n.Bindings {
			e.writeIndent()
			e.out.WriteString(fmt.Sprintf("let %s = ", snake(b.Name)))
			e.emitExprInline(b.Val, returnType)
			e.out.WriteString(";\n")
		}
		e.emitExpr(n.Body, returnType)
	case *ast.MatchExpr:
		e.writeIndent()
		e.out.WriteString("match ")
		e.emitExprInline(n.Scrutinee, returnType)
		e.out.WriteString(" {\n")
		e.indent++
		for _, arm := range n.Arms {
			e.writeIndent()
			e.emitPattern(arm.Pattern)
			e.out.WriteString(" => ")
			e.emitExprInline(arm.Body, returnType)
			e.out.WriteString(",\n")
		}
		e.indent--
		e.writeIndent()
		e.out.WriteString("}\n")
	case *ast.IfExpr:
		e.writeIndent()
		e.out.WriteString("if ")
		e.emitExprInline(n.Cond, returnType)
		e.out.WriteString(" {\n")
		e.indent++
		e.emitExpr(n.Then, returnType)
		e.indent--
		e.writeIndent()
		e.out.WriteString("} else {\n")
		e.indent++
		e.emitExpr(n.Else, returnType)
		e.indent--
		e.writeIndent()
		e.out.WriteString("}\n")
	default:
		e.writeIndent()
		e.emitExprInline(expr, returnType)
		e.out.WriteByte('\n')
	}
}

// emitExprInline renders e as a value-position Rust expression with no
// trailing newline or statement terminator.
func (e *emitter) emitExprInline(expr ast.Expr, returnType string) {
	switch n := expr.(type) {
	case *ast.LiteralExpr:
		switch n.Kind {
		case ast.LitSymbolRef:
			e.out.WriteString(snake(n.Str))
		case ast.LitKeyword:
			e.out.WriteString(fmt.Sprintf("%q", n.Str))
		case ast.LitString:
			e.out.WriteString(fmt.Sprintf("%q", n.Str))
		case ast.LitInt:
			e.out.WriteString(fmt.Sprintf("%d", n.Int))
		case ast.LitBool:
			e.out.WriteString(fmt.Sprintf("%t", n.Bool))
		case ast.LitDuration:
			e.out.WriteString(fmt.Sprintf("Duration::from_%s(%d)", durationTargetUnit(n.Dur), n.Dur.Magnitude))
		case ast.LitRegex:
			e.out.WriteString(fmt.Sprintf("Regex::new(%q).unwrap()", n.Str))
		}
	case *ast.CtorExpr:
		switch n.Kind {
		case ast.CtorOk:
			e.out.WriteString(returnType + "::" + okVariantName(fnNameFromReturnType(returnType)) + "(")
			e.emitCommaExprs(n.Payload, returnType)
			e.out.WriteByte(')')
		case ast.CtorErr:
			e.out.WriteString(returnType + "::" + errVariantName(fnNameFromReturnType(returnType), n.Tag) + "(")
			e.emitCommaExprs(n.Payload, returnType)
			e.out.WriteByte(')')
		case ast.CtorSome:
			e.out.WriteString("Some(")
			e.emitCommaExprs(n.Payload, returnType)
			e.out.WriteByte(')')
		case ast.CtorNone:
			e.out.WriteString("None")
		}
	case *ast.CallExpr:
		e.out.WriteString(snake(n.Callee))
		e.out.WriteByte('(')
		e.emitCommaExprs(n.Args, returnType)
		e.out.WriteByte(')')
	case *ast.FieldAccessExpr:
		e.emitExprInline(n.Obj, returnType)
		e.out.WriteByte('.')
		e.out.WriteString(snake(n.Field))
	case *ast.MapLitExpr:
		e.out.WriteString("{ ")
		for i, entry := range n.Entries {
			if i > 0 {
				e.out.WriteString(", ")
			}
			e.out.WriteString(snake(entry.Key))
			e.out.WriteString(": ")
			e.emitExprInline(entry.Value, returnType)
		}
		e.out.WriteString(" }")
	case *ast.VecLitExpr:
		e.out.WriteString("vec![")
		e.emitCommaExprs(n.Elements, returnType)
		e.out.WriteByte(']')
	case *ast.LetExpr:
		e.out.WriteString("{\n")
		e.indent++
		for _, b := range n.Bindings {
			e.writeIndent()
			e.out.WriteString(fmt.Sprintf("let %s = ", snake(b.Name)))
			e.emitExprInline(b.Val, returnType)
			e.out.WriteString(";\n")
		}
		e.writeIndent()
		e.emitExprInline(n.Body, returnType)
		e.out.WriteByte('\n')
		e.indent--
		e.writeIndent()
		e.out.WriteByte('}')
	case *ast.MatchExpr:
		e.out.WriteString("match ")
		e.emitExprInline(n.Scrutinee, returnType)
		e.out.WriteString(" {\n")
		e.indent++
		for _, arm := range n.Arms {
			e.writeIndent()
			e.emitPattern(arm.Pattern)
			e.out.WriteString(" => ")
			e.emitExprInline(arm.Body, returnType)
			e.out.WriteString(",\n")
		}
		e.indent--
		e.writeIndent()
		e.out.WriteByte('}')
	case *ast.IfExpr:
		e.out.WriteString("if ")
		e.emitExprInline(n.Cond, returnType)
		e.out.WriteString(" { ")
		e.emitExprInline(n.Then, returnType)
		e.out.WriteString(" } else { ")
		e.emitExprInline(n.Else, returnType)
		e.out.WriteString(" }")
	}
}

// fnNameFromReturnType recovers a FnDef's PascalCase name from its
// generated return-enum name (`resultEnumName` always produces
// `<FnName>Result`), so Ctor construction can build the deterministic
// `Ok<FnName>`/`Err<FnName>_<Tag>` variant names without threading the
// FnDef itself through every expression-emission call site.
func fnNameFromReturnType(returnType string) string {
	return strings.TrimSuffix(returnType, "Result")
}

func (e *emitter) emitCommaExprs(exprs []ast.Expr, returnType string) {
	for i, a := range exprs {
		if i > 0 {
			e.out.WriteString(", ")
		}
		e.emitExprInline(a, returnType)
	}
}

func (e *emitter) emitPattern(p ast.Pattern) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		e.out.WriteByte('_')
	case *ast.BindingPattern:
		e.out.WriteString(snake(pat.Name))
	case *ast.CtorPattern:
		switch pat.Kind {
		case ast.CtorOk:
			e.emitPatternArgs("Ok", pat.SubPats)
		case ast.CtorSome:
			e.emitPatternArgs("Some", pat.SubPats)
		case ast.CtorNone:
			e.out.WriteString("None")
		case ast.CtorErr:
			if pat.Tag == "" {
				e.out.WriteString("_")
				return
			}
			e.emitPatternArgs(pascal(pat.Tag), pat.SubPats)
		}
	}
}

func (e *emitter) emitPatternArgs(ctorName string, subs []ast.Pattern) {
	e.out.WriteString(ctorName)
	e.out.WriteByte('(')
	if len(subs) == 0 {
		e.out.WriteByte('_')
	} else {
		for i, s := range subs {
			if i > 0 {
				e.out.WriteString(", ")
			}
			e.emitPattern(s)
		}
	}
	e.out.WriteByte(')')
}

func durationTargetUnit(d ast.Duration) string {
	switch d.Unit.String() {
	case "ms":
		return "millis"
	case "s":
		return "secs"
	case "m":
		return "mins"
	case "h":
		return "hours"
	}
	return "millis"
}

// exprSummary renders a short, human-readable one-line form of an
// invariant expression for doc comments; it intentionally does not need to
// round-trip, only to be readable.
func exprSummary(e ast.Expr) string {
	var b strings.Builder
	summarize(&b, e)
	return b.String()
}

func summarize(b *strings.Builder, e ast.Expr) {
	switch n := e.(type) {
	case *ast.CallExpr:
		b.WriteString(n.Callee)
		b.WriteByte('(')
		for i, a := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			summarize(b, a)
		}
		b.WriteByte(')')
	case *ast.LiteralExpr:
		switch n.Kind {
		case ast.LitSymbolRef, ast.LitKeyword:
			b.WriteString(n.Str)
		case ast.LitString:
			fmt.Fprintf(b, "%q", n.Str)
		case ast.LitInt:
			fmt.Fprintf(b, "%d", n.Int)
		case ast.LitBool:
			fmt.Fprintf(b, "%t", n.Bool)
		case ast.LitRegex:
			fmt.Fprintf(b, "#/%s/", n.Str)
		case ast.LitDuration:
			fmt.Fprintf(b, "%d%s", n.Dur.Magnitude, n.Dur.Unit)
		}
	default:
		b.WriteString("<expr>")
	}
}

// exprInline renders e as a boolean Rust expression usable directly inside
// an `if !(...)` validation guard.
func exprInline(e ast.Expr) string {
	var tmp emitter
	tmp.emitExprInline(e, "")
	return tmp.out.String()
}

// exprPayloadType infers a Rust type for an Err variant's payload-shape
// expression: a map literal becomes an inline struct type, anything else
// falls back to unit since the payload shape is only informally typed by
// the spec (§4.3's "any expression form").
func exprPayloadType(e ast.Expr) string {
	m, ok := e.(*ast.MapLitExpr)
	if !ok || len(m.Entries) == 0 {
		return "()"
	}
	var fields []string
	for _, entry := range m.Entries {
		fields = append(fields, fmt.Sprintf("%s: String", snake(entry.Key)))
	}
	return "{ " + strings.Join(fields, ", ") + " }"
}

func rawFormText(f ast.RawForm) string {
	if f.IsInt {
		return fmt.Sprintf("%d", f.Int)
	}
	if f.Text != "" {
		return f.Text
	}
	var parts []string
	for _, c := range f.Children {
		parts = append(parts, rawFormText(c))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func typeNameToTarget(name string) string {
	switch name {
	case "UUID":
		return "Uuid"
	case "String":
		return "String"
	case "Int":
		return "i64"
	case "Bool":
		return "bool"
	case "Unit":
		return "()"
	default:
		return name
	}
}

func typeExprToTarget(te *ast.TypeExpr) string {
	switch te.Kind {
	case ast.TypeEnum:
		return pascal(strings.Join(te.Variants, "_"))
	case ast.TypeList:
		return "Vec<" + typeExprToTarget(te.Elem) + ">"
	default:
		return typeNameToTarget(te.Name)
	}
}

func typeRefToTarget(f ast.FieldDef) string {
	if f.TypeExpr != nil {
		return typeExprToTarget(f.TypeExpr)
	}
	return typeNameToTarget(f.Type)
}

func paramTypeToTarget(p ast.ParamDef) string {
	if len(p.InlineRecord) > 0 {
		var fields []string
		for _, fr := range p.InlineRecord {
			fields = append(fields, fmt.Sprintf("%s: %s", snake(fr.Name), typeNameToTarget(fr.Type)))
		}
		return "{ " + strings.Join(fields, ", ") + " }"
	}
	return typeNameToTarget(p.Type)
}
