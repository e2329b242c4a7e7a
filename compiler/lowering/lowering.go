// Package lowering walks the CST and builds the typed AST, validating
// declaration shape as it goes. Unrecognized keyword attributes are never
// silently dropped: on types, fields, functions, params and provenance maps
// they survive as ast.MetaEntry on the owning node, and an unrecognized
// module attribute is reported as UnknownAttribute.
package lowering

import (
	"strconv"

	"github.com/akitaonrails/pact-lang/compiler/ast"
	"github.com/akitaonrails/pact-lang/compiler/cst"
	"github.com/akitaonrails/pact-lang/compiler/diag"
	"github.com/akitaonrails/pact-lang/compiler/token"
)

type lowerer struct {
	diag *diag.Collector
}

// Lower walks a top-level forms list produced by parser.ParseAll and
// returns the single module it must contain. Extra top-level forms past the
// first module are reported as malformed and ignored.
func Lower(top cst.Node, d *diag.Collector) *ast.Module {
	l := &lowerer{diag: d}
	var mod *ast.Module
	for _, form := range top.Children {
		if mod != nil {
			d.Errorf(diag.MalformedDeclaration, form.Start, form.End, "unexpected top-level form after the module")
			continue
		}
		if sym, ok := form.HeadSymbol(); ok && sym == "module" {
			mod = l.lowerModule(form)
		}
	}
	if mod == nil {
		d.Errorf(diag.MalformedDeclaration, top.Start, top.End, "no top-level (module ...) form found")
	}
	return mod
}

func posOf(n cst.Node) token.Pos {
	if n.IsAtom() {
		return n.Atom.Pos
	}
	return token.Pos{}
}

func (l *lowerer) lowerModule(n cst.Node) *ast.Module {
	rest := n.Rest()
	if len(rest) == 0 || !rest[0].IsAtom() || rest[0].Atom.Kind != token.Symbol {
		l.diag.Errorf(diag.ExpectedSymbol, n.Start, n.End, "module requires a name symbol")
		return &ast.Module{Pos: posOf(n)}
	}
	mod := &ast.Module{Name: rest[0].Atom.Text, Pos: rest[0].Atom.Pos}
	i := 1
	for i < len(rest) {
		if rest[i].IsAtom() && rest[i].Atom.Kind == token.Keyword {
			if i+1 >= len(rest) {
				l.diag.Errorf(diag.OddAttributeList, rest[i].Start, rest[i].End, "attribute %q missing value", rest[i].Atom.Text)
				break
			}
			l.lowerModuleAttr(mod, rest[i], rest[i+1])
			i += 2
			continue
		}
		break
	}
	for ; i < len(rest); i++ {
		if decl := l.lowerDecl(rest[i]); decl != nil {
			mod.Decls = append(mod.Decls, decl)
		}
	}
	return mod
}

func (l *lowerer) lowerModuleAttr(mod *ast.Module, key, val cst.Node) {
	switch key.Atom.Text {
	case "provenance":
		mod.Provenance = l.lowerProvenance(val)
	case "version":
		if v, ok := l.intAtom(val); ok {
			mod.Version = &v
		}
	case "parent-version":
		if v, ok := l.intAtom(val); ok {
			mod.ParentVersion = &v
		}
	case "delta":
		raw := toRawForm(val)
		mod.Delta = &raw
		mod.DeltaInfo = l.lowerDelta(val)
	default:
		l.diag.Errorf(diag.UnknownAttribute, key.Start, key.End, "unknown module attribute :%s", key.Atom.Text)
	}
}

func (l *lowerer) intAtom(n cst.Node) (int64, bool) {
	if !n.IsAtom() || n.Atom.Kind != token.Integer {
		l.diag.Errorf(diag.TypeAnnotationMismatch, n.Start, n.End, "expected an integer literal")
		return 0, false
	}
	return n.Atom.Int, true
}

func (l *lowerer) lowerProvenance(n cst.Node) ast.Provenance {
	if n.Kind != cst.KindMap {
		l.diag.Errorf(diag.TypeAnnotationMismatch, n.Start, n.End, ":provenance requires a map literal")
		return ast.Provenance{}
	}
	var p ast.Provenance
	for _, entry := range n.Entries {
		key, ok := atomText(entry.Key)
		if !ok {
			continue
		}
		switch key {
		case "req":
			p.Req, _ = atomText(entry.Value)
		case "author":
			p.Author, _ = atomText(entry.Value)
		case "created":
			p.Created, _ = atomText(entry.Value)
		case "test":
			for _, c := range entry.Value.Children {
				if s, ok := atomText(c); ok {
					p.Test = append(p.Test, s)
				}
			}
		default:
			p.Extra = append(p.Extra, ast.MetaEntry{Key: key, Value: toRawForm(entry.Value)})
		}
	}
	return p
}

func (l *lowerer) lowerDelta(n cst.Node) *ast.Delta {
	if n.Kind != cst.KindList {
		return nil
	}
	fields := n.Children
	d := &ast.Delta{}
	if len(fields) > 0 {
		d.Operation, _ = atomText(fields[0])
	}
	if len(fields) > 1 {
		d.Target, _ = atomText(fields[1])
	}
	if len(fields) > 2 {
		d.Description, _ = atomText(fields[2])
	}
	return d
}

func atomText(n cst.Node) (string, bool) {
	if !n.IsAtom() {
		return "", false
	}
	switch n.Atom.Kind {
	case token.Symbol, token.Keyword, token.String:
		return n.Atom.Text, true
	case token.Integer:
		return strconv.FormatInt(n.Atom.Int, 10), true
	case token.Boolean:
		return strconv.FormatBool(n.Atom.Bool), true
	}
	return "", false
}

func toRawForm(n cst.Node) ast.RawForm {
	if n.IsAtom() {
		if n.Atom.Kind == token.Integer {
			return ast.RawForm{Int: n.Atom.Int, IsInt: true}
		}
		if txt, ok := atomText(n); ok {
			return ast.RawForm{Text: txt}
		}
		return ast.RawForm{}
	}
	var children []ast.RawForm
	if n.Kind == cst.KindMap {
		for _, e := range n.Entries {
			children = append(children, toRawForm(e.Key), toRawForm(e.Value))
		}
	} else {
		for _, c := range n.Children {
			children = append(children, toRawForm(c))
		}
	}
	return ast.RawForm{Children: children}
}

func (l *lowerer) lowerDecl(n cst.Node) ast.Decl {
	sym, ok := n.HeadSymbol()
	if !ok {
		l.diag.Errorf(diag.MalformedDeclaration, n.Start, n.End, "declaration must be a list headed by a symbol")
		return nil
	}
	switch sym {
	case "type":
		return l.lowerTypeDef(n)
	case "effect-set":
		return l.lowerEffectSetDef(n)
	case "fn":
		return l.lowerFnDef(n)
	default:
		l.diag.Errorf(diag.MalformedDeclaration, n.Start, n.End, "unknown declaration head %q", sym)
		return nil
	}
}

func (l *lowerer) lowerTypeDef(n cst.Node) *ast.TypeDef {
	rest := n.Rest()
	if len(rest) == 0 {
		l.diag.Errorf(diag.ExpectedSymbol, n.Start, n.End, "type requires a name symbol")
		return nil
	}
	name, ok := atomText(rest[0])
	if !ok {
		l.diag.Errorf(diag.ExpectedSymbol, rest[0].Start, rest[0].End, "type name must be a symbol")
		return nil
	}
	t := ast.NewTypeDef(posOf(rest[0]))
	t.Name = name
	i := 1
	for i < len(rest) {
		if rest[i].IsAtom() && rest[i].Atom.Kind == token.Keyword {
			if i+1 >= len(rest) {
				l.diag.Errorf(diag.OddAttributeList, rest[i].Start, rest[i].End, "attribute %q missing value", rest[i].Atom.Text)
				break
			}
			switch rest[i].Atom.Text {
			case "invariants":
				for _, c := range rest[i+1].Children {
					t.Invariants = append(t.Invariants, l.lowerExpr(c))
				}
			default:
				t.Extra = append(t.Extra, ast.MetaEntry{Key: rest[i].Atom.Text, Value: toRawForm(rest[i+1])})
			}
			i += 2
			continue
		}
		break
	}
	for ; i < len(rest); i++ {
		if fieldSym, ok := rest[i].HeadSymbol(); ok && fieldSym == "field" {
			if f := l.lowerField(rest[i]); f != nil {
				t.Fields = append(t.Fields, *f)
			}
		} else {
			l.diag.Errorf(diag.MalformedDeclaration, rest[i].Start, rest[i].End, "expected a (field ...) form")
		}
	}
	return t
}

func (l *lowerer) lowerField(n cst.Node) *ast.FieldDef {
	rest := n.Rest()
	if len(rest) < 2 {
		l.diag.Errorf(diag.MalformedDeclaration, n.Start, n.End, "field requires a name and a type")
		return nil
	}
	name, _ := atomText(rest[0])
	f := &ast.FieldDef{Name: name, Position: posOf(rest[0])}
	f.Type, f.TypeExpr = l.lowerTypeRef(rest[1])
	i := 2
	for i < len(rest) {
		if !rest[i].IsAtom() || rest[i].Atom.Kind != token.Keyword {
			l.diag.Errorf(diag.ExpectedKeyword, rest[i].Start, rest[i].End, "expected a field annotation keyword")
			i++
			continue
		}
		switch rest[i].Atom.Text {
		case "immutable":
			f.Immutable = true
			i++
		case "generated":
			f.Generated = true
			i++
		case "min-len":
			if i+1 < len(rest) {
				if v, ok := l.intAtom(rest[i+1]); ok {
					f.MinLen = &v
				}
			}
			i += 2
		case "max-len":
			if i+1 < len(rest) {
				if v, ok := l.intAtom(rest[i+1]); ok {
					f.MaxLen = &v
				}
			}
			i += 2
		case "format":
			if i+1 < len(rest) {
				f.Format, _ = atomText(rest[i+1])
			}
			i += 2
		case "unique-within":
			if i+1 < len(rest) {
				f.UniqueWithin, _ = atomText(rest[i+1])
			}
			i += 2
		default:
			if i+1 < len(rest) {
				f.Extra = append(f.Extra, ast.MetaEntry{Key: rest[i].Atom.Text, Value: toRawForm(rest[i+1])})
				i += 2
			} else {
				l.diag.Errorf(diag.UnknownAttribute, rest[i].Start, rest[i].End, "unknown field attribute :%s", rest[i].Atom.Text)
				i++
			}
		}
	}
	return f
}

// lowerTypeRef handles a plain atomic type symbol or the supplemented
// `(enum :a :b ...)` / `(list T)` type expression forms.
func (l *lowerer) lowerTypeRef(n cst.Node) (string, *ast.TypeExpr) {
	if n.IsAtom() {
		txt, _ := atomText(n)
		return txt, nil
	}
	if sym, ok := n.HeadSymbol(); ok {
		switch sym {
		case "enum":
			var variants []string
			for _, c := range n.Rest() {
				if v, ok := atomText(c); ok {
					variants = append(variants, v)
				}
			}
			return "", &ast.TypeExpr{Kind: ast.TypeEnum, Variants: variants}
		case "list":
			rest := n.Rest()
			if len(rest) > 0 {
				elemName, elemExpr := l.lowerTypeRef(rest[0])
				elem := elemExpr
				if elem == nil {
					elem = &ast.TypeExpr{Kind: ast.TypeAtomic, Name: elemName}
				}
				return "", &ast.TypeExpr{Kind: ast.TypeList, Elem: elem}
			}
		}
	}
	l.diag.Errorf(diag.TypeAnnotationMismatch, n.Start, n.End, "unrecognized type reference form")
	return "", nil
}

func (l *lowerer) lowerEffectSetDef(n cst.Node) *ast.EffectSetDef {
	rest := n.Rest()
	if len(rest) < 2 {
		l.diag.Errorf(diag.MalformedDeclaration, n.Start, n.End, "effect-set requires a name and a binding vector")
		return nil
	}
	name, _ := atomText(rest[0])
	e := ast.NewEffectSetDef(posOf(rest[0]))
	e.Name = name
	if rest[1].Kind != cst.KindVector {
		l.diag.Errorf(diag.MalformedDeclaration, rest[1].Start, rest[1].End, "effect-set bindings must be a vector")
		return e
	}
	children := rest[1].Children
	for i := 0; i+1 < len(children); i += 2 {
		kw := children[i]
		res := children[i+1]
		if !kw.IsAtom() || kw.Atom.Kind != token.Keyword {
			l.diag.Errorf(diag.ExpectedKeyword, kw.Start, kw.End, "expected an effect-kind keyword")
			continue
		}
		var kind ast.EffectKind
		switch kw.Atom.Text {
		case "reads":
			kind = ast.Reads
		case "writes":
			kind = ast.Writes
		case "sends":
			kind = ast.Sends
		default:
			l.diag.Errorf(diag.UnknownAttribute, kw.Start, kw.End, "unknown effect kind :%s", kw.Atom.Text)
			continue
		}
		resource, _ := atomText(res)
		e.Bindings = append(e.Bindings, ast.EffectBinding{Kind: kind, Resource: resource})
	}
	if len(children)%2 != 0 {
		l.diag.Errorf(diag.OddAttributeList, rest[1].Start, rest[1].End, "effect-set binding vector has odd arity")
	}
	return e
}

func (l *lowerer) lowerFnDef(n cst.Node) *ast.FnDef {
	rest := n.Rest()
	if len(rest) == 0 {
		l.diag.Errorf(diag.ExpectedSymbol, n.Start, n.End, "fn requires a name symbol")
		return nil
	}
	name, _ := atomText(rest[0])
	fn := ast.NewFnDef(posOf(rest[0]))
	fn.Name = name
	i := 1
	for i < len(rest) {
		if rest[i].IsAtom() && rest[i].Atom.Kind == token.Keyword {
			if i+1 >= len(rest) {
				l.diag.Errorf(diag.OddAttributeList, rest[i].Start, rest[i].End, "attribute %q missing value", rest[i].Atom.Text)
				break
			}
			l.lowerFnAttr(fn, rest[i], rest[i+1])
			i += 2
			continue
		}
		break
	}
	for i < len(rest) {
		if sym, ok := rest[i].HeadSymbol(); ok && sym == "param" {
			if p := l.lowerParam(rest[i]); p != nil {
				fn.Params = append(fn.Params, *p)
			}
			i++
			continue
		}
		break
	}
	if i < len(rest) {
		if sym, ok := rest[i].HeadSymbol(); ok && sym == "returns" {
			fn.Returns = l.lowerReturns(rest[i])
			i++
		}
	}
	if i < len(rest) {
		fn.Body = l.lowerExpr(rest[i])
		i++
	} else {
		l.diag.Errorf(diag.MalformedDeclaration, n.Start, n.End, "fn %q has no body expression", name)
	}
	return fn
}

func (l *lowerer) lowerFnAttr(fn *ast.FnDef, key, val cst.Node) {
	switch key.Atom.Text {
	case "provenance":
		fn.Provenance = l.lowerProvenance(val)
	case "effects":
		for _, c := range val.Children {
			if s, ok := atomText(c); ok {
				fn.Effects = append(fn.Effects, s)
			}
		}
	case "total":
		if val.IsAtom() && val.Atom.Kind == token.Boolean {
			fn.Total = val.Atom.Bool
		}
	case "latency-budget":
		if val.IsAtom() && val.Atom.Kind == token.Duration {
			fn.LatencyBudget = &ast.Duration{Magnitude: val.Atom.Int, Unit: val.Atom.Unit}
		}
	case "called-by":
		for _, c := range val.Children {
			if s, ok := atomText(c); ok {
				fn.CalledBy = append(fn.CalledBy, s)
			}
		}
	case "idempotency-key":
		fn.IdempotencyKey = l.lowerExpr(val)
	default:
		fn.Extra = append(fn.Extra, ast.MetaEntry{Key: key.Atom.Text, Value: toRawForm(val)})
	}
}

func (l *lowerer) lowerParam(n cst.Node) *ast.ParamDef {
	rest := n.Rest()
	if len(rest) < 2 {
		l.diag.Errorf(diag.MalformedDeclaration, n.Start, n.End, "param requires a name and a type")
		return nil
	}
	name, _ := atomText(rest[0])
	p := &ast.ParamDef{Name: name, Position: posOf(rest[0])}
	if rest[1].Kind == cst.KindMap {
		for _, e := range rest[1].Entries {
			fname, _ := atomText(e.Key)
			ftype, _ := atomText(e.Value)
			p.InlineRecord = append(p.InlineRecord, ast.FieldRef{Name: fname, Type: ftype})
		}
	} else {
		p.Type, _ = atomText(rest[1])
	}
	for i := 2; i < len(rest); i += 2 {
		if !rest[i].IsAtom() || rest[i].Atom.Kind != token.Keyword {
			l.diag.Errorf(diag.ExpectedKeyword, rest[i].Start, rest[i].End, "expected a param annotation keyword")
			continue
		}
		if i+1 >= len(rest) {
			l.diag.Errorf(diag.OddAttributeList, rest[i].Start, rest[i].End, "param annotation :%s missing value", rest[i].Atom.Text)
			break
		}
		val, _ := atomText(rest[i+1])
		switch rest[i].Atom.Text {
		case "source":
			p.Source = val
		case "content-type":
			p.ContentType = val
		case "validated-at":
			p.ValidatedAt = val
		default:
			p.Extra = append(p.Extra, ast.MetaEntry{Key: rest[i].Atom.Text, Value: toRawForm(rest[i+1])})
		}
	}
	return p
}

func (l *lowerer) lowerReturns(n cst.Node) []ast.Variant {
	rest := n.Rest()
	if len(rest) != 1 {
		l.diag.Errorf(diag.MalformedDeclaration, n.Start, n.End, "returns must wrap exactly one (union ...) form")
		return nil
	}
	union := rest[0]
	if sym, ok := union.HeadSymbol(); !ok || sym != "union" {
		l.diag.Errorf(diag.MalformedDeclaration, union.Start, union.End, "returns must wrap a (union ...) form")
		return nil
	}
	var variants []ast.Variant
	for _, v := range union.Rest() {
		variants = append(variants, l.lowerVariant(v))
	}
	return variants
}

func (l *lowerer) lowerVariant(n cst.Node) ast.Variant {
	sym, _ := n.HeadSymbol()
	rest := n.Rest()
	v := ast.Variant{IsErr: sym == "err"}
	switch sym {
	case "ok":
		idx := 0
		if idx < len(rest) && !(rest[idx].IsAtom() && rest[idx].Atom.Kind == token.Keyword) {
			v.PayloadType, _ = atomText(rest[idx])
			idx++
		}
		for idx+1 < len(rest) {
			kw, _ := atomText(rest[idx])
			switch kw {
			case "http":
				if code, ok := l.intAtom(rest[idx+1]); ok {
					v.HTTPCode = code
				}
			case "serialize":
				v.Serialize, _ = atomText(rest[idx+1])
			}
			idx += 2
		}
	case "err":
		idx := 0
		if idx+1 < len(rest) {
			tagKw, _ := atomText(rest[idx])
			v.Tag = tagKw
			idx++
			payload := l.lowerExpr(rest[idx])
			v.PayloadForm = &payload
			idx++
		}
		for idx+1 < len(rest) {
			kw, _ := atomText(rest[idx])
			if kw == "http" {
				if code, ok := l.intAtom(rest[idx+1]); ok {
					v.HTTPCode = code
				}
			}
			idx += 2
		}
	default:
		l.diag.Errorf(diag.MalformedDeclaration, n.Start, n.End, "variant must be (ok ...) or (err ...)")
	}
	return v
}

// lowerExpr dispatches on the CST node's head symbol (for lists) or atom
// kind, producing an ast.Expr. Called both from function bodies and from
// expression-typed attribute values like :idempotency-key.
func (l *lowerer) lowerExpr(n cst.Node) ast.Expr {
	if n.IsAtom() {
		return l.lowerAtomExpr(n)
	}
	if n.Kind == cst.KindVector {
		var elems []ast.Expr
		for _, c := range n.Children {
			elems = append(elems, l.lowerExpr(c))
		}
		return ast.NewVecLit(posOf(n), elems)
	}
	if n.Kind == cst.KindMap {
		var entries []ast.MapEntryExpr
		for _, e := range n.Entries {
			key, _ := atomText(e.Key)
			entries = append(entries, ast.MapEntryExpr{Key: key, Value: l.lowerExpr(e.Value)})
		}
		return ast.NewMapLit(posOf(n), entries)
	}
	sym, ok := n.HeadSymbol()
	if !ok {
		l.diag.Errorf(diag.MalformedDeclaration, n.Start, n.End, "expression list must be headed by a symbol")
		return ast.NewLiteral(posOf(n), ast.LitString)
	}
	rest := n.Rest()
	pos := posOf(n)
	switch sym {
	case "let":
		return l.lowerLet(pos, rest)
	case "match":
		return l.lowerMatch(pos, rest)
	case "if":
		if len(rest) != 3 {
			l.diag.Errorf(diag.MalformedDeclaration, n.Start, n.End, "if requires exactly 3 children")
			return ast.NewLiteral(pos, ast.LitBool)
		}
		return ast.NewIf(pos, l.lowerExpr(rest[0]), l.lowerExpr(rest[1]), l.lowerExpr(rest[2]))
	case ".":
		if len(rest) != 2 {
			l.diag.Errorf(diag.MalformedDeclaration, n.Start, n.End, "field access requires object and field name")
			return ast.NewLiteral(pos, ast.LitString)
		}
		field, _ := atomText(rest[1])
		return ast.NewFieldAccess(pos, l.lowerExpr(rest[0]), field)
	case "ok":
		var payload []ast.Expr
		for _, c := range rest {
			payload = append(payload, l.lowerExpr(c))
		}
		return ast.NewCtor(pos, ast.CtorOk, "", payload)
	case "some":
		var payload []ast.Expr
		for _, c := range rest {
			payload = append(payload, l.lowerExpr(c))
		}
		return ast.NewCtor(pos, ast.CtorSome, "", payload)
	case "none":
		return ast.NewCtor(pos, ast.CtorNone, "", nil)
	case "err":
		tag := ""
		start := 0
		if len(rest) > 0 {
			if t, ok := atomText(rest[0]); ok && rest[0].IsAtom() && rest[0].Atom.Kind == token.Keyword {
				tag = t
				start = 1
			}
		}
		var payload []ast.Expr
		for _, c := range rest[start:] {
			payload = append(payload, l.lowerExpr(c))
		}
		return ast.NewCtor(pos, ast.CtorErr, tag, payload)
	default:
		var args []ast.Expr
		for _, c := range rest {
			args = append(args, l.lowerExpr(c))
		}
		return ast.NewCall(pos, sym, args)
	}
}

func (l *lowerer) lowerLet(pos token.Pos, rest []cst.Node) ast.Expr {
	if len(rest) != 2 || rest[0].Kind != cst.KindVector {
		l.diag.Errorf(diag.MalformedDeclaration, pos.Offset, pos.Offset, "let requires a binding vector and a body")
		return ast.NewLiteral(pos, ast.LitString)
	}
	children := rest[0].Children
	var bindings []ast.Binding
	for i := 0; i+1 < len(children); i += 2 {
		name, _ := atomText(children[i])
		bindings = append(bindings, ast.Binding{Name: name, Val: l.lowerExpr(children[i+1])})
	}
	if len(children)%2 != 0 {
		l.diag.Errorf(diag.OddAttributeList, rest[0].Start, rest[0].End, "let binding vector has odd arity")
	}
	return ast.NewLet(pos, bindings, l.lowerExpr(rest[1]))
}

func (l *lowerer) lowerMatch(pos token.Pos, rest []cst.Node) ast.Expr {
	if len(rest) < 1 {
		l.diag.Errorf(diag.MalformedDeclaration, pos.Offset, pos.Offset, "match requires a scrutinee")
		return ast.NewLiteral(pos, ast.LitString)
	}
	scrut := l.lowerExpr(rest[0])
	var arms []ast.MatchArm
	i := 1
	for i+1 < len(rest) {
		pat := l.lowerPattern(rest[i])
		body := l.lowerExpr(rest[i+1])
		arms = append(arms, ast.MatchArm{Pattern: pat, Body: body})
		i += 2
	}
	return ast.NewMatch(pos, scrut, arms)
}

func (l *lowerer) lowerPattern(n cst.Node) ast.Pattern {
	if n.IsAtom() {
		if n.Atom.Kind == token.Symbol && n.Atom.Text == "_" {
			return &ast.WildcardPattern{}
		}
		if n.Atom.Kind == token.Symbol {
			return &ast.BindingPattern{Name: n.Atom.Text}
		}
	}
	if sym, ok := n.HeadSymbol(); ok {
		var kind ast.CtorKind
		switch sym {
		case "ok":
			kind = ast.CtorOk
		case "some":
			kind = ast.CtorSome
		case "none":
			kind = ast.CtorNone
		case "err":
			kind = ast.CtorErr
		default:
			l.diag.Errorf(diag.MalformedDeclaration, n.Start, n.End, "unrecognized pattern head %q", sym)
			return &ast.WildcardPattern{}
		}
		rest := n.Rest()
		tag := ""
		start := 0
		if kind == ast.CtorErr && len(rest) > 0 {
			if rest[0].IsAtom() && rest[0].Atom.Kind == token.Keyword {
				tag = rest[0].Atom.Text
				start = 1
			} else if rest[0].IsAtom() && rest[0].Atom.Kind == token.Symbol && rest[0].Atom.Text == "_" {
				start = 1
			}
		}
		var subs []ast.Pattern
		for _, c := range rest[start:] {
			subs = append(subs, l.lowerPattern(c))
		}
		return &ast.CtorPattern{Kind: kind, Tag: tag, SubPats: subs}
	}
	l.diag.Errorf(diag.MalformedDeclaration, n.Start, n.End, "unrecognized pattern form")
	return &ast.WildcardPattern{}
}

func (l *lowerer) lowerAtomExpr(n cst.Node) ast.Expr {
	pos := n.Atom.Pos
	switch n.Atom.Kind {
	case token.Integer:
		e := ast.NewLiteral(pos, ast.LitInt)
		e.Int = n.Atom.Int
		return e
	case token.String:
		e := ast.NewLiteral(pos, ast.LitString)
		e.Str = n.Atom.Text
		return e
	case token.Boolean:
		e := ast.NewLiteral(pos, ast.LitBool)
		e.Bool = n.Atom.Bool
		return e
	case token.Duration:
		e := ast.NewLiteral(pos, ast.LitDuration)
		e.Dur = ast.Duration{Magnitude: n.Atom.Int, Unit: n.Atom.Unit}
		return e
	case token.Regex:
		e := ast.NewLiteral(pos, ast.LitRegex)
		e.Str = n.Atom.Text
		return e
	case token.Keyword:
		e := ast.NewLiteral(pos, ast.LitKeyword)
		e.Str = n.Atom.Text
		return e
	case token.Symbol:
		e := ast.NewLiteral(pos, ast.LitSymbolRef)
		e.Str = n.Atom.Text
		return e
	default:
		l.diag.Errorf(diag.MalformedDeclaration, n.Start, n.End, "unexpected atom in expression position")
		e := ast.NewLiteral(pos, ast.LitString)
		return e
	}
}
