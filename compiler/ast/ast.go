// Package ast defines the typed abstract syntax tree lowered from the CST.
// Expr, Pattern, and Decl are closed sum types dispatched by exhaustive type
// switch in every consumer, the same shape go/ast uses for its Node
// interface and the approach this compiler's teacher documents for its own
// query-plan AST.
package ast

import "github.com/akitaonrails/pact-lang/compiler/token"

// MetaEntry is one unrecognized keyword attribute preserved verbatim so
// lowering never silently discards metadata it doesn't understand.
type MetaEntry struct {
	Key   string
	Value CST
}

// CST is a narrow alias used only where ast stores a raw, un-lowered form
// (delta blocks, pass-through attribute values).
type CST = RawForm

// RawForm is a simplified copy of a cst.Node: an atom keeps its text (or its
// integer value), a list or vector keeps its children, and a map is
// flattened into alternating key/value children. The atom kind and the
// list/vector/map distinction are not kept.
type RawForm struct {
	Text     string
	Int      int64
	IsInt    bool
	Children []RawForm
}

// Provenance is the supplemented, structured decode of a `:provenance` map;
// Req/Author/Created/Test are recognized keys, everything else survives in
// Extra.
type Provenance struct {
	Req     string
	Author  string
	Created string
	Test    []string
	Extra   []MetaEntry
}

// Delta is the supplemented structured decode of a `:delta` form; Module
// also keeps the raw CST form so the spec's "stored verbatim" contract
// holds regardless of whether the structured decode succeeds.
type Delta struct {
	Operation   string
	Target      string
	Description string
}

// Module is the top-level node produced by lowering.
type Module struct {
	Name          string
	Provenance    Provenance
	Version       *int64
	ParentVersion *int64
	Delta         *RawForm
	DeltaInfo     *Delta
	Decls         []Decl
	Pos           token.Pos
}

// Decl is the closed sum of top-level declarations: TypeDef, EffectSetDef,
// FnDef.
type Decl interface {
	declNode()
	Pos() token.Pos
}

type TypeDef struct {
	Name       string
	Invariants []Expr
	Fields     []FieldDef
	Extra      []MetaEntry
	position   token.Pos
}

func (t *TypeDef) declNode()       {}
func (t *TypeDef) Pos() token.Pos  { return t.position }
func NewTypeDef(pos token.Pos) *TypeDef { return &TypeDef{position: pos} }

// TypeExprKind distinguishes the shapes a type reference can take.
// TypeAtomic is a bare type-name symbol (for instance a list's element
// type), TypeEnum is the supplemented `(enum ...)` form, and TypeList is
// `(list T)`.
type TypeExprKind int

const (
	TypeAtomic TypeExprKind = iota
	TypeEnum
	TypeList
)

// TypeExpr is a resolved type reference. Name holds the atomic type name
// for TypeAtomic; Elem holds the element type for TypeList; Variants holds
// the enum members for TypeEnum.
type TypeExpr struct {
	Kind     TypeExprKind
	Name     string
	Variants []string
	Elem     *TypeExpr
}

type FieldDef struct {
	Name        string
	Type        string
	TypeExpr    *TypeExpr // set when Type is an enum or list form; nil for a plain atomic reference
	Immutable   bool
	Generated   bool
	MinLen      *int64
	MaxLen      *int64
	Format      string
	UniqueWithin string
	Extra       []MetaEntry
	Position    token.Pos
}

type EffectKind int

const (
	Reads EffectKind = iota
	Writes
	Sends
)

func (k EffectKind) String() string {
	switch k {
	case Reads:
		return "reads"
	case Writes:
		return "writes"
	case Sends:
		return "sends"
	default:
		return "?"
	}
}

// EffectBinding is one `:kind resource` pair in an effect-set vector.
type EffectBinding struct {
	Kind     EffectKind
	Resource string
}

type EffectSetDef struct {
	Name     string
	Bindings []EffectBinding
	position token.Pos
}

func (e *EffectSetDef) declNode()      {}
func (e *EffectSetDef) Pos() token.Pos { return e.position }
func NewEffectSetDef(pos token.Pos) *EffectSetDef { return &EffectSetDef{position: pos} }

// DurationUnit mirrors token.DurationUnit but lives in ast so downstream
// packages don't need to import token just to read a latency budget.
type DurationUnit = token.DurationUnit

type Duration struct {
	Magnitude int64
	Unit      DurationUnit
}

type ParamDef struct {
	Name         string
	Type         string
	InlineRecord []FieldRef // non-nil when Type is an inline `{name: type, ...}` shape
	Source       string
	ContentType  string
	ValidatedAt  string
	Extra        []MetaEntry
	Position     token.Pos
}

// FieldRef is one `name: type` pair inside an inline record parameter type.
type FieldRef struct {
	Name string
	Type string
}

// Variant is one arm of a Union return type: Ok or Err.
type Variant struct {
	IsErr       bool
	Tag         string // Err only
	PayloadType string // Ok: a type reference; empty means unit
	PayloadForm *Expr  // Err: the payload-shape expression, when present
	HTTPCode    int64
	Serialize   string // Ok only, optional
}

type FnDef struct {
	Name            string
	Provenance      Provenance
	Effects         []string
	Total           bool
	LatencyBudget   *Duration
	CalledBy        []string
	IdempotencyKey  Expr
	Params          []ParamDef
	Returns         []Variant
	Body            Expr
	Extra           []MetaEntry
	position        token.Pos
}

func (f *FnDef) declNode()      {}
func (f *FnDef) Pos() token.Pos { return f.position }
func NewFnDef(pos token.Pos) *FnDef { return &FnDef{position: pos} }

// Expr is the closed sum of expression forms.
type Expr interface {
	exprNode()
	Pos() token.Pos
}

type Binding struct {
	Name string
	Val  Expr
}

type LetExpr struct {
	Bindings []Binding
	Body     Expr
	position token.Pos
}

func (e *LetExpr) exprNode()      {}
func (e *LetExpr) Pos() token.Pos { return e.position }

type MatchArm struct {
	Pattern Pattern
	Guard   Expr // optional
	Body    Expr
}

type MatchExpr struct {
	Scrutinee Expr
	Arms      []MatchArm
	position  token.Pos
}

func (e *MatchExpr) exprNode()      {}
func (e *MatchExpr) Pos() token.Pos { return e.position }

type IfExpr struct {
	Cond, Then, Else Expr
	position         token.Pos
}

func (e *IfExpr) exprNode()      {}
func (e *IfExpr) Pos() token.Pos { return e.position }

type CallExpr struct {
	Callee   string
	Args     []Expr
	position token.Pos
}

func (e *CallExpr) exprNode()      {}
func (e *CallExpr) Pos() token.Pos { return e.position }

type FieldAccessExpr struct {
	Obj      Expr
	Field    string
	position token.Pos
}

func (e *FieldAccessExpr) exprNode()      {}
func (e *FieldAccessExpr) Pos() token.Pos { return e.position }

type CtorKind int

const (
	CtorOk CtorKind = iota
	CtorErr
	CtorSome
	CtorNone
)

func (k CtorKind) String() string {
	switch k {
	case CtorOk:
		return "ok"
	case CtorErr:
		return "err"
	case CtorSome:
		return "some"
	case CtorNone:
		return "none"
	default:
		return "?"
	}
}

type CtorExpr struct {
	Kind     CtorKind
	Tag      string // Err only
	Payload  []Expr
	position token.Pos
}

func (e *CtorExpr) exprNode()      {}
func (e *CtorExpr) Pos() token.Pos { return e.position }

type MapEntryExpr struct {
	Key   string
	Value Expr
}

type MapLitExpr struct {
	Entries  []MapEntryExpr
	position token.Pos
}

func (e *MapLitExpr) exprNode()      {}
func (e *MapLitExpr) Pos() token.Pos { return e.position }

type VecLitExpr struct {
	Elements []Expr
	position token.Pos
}

func (e *VecLitExpr) exprNode()      {}
func (e *VecLitExpr) Pos() token.Pos { return e.position }

type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitString
	LitBool
	LitDuration
	LitRegex
	LitSymbolRef
	LitKeyword
)

type LiteralExpr struct {
	Kind     LiteralKind
	Int      int64
	Str      string
	Bool     bool
	Dur      Duration
	position token.Pos
}

func (e *LiteralExpr) exprNode()      {}
func (e *LiteralExpr) Pos() token.Pos { return e.position }

func NewLet(pos token.Pos, b []Binding, body Expr) *LetExpr { return &LetExpr{Bindings: b, Body: body, position: pos} }
func NewMatch(pos token.Pos, scrut Expr, arms []MatchArm) *MatchExpr {
	return &MatchExpr{Scrutinee: scrut, Arms: arms, position: pos}
}
func NewIf(pos token.Pos, c, t, e Expr) *IfExpr { return &IfExpr{Cond: c, Then: t, Else: e, position: pos} }
func NewCall(pos token.Pos, callee string, args []Expr) *CallExpr {
	return &CallExpr{Callee: callee, Args: args, position: pos}
}
func NewFieldAccess(pos token.Pos, obj Expr, field string) *FieldAccessExpr {
	return &FieldAccessExpr{Obj: obj, Field: field, position: pos}
}
func NewCtor(pos token.Pos, kind CtorKind, tag string, payload []Expr) *CtorExpr {
	return &CtorExpr{Kind: kind, Tag: tag, Payload: payload, position: pos}
}
func NewMapLit(pos token.Pos, entries []MapEntryExpr) *MapLitExpr {
	return &MapLitExpr{Entries: entries, position: pos}
}
func NewVecLit(pos token.Pos, elems []Expr) *VecLitExpr { return &VecLitExpr{Elements: elems, position: pos} }
func NewLiteral(pos token.Pos, kind LiteralKind) *LiteralExpr { return &LiteralExpr{Kind: kind, position: pos} }

// Pattern is the closed sum of match-arm patterns.
type Pattern interface {
	patternNode()
}

type CtorPattern struct {
	Kind    CtorKind
	Tag     string
	SubPats []Pattern
}

func (p *CtorPattern) patternNode() {}

type BindingPattern struct {
	Name string
}

func (p *BindingPattern) patternNode() {}

type WildcardPattern struct{}

func (p *WildcardPattern) patternNode() {}
