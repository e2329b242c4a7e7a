// Package diag names the diagnostic taxonomy from the compiler's error
// handling design and collects diagnostics against a srcfiles.List so every
// message carries a source span.
package diag

import (
	"fmt"

	"github.com/akitaonrails/pact-lang/compiler/srcfiles"
)

// Kind is the diagnostic taxonomy, grouped by the pipeline stage that raises
// it. The string value is also used verbatim in rendered messages.
type Kind string

const (
	// Lexical
	UnterminatedString Kind = "UnterminatedString"
	UnterminatedRegex  Kind = "UnterminatedRegex"
	UnexpectedChar     Kind = "UnexpectedChar"

	// Syntactic
	UnexpectedEOF       Kind = "UnexpectedEOF"
	MismatchedDelimiter Kind = "MismatchedDelimiter"
	OddMapArity         Kind = "OddMapArity"

	// Structural (lowering)
	MalformedDeclaration Kind = "MalformedDeclaration"
	UnknownAttribute     Kind = "UnknownAttribute"
	ExpectedSymbol       Kind = "ExpectedSymbol"
	ExpectedKeyword      Kind = "ExpectedKeyword"
	OddAttributeList     Kind = "OddAttributeList"
	TypeAnnotationMismatch Kind = "TypeAnnotationMismatch"

	// Semantic
	DuplicateDeclaration Kind = "DuplicateDeclaration"
	UnresolvedSymbol     Kind = "UnresolvedSymbol"
	UnknownEffectSet     Kind = "UnknownEffectSet"
	EffectEscape         Kind = "EffectEscape"
	NonExhaustiveMatch   Kind = "NonExhaustiveMatch"

	// Warnings
	UnknownExhaustivenessDomain Kind = "UnknownExhaustivenessDomain"
	UnreachableArm              Kind = "UnreachableArm"
	IntrinsicEffectEscape       Kind = "IntrinsicEffectEscape"
)

// Collector accumulates diagnostics for one compilation, keeping them bound
// to the srcfiles.List that resolves spans to line:column.
type Collector struct {
	Files *srcfiles.List
}

func NewCollector(files *srcfiles.List) *Collector {
	return &Collector{Files: files}
}

func (c *Collector) Errorf(kind Kind, pos, end int, format string, args ...any) {
	c.Files.AddError(renderMsg(kind, format, args), pos, end)
}

func (c *Collector) Warnf(kind Kind, pos, end int, format string, args ...any) {
	c.Files.AddWarning(renderMsg(kind, format, args), pos, end)
}

func renderMsg(kind Kind, format string, args []any) string {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return "[" + string(kind) + "] " + msg
}

// HasErrors reports whether any error-severity diagnostic (warnings don't
// count) has been collected so far.
func (c *Collector) HasErrors() bool {
	return c.Files.Error() != nil
}

func (c *Collector) Err() error {
	return c.Files.Error()
}

func (c *Collector) All() srcfiles.ErrorList {
	return c.Files.Errors()
}
