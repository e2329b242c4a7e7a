package srcfiles

import (
	"fmt"
	"strings"
)

// Severity distinguishes a fatal diagnostic from one that is merely
// informative. Per spec, warnings never block the pipeline from advancing
// to the next stage; errors do.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// ErrorList is a list of Errors, and itself satisfies the error interface
// so a pipeline stage can return it directly.
type ErrorList []*Error

func (e *ErrorList) Append(list *List, msg string, pos, end int) {
	*e = append(*e, &Error{Msg: msg, Pos: pos, End: end, Sev: SeverityError, list: list})
}

func (e *ErrorList) AppendWarning(list *List, msg string, pos, end int) {
	*e = append(*e, &Error{Msg: msg, Pos: pos, End: end, Sev: SeverityWarning, list: list})
}

func (e ErrorList) errorsOnly() []*Error {
	var out []*Error
	for _, d := range e {
		if d.Sev == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Error concatenates the errors in e with a newline between each.
func (e ErrorList) Error() string {
	var b strings.Builder
	for i, err := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// Error is one diagnostic, optionally bound to a position in a List.
type Error struct {
	Msg  string
	Pos  int
	End  int
	Sev  Severity
	list *List
}

func (e *Error) Error() string {
	if e.list == nil {
		return fmt.Sprintf("%s: %s", e.Sev, e.Msg)
	}
	file := e.list.FileOf(e.Pos)
	start := file.Position(e.Pos)
	end := file.Position(e.End)
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Sev, e.Msg)
	if file.Name != "" {
		fmt.Fprintf(&b, " in %s", file.Name)
	}
	line := file.LineOfPos(e.list.Text, e.Pos)
	fmt.Fprintf(&b, " at line %d, column %d:\n%s\n", start.Line, start.Column, line)
	if end.IsValid() {
		formatSpanError(&b, line, start, end)
	} else {
		formatPointError(&b, start)
	}
	return b.String()
}

func formatSpanError(b *strings.Builder, line string, start, end Position) {
	b.WriteString(strings.Repeat(" ", max(start.Column-1, 0)))
	n := end.Column - start.Column + 1
	if start.Line != end.Line || n <= 0 {
		n = len(line) - start.Column + 1
	}
	if n <= 0 {
		n = 1
	}
	b.WriteString(strings.Repeat("~", n))
}

func formatPointError(b *strings.Builder, start Position) {
	col := start.Column - 1
	for k := 0; k < col; k++ {
		if k >= col-4 && k != col-1 {
			b.WriteByte('=')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString("^ ===")
}
