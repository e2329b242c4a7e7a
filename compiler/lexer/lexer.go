// Package lexer turns Pact source text into a token stream, tracking
// position information and resynchronizing after lexical errors instead of
// panicking.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/akitaonrails/pact-lang/compiler/diag"
	"github.com/akitaonrails/pact-lang/compiler/token"
)

type Lexer struct {
	src  string
	pos  int
	line int
	col  int
	diag *diag.Collector
}

func New(src string, d *diag.Collector) *Lexer {
	return &Lexer{src: src, pos: 0, line: 1, col: 1, diag: d}
}

// Tokenize scans the entire source and returns a token stream terminated by
// an EOF token. It never panics; lexical errors are reported through the
// diagnostic collector and the lexer resynchronizes at the next whitespace.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
		if tok.Kind == token.Illegal {
			for !l.atEOF() && strings.IndexByte(" \t\r\n", l.src[l.pos]) < 0 {
				l.advance()
			}
		}
	}
}

func (l *Lexer) next() token.Token {
	l.skipWhitespaceAndComments()
	if l.atEOF() {
		return l.tok(token.EOF, l.pos, l.pos)
	}
	start := l.pos
	startPos := l.curPos()
	ch := l.src[l.pos]

	switch {
	case ch == '(':
		l.advance()
		return l.tokAt(token.LParen, start, l.pos, startPos)
	case ch == ')':
		l.advance()
		return l.tokAt(token.RParen, start, l.pos, startPos)
	case ch == '[':
		l.advance()
		return l.tokAt(token.LBracket, start, l.pos, startPos)
	case ch == ']':
		l.advance()
		return l.tokAt(token.RBracket, start, l.pos, startPos)
	case ch == '{':
		l.advance()
		return l.tokAt(token.LBrace, start, l.pos, startPos)
	case ch == '}':
		l.advance()
		return l.tokAt(token.RBrace, start, l.pos, startPos)
	case ch == ',':
		l.advance()
		return l.tokAt(token.Comma, start, l.pos, startPos)
	case ch == '"':
		return l.lexString(start, startPos)
	case ch == ':':
		return l.lexColonOrKeyword(start, startPos)
	case ch == '#':
		return l.lexHash(start, startPos)
	case isDigit(ch):
		return l.lexNumberOrDuration(start, startPos)
	case ch == '-' && l.peekIsDigit(1):
		return l.lexNumberOrDuration(start, startPos)
	case isSymbolStart(ch):
		return l.lexSymbol(start, startPos)
	default:
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		l.advanceN(size)
		l.diag.Errorf(diag.UnexpectedChar, start, l.pos, "unexpected character %q", r)
		return l.tokAt(token.Illegal, start, l.pos, startPos)
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEOF() {
		ch := l.src[l.pos]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == ';' && l.peekAt(1) == ';':
			for !l.atEOF() && l.src[l.pos] != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) lexString(start int, startPos token.Pos) token.Token {
	l.advance() // opening quote
	var b strings.Builder
	for {
		if l.atEOF() {
			l.diag.Errorf(diag.UnterminatedString, start, l.pos, "unterminated string")
			return l.tokStringAt(b.String(), start, l.pos, startPos)
		}
		ch := l.src[l.pos]
		switch ch {
		case '"':
			l.advance()
			return l.tokStringAt(b.String(), start, l.pos, startPos)
		case '\\':
			l.advance()
			if l.atEOF() {
				l.diag.Errorf(diag.UnterminatedString, start, l.pos, "unterminated string escape")
				return l.tokStringAt(b.String(), start, l.pos, startPos)
			}
			switch l.src[l.pos] {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(l.src[l.pos])
			}
			l.advance()
		default:
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			b.WriteRune(r)
			l.advanceN(size)
		}
	}
}

func (l *Lexer) lexColonOrKeyword(start int, startPos token.Pos) token.Token {
	l.advance() // ':'
	if l.atEOF() || !isSymbolStart(l.src[l.pos]) {
		return l.tokAt(token.Colon, start, l.pos, startPos)
	}
	symStart := l.pos
	for !l.atEOF() && isSymbolCont(l.src[l.pos]) {
		l.advance()
	}
	return l.tokStringKindAt(token.Keyword, l.src[symStart:l.pos], start, l.pos, startPos)
}

func (l *Lexer) lexHash(start int, startPos token.Pos) token.Token {
	if l.peekAt(1) == '/' {
		l.advanceN(2)
		var b strings.Builder
		for {
			if l.atEOF() {
				l.diag.Errorf(diag.UnterminatedRegex, start, l.pos, "unterminated regex literal")
				return l.tokRegexAt(b.String(), start, l.pos, startPos)
			}
			ch := l.src[l.pos]
			if ch == '/' {
				l.advance()
				return l.tokRegexAt(b.String(), start, l.pos, startPos)
			}
			if ch == '\\' && l.peekAt(1) == '/' {
				b.WriteByte('\\')
				b.WriteByte('/')
				l.advanceN(2)
				continue
			}
			if ch == '\\' {
				b.WriteByte('\\')
				l.advance()
				if !l.atEOF() {
					b.WriteByte(l.src[l.pos])
					l.advance()
				}
				continue
			}
			b.WriteByte(ch)
			l.advance()
		}
	}
	l.advance()
	l.diag.Errorf(diag.UnexpectedChar, start, l.pos, "unexpected '#'")
	return l.tokAt(token.Illegal, start, l.pos, startPos)
}

// lexNumberOrDuration scans an integer literal and, if an unbroken duration
// suffix immediately follows, folds it into a Duration token. It prefers
// the longest valid suffix: "ms" must win over a bare "m".
func (l *Lexer) lexNumberOrDuration(start int, startPos token.Pos) token.Token {
	if l.src[l.pos] == '-' {
		l.advance()
	}
	numStart := l.pos
	for !l.atEOF() && isDigit(l.src[l.pos]) {
		l.advance()
	}
	numText := l.src[numStart:l.pos]

	if !l.atEOF() {
		if strings.HasPrefix(l.src[l.pos:], "ms") && !l.suffixContinuesSymbol(2) {
			return l.finishDuration(numText, token.Ms, 2, start, startPos)
		}
		if ch := l.src[l.pos]; (ch == 's' || ch == 'm' || ch == 'h') && !l.suffixContinuesSymbol(1) {
			var unit token.DurationUnit
			switch ch {
			case 's':
				unit = token.S
			case 'm':
				unit = token.M
			case 'h':
				unit = token.H
			}
			return l.finishDuration(numText, unit, 1, start, startPos)
		}
	}

	fullText := l.src[start:l.pos]
	n, err := strconv.ParseInt(fullText, 10, 64)
	if err != nil {
		l.diag.Errorf(diag.UnexpectedChar, start, l.pos, "invalid integer %q", fullText)
		n = 0
	}
	return l.tokIntAt(n, start, l.pos, startPos)
}

func (l *Lexer) suffixContinuesSymbol(suffixLen int) bool {
	at := l.pos + suffixLen
	if at >= len(l.src) {
		return false
	}
	return isSymbolCont(l.src[at])
}

func (l *Lexer) finishDuration(numText string, unit token.DurationUnit, suffixLen int, start int, startPos token.Pos) token.Token {
	v, err := strconv.ParseInt(numText, 10, 64)
	if err != nil {
		l.diag.Errorf(diag.UnexpectedChar, start, l.pos, "invalid duration magnitude %q", numText)
	}
	l.advanceN(suffixLen)
	return l.tokDurationAt(v, unit, start, l.pos, startPos)
}

func (l *Lexer) lexSymbol(start int, startPos token.Pos) token.Token {
	for !l.atEOF() && isSymbolCont(l.src[l.pos]) {
		l.advance()
	}
	text := l.src[start:l.pos]
	switch text {
	case "true":
		return l.tokBoolAt(true, start, l.pos, startPos)
	case "false":
		return l.tokBoolAt(false, start, l.pos, startPos)
	default:
		return l.tokStringKindAt(token.Symbol, text, start, l.pos, startPos)
	}
}

// --- byte/rune scanning helpers ---

func (l *Lexer) atEOF() bool { return l.pos >= len(l.src) }

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *Lexer) peekIsDigit(n int) bool {
	return isDigit(l.peekAt(n))
}

func (l *Lexer) advance() {
	if l.src[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) curPos() token.Pos {
	return token.Pos{Offset: l.pos, Line: l.line, Column: l.col}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isSymbolStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
		ch == '-' || ch == '_' || ch == '?' || ch == '!' || ch == '/' || ch == '.'
}

func isSymbolCont(ch byte) bool {
	return isSymbolStart(ch) || isDigit(ch)
}

// --- token constructors ---

func (l *Lexer) tok(kind token.Kind, start, end int) token.Token {
	return token.Token{Kind: kind, Start: start, End: end, Pos: l.curPos()}
}

func (l *Lexer) tokAt(kind token.Kind, start, end int, pos token.Pos) token.Token {
	return token.Token{Kind: kind, Start: start, End: end, Pos: pos}
}

func (l *Lexer) tokStringAt(text string, start, end int, pos token.Pos) token.Token {
	return token.Token{Kind: token.String, Text: text, Start: start, End: end, Pos: pos}
}

func (l *Lexer) tokStringKindAt(kind token.Kind, text string, start, end int, pos token.Pos) token.Token {
	return token.Token{Kind: kind, Text: text, Start: start, End: end, Pos: pos}
}

func (l *Lexer) tokRegexAt(text string, start, end int, pos token.Pos) token.Token {
	return token.Token{Kind: token.Regex, Text: text, Start: start, End: end, Pos: pos}
}

func (l *Lexer) tokIntAt(n int64, start, end int, pos token.Pos) token.Token {
	return token.Token{Kind: token.Integer, Int: n, Start: start, End: end, Pos: pos}
}

func (l *Lexer) tokBoolAt(b bool, start, end int, pos token.Pos) token.Token {
	return token.Token{Kind: token.Boolean, Bool: b, Start: start, End: end, Pos: pos}
}

func (l *Lexer) tokDurationAt(n int64, unit token.DurationUnit, start, end int, pos token.Pos) token.Token {
	return token.Token{Kind: token.Duration, Int: n, Unit: unit, Start: start, End: end, Pos: pos}
}
