// Package scanner splits ops scripts into statements and tokens. It
// tracks double-quoted strings (with escapes) and single-quoted raw
// strings so separators and comment markers inside literals are ignored.
package scanner

import (
	"fmt"
	"strings"
)

// closingKind tracks which type of string delimiter was just closed.
type closingKind byte

const (
	noClosing     closingKind = iota
	closingDouble             // just closed a "..." string
	closingSingle             // just closed a '...' string
)

// CodeScanner iterates byte-by-byte over source text, tracking string
// literal boundaries and escape sequences. Backslash escapes only apply
// inside double-quoted strings; single-quoted strings are raw.
//
// InString() returns true for the entire string span including both
// opening and closing delimiters.
type CodeScanner struct {
	src     string
	pos     int
	line    int
	inDbl   bool
	inSgl   bool
	escaped bool
	closing closingKind
}

// New creates a CodeScanner for the given source text.
// Call Next() to advance to the first byte.
func New(src string) *CodeScanner {
	return &CodeScanner{src: src, pos: -1, line: 1}
}

// Next advances to the next byte, updating string/escape state.
// Returns the byte and true, or (0, false) at end of input.
func (s *CodeScanner) Next() (byte, bool) {
	s.closing = noClosing
	s.pos++
	if s.pos >= len(s.src) {
		return 0, false
	}
	ch := s.src[s.pos]
	if ch == '\n' {
		s.line++
	}

	if s.escaped {
		s.escaped = false
		return ch, true
	}
	switch {
	case ch == '\\' && s.inDbl:
		s.escaped = true
	case ch == '"' && !s.inSgl:
		if s.inDbl {
			s.closing = closingDouble
		}
		s.inDbl = !s.inDbl
	case ch == '\'' && !s.inDbl:
		if s.inSgl {
			s.closing = closingSingle
		}
		s.inSgl = !s.inSgl
	}
	return ch, true
}

// InString reports whether the current position is inside a string
// literal, delimiters included.
func (s *CodeScanner) InString() bool {
	return s.inDbl || s.inSgl || s.closing != noClosing
}

// InCode reports whether the current position is outside all string literals.
func (s *CodeScanner) InCode() bool { return !s.InString() }

// Unterminated reports whether a string literal is still open.
func (s *CodeScanner) Unterminated() bool { return s.inDbl || s.inSgl }

// Pos returns the current byte offset (the position of the last byte
// returned by Next). Returns -1 before the first call to Next.
func (s *CodeScanner) Pos() int { return s.pos }

// Line returns the current 1-based line number.
func (s *CodeScanner) Line() int { return s.line }

// Peek returns the next byte without advancing, or (0, false) at end.
func (s *CodeScanner) Peek() (byte, bool) {
	if s.pos+1 >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos+1], true
}

// SkipLine advances to the last byte before the next newline (or the end
// of input) without updating string state. The newline itself is left for
// Next.
func (s *CodeScanner) SkipLine() {
	for ch, ok := s.Peek(); ok && ch != '\n'; ch, ok = s.Peek() {
		s.pos++
	}
}

// SyntaxError reports a string literal that is never closed.
type SyntaxError struct {
	Line   int // line the literal opens on
	Offset int // byte offset of the opening quote
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("unterminated string starting at offset %d", e.Offset)
}

// Statement is one non-empty statement with the line it starts on.
type Statement struct {
	Line int
	Text string
}

// Statements splits src on newlines and ';' outside string literals and
// drops '#' comments. Blank statements are skipped. A string left open at
// the end of a line runs on into the next one; one still open at the end
// of src is a *SyntaxError.
func Statements(src string) ([]Statement, error) {
	var out []Statement
	var cur strings.Builder
	startLine := 1
	openLine, openPos := 0, 0

	flush := func(next int) {
		if text := strings.TrimSpace(cur.String()); text != "" {
			out = append(out, Statement{Line: startLine, Text: text})
		}
		cur.Reset()
		startLine = next
	}

	sc := New(src)
	for {
		wasOpen := sc.Unterminated()
		ch, ok := sc.Next()
		if !ok {
			break
		}
		if !wasOpen && sc.Unterminated() {
			openLine, openPos = sc.Line(), sc.Pos()
		}
		if sc.InCode() {
			switch ch {
			case '#':
				sc.SkipLine()
				continue
			case '\n', ';':
				flush(sc.Line())
				continue
			}
		}
		cur.WriteByte(ch)
	}
	if sc.Unterminated() {
		return nil, &SyntaxError{Line: openLine, Offset: openPos}
	}
	flush(sc.Line())
	return out, nil
}
