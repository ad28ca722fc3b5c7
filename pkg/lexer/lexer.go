// Package lexer implements Mython's indentation-sensitive tokenizer.
//
// The off-side rule is driven as an explicit state machine rather than
// the mutually recursive helper style of the original C++ lexer: each
// logical line is scanned in full into a small pending queue (leading
// Indent/Dedent markers, then its content tokens, then a trailing
// Newline), and Advance simply drains that queue one token at a time.
// This makes "one call may need to emit several tokens" (draining a
// multi-level dedent, for instance) trivial to express without
// mutual recursion.
package lexer

import (
	"fmt"
	"math"

	"github.com/maslov-k/cpp-mython/pkg/token"
)

const indentUnit = 2 // spaces per indentation level

// Error reports a fatal lex failure: unterminated string literal or a
// malformed numeric literal. There is no resynchronization.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return "lex error: " + e.Msg }

// Token is a local alias so callers can write lexer.Token
// interchangeably with token.Token; both name the same type.
type Token = token.Token

// Lexer turns Mython source bytes into a stream of tokens. Construction
// primes the first real token, skipping any leading Newlines.
type Lexer struct {
	src []byte
	pos int

	lineIndent    int
	currentIndent int

	queue      []Token
	lastKind   token.Kind
	eofEmitted bool

	current Token
}

// New constructs a Lexer over src and reads the first token.
func New(src []byte) (*Lexer, error) {
	l := &Lexer{src: src, lastKind: token.Newline}
	if err := l.step(); err != nil {
		return nil, err
	}
	for l.current.Kind == token.Newline {
		if err := l.step(); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Current returns the most recently produced token without consuming it.
func (l *Lexer) Current() Token { return l.current }

// Advance consumes the current token and produces the next one.
func (l *Lexer) Advance() (Token, error) {
	if err := l.step(); err != nil {
		return Token{}, err
	}
	return l.current, nil
}

// step pops the next token off the pending queue, refilling it (by
// scanning exactly one more logical line) whenever it runs dry.
func (l *Lexer) step() error {
	for len(l.queue) == 0 {
		if l.eofEmitted {
			l.push(token.New(token.Eof))
			break
		}
		if err := l.fillQueue(); err != nil {
			return err
		}
	}
	l.current, l.queue = l.queue[0], l.queue[1:]
	return nil
}

func (l *Lexer) push(t Token) {
	l.queue = append(l.queue, t)
	l.lastKind = t.Kind
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) get() byte {
	c := l.peek()
	l.pos++
	return c
}

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

// fillQueue scans forward to find the next logical line with content
// (skipping blank and comment-only lines) and enqueues its
// Indent/Dedent markers, its content tokens, and a trailing Newline.
// If input ends first, it enqueues the end-of-input sequence instead.
func (l *Lexer) fillQueue() error {
	if !l.scanToContentLine() {
		l.finalizeAtEOF()
		return nil
	}

	delta := l.lineIndent - l.currentIndent
	for ; delta > 0; delta-- {
		l.push(token.New(token.Indent))
		l.currentIndent++
	}
	for ; delta < 0; delta++ {
		l.push(token.New(token.Dedent))
		l.currentIndent--
	}

	for {
		if l.eof() {
			l.finalizeAtEOF()
			return nil
		}
		switch c := l.peek(); {
		case c == ' ':
			l.get()
		case c == '#':
			l.skipComment()
		case c == '\n':
			l.get()
			l.push(token.New(token.Newline))
			return nil
		default:
			tok, err := l.lexContentToken()
			if err != nil {
				return err
			}
			l.push(tok)
		}
	}
}

// scanToContentLine consumes spaces, blank lines, and comment-only
// lines until it finds a logical line with real content, setting
// lineIndent from that line's leading space count. It returns false
// if end of input is reached first.
func (l *Lexer) scanToContentLine() bool {
	for {
		spaces := 0
		for l.peek() == ' ' {
			l.get()
			spaces++
		}
		if l.eof() {
			return false
		}
		switch l.peek() {
		case '#':
			l.skipComment()
			if l.peek() == '\n' {
				l.get()
			}
			continue
		case '\n':
			l.get()
			continue
		default:
			l.lineIndent = spaces / indentUnit
			return true
		}
	}
}

func (l *Lexer) skipComment() {
	for !l.eof() && l.peek() != '\n' {
		l.get()
	}
}

// finalizeAtEOF implements spec.md §4.1's end-of-input rules: emit a
// trailing Newline if the last emitted token wasn't already one, then
// drain every open Indent level as a Dedent, then Eof forever.
func (l *Lexer) finalizeAtEOF() {
	if l.lastKind != token.Newline && l.lastKind != token.Eof {
		l.push(token.New(token.Newline))
	}
	for l.currentIndent > 0 {
		l.push(token.New(token.Dedent))
		l.currentIndent--
	}
	l.push(token.New(token.Eof))
	l.eofEmitted = true
}

func (l *Lexer) lexContentToken() (Token, error) {
	c := l.peek()
	switch {
	case isDigit(c):
		return l.lexNumber()
	case c == '"' || c == '\'':
		return l.lexString()
	case isAlpha(c) || c == '_':
		return l.lexName(), nil
	default:
		return l.lexOperator(), nil
	}
}

func (l *Lexer) lexNumber() (Token, error) {
	start := l.pos
	for isDigit(l.peek()) {
		l.get()
	}
	text := string(l.src[start:l.pos])
	var v int64
	for _, c := range text {
		d := int64(c - '0')
		if v > (math.MaxInt64-d)/10 {
			return Token{}, &Error{Msg: fmt.Sprintf("integer literal %q overflows", text)}
		}
		v = v*10 + d
	}
	return token.NewNumber(v), nil
}

func (l *Lexer) lexString() (Token, error) {
	delim := l.get()
	var out []byte
	for {
		if l.eof() {
			return Token{}, &Error{Msg: "unterminated string literal"}
		}
		c := l.get()
		if c == delim {
			break
		}
		if c != '\\' {
			out = append(out, c)
			continue
		}
		if l.eof() {
			return Token{}, &Error{Msg: "unterminated string literal"}
		}
		switch esc := l.get(); esc {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case '\\':
			out = append(out, '\\')
		case '"':
			out = append(out, '"')
		case '\'':
			out = append(out, '\'')
		default:
			out = append(out, esc)
		}
	}
	return token.NewString(string(out)), nil
}

func (l *Lexer) lexName() Token {
	start := l.pos
	for isAlpha(l.peek()) || isDigit(l.peek()) || l.peek() == '_' {
		l.get()
	}
	return token.NewId(string(l.src[start:l.pos]))
}

var twoCharOps = map[[2]byte]token.Kind{
	{'=', '='}: token.Eq,
	{'!', '='}: token.NotEq,
	{'<', '='}: token.LessOrEq,
	{'>', '='}: token.GreaterOrEq,
}

func (l *Lexer) lexOperator() Token {
	c := l.get()
	pair := [2]byte{c, l.peek()}
	if kind, ok := twoCharOps[pair]; ok {
		l.get()
		return token.New(kind)
	}
	return token.NewChar(c)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
