// Package lexer turns GON source text into a stream of positioned tokens.
package lexer

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/gon-format/go-gon/token"
)

// Lexer holds the state for tokenizing GON source.
type Lexer struct {
	input        []byte
	position     int
	readPosition int
	ch           rune
	line         int
	column       int
}

// New creates and returns a new Lexer.
func New(input []byte) *Lexer {
	l := &Lexer{input: input, line: 1, column: 1}
	l.readChar()
	return l
}

// NextToken scans the input and returns the next token.
//
// Lexing failures (unterminated strings, invalid escapes, invalid UTF-8) are
// reported as ILLEGAL tokens whose literal is the error message; the token's
// position marks the start of the offending construct.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	tok := token.Token{Line: l.line, Column: l.column}
	switch l.ch {
	case '{', '}', '[', ']', ',', ':':
		tok.Type = token.Type(l.ch)
		tok.Literal = string(l.ch)
	case '#':
		tok.Type = token.COMMENT
		tok.Literal = l.readComment()
		return tok
	case '"':
		lit, ok := l.readString()
		if !ok {
			tok.Type = token.ILLEGAL
		} else {
			tok.Type = token.STRING
		}
		tok.Literal = lit
		return tok
	case 0:
		tok.Type = token.EOF
		tok.Literal = ""
		return tok
	case -1:
		tok.Type = token.ILLEGAL
		tok.Literal = "invalid utf-8"
	default:
		tok.Type = token.WORD
		tok.Literal = l.readWord()
		return tok
	}
	l.advance()
	return tok
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
	} else {
		r, size := utf8.DecodeRune(l.input[l.readPosition:])
		if r == utf8.RuneError && size == 1 {
			l.ch = -1
		} else {
			l.ch = r
		}
		l.position = l.readPosition
		l.readPosition += size
	}
}

func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.readChar()
	l.column++
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.advance()
	}
}

func (l *Lexer) readComment() string {
	l.advance() // consume '#'
	for l.ch == ' ' || l.ch == '\t' {
		l.advance() // consume leading whitespace
	}
	var buf bytes.Buffer
	for l.ch != '\n' && l.ch != 0 {
		buf.WriteRune(l.ch)
		l.advance()
	}
	return buf.String()
}

// readWord consumes a maximal run of characters that are neither whitespace
// nor structural. Bare words carry no escape processing; a backslash is an
// ordinary word character.
func (l *Lexer) readWord() string {
	var buf bytes.Buffer
	for isWordChar(l.ch) {
		buf.WriteRune(l.ch)
		l.advance()
	}
	return buf.String()
}

func (l *Lexer) readString() (string, bool) {
	l.advance() // consume opening quote
	var buf bytes.Buffer
	for {
		if l.ch == '"' {
			l.advance() // consume closing quote
			return buf.String(), true
		}
		if l.ch == 0 {
			return "unterminated string", false
		}
		if l.ch == -1 {
			return "invalid utf-8 sequence in string", false
		}
		if l.ch == '\\' {
			r, ok, errMsg := l.readEscapeSequence()
			if !ok {
				return errMsg, false
			}
			buf.WriteRune(r)
		} else {
			buf.WriteRune(l.ch)
		}
		l.advance()
	}
}

func (l *Lexer) readEscapeSequence() (rune, bool, string) {
	l.advance() // consume backslash
	switch l.ch {
	case 'b', 'f', 'n', 'r', 't', '"', '\\', '/':
		return unescape(l.ch), true, ""
	case 'u':
		val, ok := l.readHex(4)
		if !ok {
			return 0, false, "invalid unicode escape"
		}
		if val >= 0xD800 && val <= 0xDFFF {
			return 0, false, "invalid unicode scalar value (surrogate pair)"
		}
		return val, true, ""
	case 0:
		return 0, false, "unterminated string"
	default:
		return 0, false, fmt.Sprintf("invalid escape sequence \\%c", l.ch)
	}
}

func (l *Lexer) readHex(n int) (rune, bool) {
	var val rune
	for i := 0; i < n; i++ {
		l.advance()
		var d rune
		switch {
		case '0' <= l.ch && l.ch <= '9':
			d = l.ch - '0'
		case 'a' <= l.ch && l.ch <= 'f':
			d = l.ch - 'a' + 10
		case 'A' <= l.ch && l.ch <= 'F':
			d = l.ch - 'A' + 10
		default:
			return 0, false
		}
		val = val*16 + d
	}
	return val, true
}

func isWordChar(ch rune) bool {
	switch ch {
	case '{', '}', '[', ']', ',', ':', '"', '#':
		return false
	case ' ', '\t', '\r', '\n', 0, -1:
		return false
	}
	return true
}

func unescape(ch rune) rune {
	switch ch {
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case '"':
		return '"'
	case '\\':
		return '\\'
	case '/':
		return '/'
	}
	return 0
}
