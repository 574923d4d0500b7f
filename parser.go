package gon

import (
	"fmt"

	"github.com/gon-format/go-gon/lexer"
	"github.com/gon-format/go-gon/token"
)

// Parser transforms a stream of tokens into a Value tree.
//
// Parsing is fail-fast: the first lexing or grammar error aborts the parse
// and no partial tree is returned.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token
}

// NewParser creates a new Parser reading from l.
func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	// Read two tokens, so curToken and peekToken are both set.
	p.nextToken()
	p.nextToken()
	return p
}

// nextToken advances the lookahead window. Comments are discarded here so
// that neither curToken nor peekToken ever holds one.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
	for p.peekToken.Type == token.COMMENT {
		p.peekToken = p.l.NextToken()
	}
}

// ParseDocument parses a complete GON document and returns the root Value.
//
// A document is normally an implicit object: a sequence of key/value pairs
// with no enclosing braces. Braced objects, top-level arrays, and documents
// consisting of a single scalar are also accepted.
func (p *Parser) ParseDocument() (*Value, error) {
	switch p.curToken.Type {
	case token.EOF:
		return &Value{kind: Object}, nil
	case token.LBRACE:
		obj, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		return obj, p.expectEOF()
	case token.LBRACK:
		arr, err := p.parseArray()
		if err != nil {
			return nil, err
		}
		return arr, p.expectEOF()
	case token.ILLEGAL:
		return nil, p.lexError()
	case token.WORD, token.STRING:
		if p.peekToken.Type == token.EOF {
			// A lone scalar is a document in its own right.
			v := &Value{kind: Scalar, text: p.curToken.Literal}
			p.nextToken()
			return v, nil
		}
		return p.parseMembers(token.EOF)
	default:
		return nil, p.errorf(p.curToken, "expected a key, '{' or '[' at document start, got %s", describe(p.curToken))
	}
}

func (p *Parser) expectEOF() error {
	if !p.curTokenIs(token.EOF) {
		return p.errorf(p.curToken, "unexpected %s after document value", describe(p.curToken))
	}
	return nil
}

// The contract for all parse functions is that they are entered with
// p.curToken being the first token of the construct, and they return with
// p.curToken pointing to the token after the construct.

func (p *Parser) parseObject() (*Value, error) {
	open := p.curToken
	p.nextToken() // consume '{'
	obj, err := p.parseMembers(token.RBRACE)
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(token.RBRACE) {
		return nil, p.errorf(p.curToken, "unterminated object opened at line %d, column %d: expected '}', got %s",
			open.Line, open.Column, describe(p.curToken))
	}
	p.nextToken() // consume '}'
	return obj, nil
}

// parseMembers parses a run of key/value pairs up to the end token, which is
// left unconsumed. It implements both braced objects and the implicit
// top-level object (end = EOF).
func (p *Parser) parseMembers(end token.Type) (*Value, error) {
	obj := &Value{kind: Object}
	seen := make(map[string]bool)
	p.skipSeparators()
	for !p.curTokenIs(end) && !p.curTokenIs(token.EOF) {
		keyTok := p.curToken
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		p.skipSeparators()
		switch p.curToken.Type {
		case token.RBRACE, token.RBRACK, token.EOF:
			return nil, p.errorf(p.curToken, "key %q has no value, got %s", key, describe(p.curToken))
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if seen[key] {
			return nil, p.errorf(keyTok, "duplicate key %q in object", key)
		}
		seen[key] = true
		obj.pairs = append(obj.pairs, Pair{Key: key, Value: val})
		p.skipSeparators()
	}
	return obj, nil
}

func (p *Parser) parseKey() (string, error) {
	switch p.curToken.Type {
	case token.WORD, token.STRING:
		key := p.curToken.Literal
		p.nextToken()
		return key, nil
	case token.ILLEGAL:
		return "", p.lexError()
	default:
		return "", p.errorf(p.curToken, "expected object key, got %s", describe(p.curToken))
	}
}

func (p *Parser) parseValue() (*Value, error) {
	switch p.curToken.Type {
	case token.LBRACE:
		return p.parseObject()
	case token.LBRACK:
		return p.parseArray()
	case token.WORD, token.STRING:
		v := &Value{kind: Scalar, text: p.curToken.Literal}
		p.nextToken()
		return v, nil
	case token.ILLEGAL:
		return nil, p.lexError()
	default:
		return nil, p.errorf(p.curToken, "expected value, got %s", describe(p.curToken))
	}
}

func (p *Parser) parseArray() (*Value, error) {
	open := p.curToken
	arr := &Value{kind: Array, elems: []*Value{}}
	p.nextToken() // consume '['
	p.skipSeparators()
	for !p.curTokenIs(token.RBRACK) {
		if p.curTokenIs(token.EOF) {
			return nil, p.errorf(p.curToken, "unterminated array opened at line %d, column %d: expected ']', got end of input",
				open.Line, open.Column)
		}
		el, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr.elems = append(arr.elems, el)
		p.skipSeparators()
	}
	p.nextToken() // consume ']'
	return arr, nil
}

// skipSeparators discards ':' and ',' tokens. Both are insignificant
// punctuation present for JSON compatibility: they may appear or be omitted
// interchangeably at every member and element boundary.
func (p *Parser) skipSeparators() {
	for p.curTokenIs(token.COLON) || p.curTokenIs(token.COMMA) {
		p.nextToken()
	}
}

func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Line: tok.Line, Column: tok.Column}
}

func (p *Parser) lexError() error {
	return &LexError{Msg: p.curToken.Literal, Line: p.curToken.Line, Column: p.curToken.Column}
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.STRING:
		return fmt.Sprintf("%q", tok.Literal)
	default:
		return fmt.Sprintf("'%s'", tok.Literal)
	}
}
