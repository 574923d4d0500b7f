package gon

import "github.com/gon-format/go-gon/lexer"

// Parse parses a complete GON document and returns the root of its Value
// tree.
//
// On malformed input the returned error is a *LexError or *ParseError
// carrying the line and column of the offending token.
func Parse(data []byte) (*Value, error) {
	p := NewParser(lexer.New(data))
	return p.ParseDocument()
}

// ParseString is like Parse but takes its input as a string.
func ParseString(s string) (*Value, error) {
	return Parse([]byte(s))
}

// Unmarshal parses the GON-encoded data and stores the result in the value
// pointed to by v.
//
// See the documentation for Decoder.Decode for details about the conversion
// of GON into a Go value.
func Unmarshal(data []byte, v any, opts ...DecodeOption) error {
	root, err := Parse(data)
	if err != nil {
		return err
	}
	return decodeRoot(root, v, opts)
}
