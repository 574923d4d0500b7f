package gon

import (
	"fmt"
	"reflect"
)

// A LexError reports a malformed token, such as an unterminated string or an
// invalid escape sequence. It includes the position of the offending token.
type LexError struct {
	Msg    string
	Line   int
	Column int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("gon: lexing error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// A ParseError reports a grammar violation, such as an unexpected token or an
// unterminated object or array. It includes the position of the offending
// token.
type ParseError struct {
	Msg    string
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gon: parsing error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// A LookupError reports a failed navigation step on a Value: a key that is
// not present, an index out of range, or indexing a node of the wrong kind.
type LookupError struct {
	Key   string // the key that was looked up, for key lookups
	Index int    // the index that was looked up, -1 for key lookups
	Msg   string
}

func (e *LookupError) Error() string {
	return "gon: " + e.Msg
}

// A ConversionError reports a scalar whose text does not parse as the
// requested type, or a typed extraction attempted on a non-scalar node.
type ConversionError struct {
	Type string // name of the requested Go type
	Text string // the scalar text that failed to convert
	Err  error  // underlying parse error, if any
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gon: cannot convert %q to %s: %s", e.Text, e.Type, e.Err)
	}
	return fmt.Sprintf("gon: cannot convert %q to %s", e.Text, e.Type)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// An UnmarshalerError represents an error from calling an UnmarshalGON or
// UnmarshalText method.
type UnmarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *UnmarshalerError) Error() string {
	return "gon: error calling custom unmarshaler for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *UnmarshalerError) Unwrap() error { return e.Err }
