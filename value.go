package gon

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	Object Kind = iota
	Array
	Scalar
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case Object:
		return "object"
	case Array:
		return "array"
	case Scalar:
		return "scalar"
	}
	return "unknown"
}

// A Pair is a single key/value entry in an object.
type Pair struct {
	Key   string
	Value *Value
}

// A Value is one node of a parsed GON tree: an object, an array, or a scalar.
//
// Objects keep their pairs in source order. Scalars store the literal text as
// scanned (with quotes stripped and escapes resolved for quoted strings);
// interpreting that text as a number or boolean is deferred to As.
//
// A Value is read-only once the parser returns it.
type Value struct {
	kind  Kind
	pairs []Pair
	elems []*Value
	text  string
}

// Kind reports which variant the value holds.
func (v *Value) Kind() Kind { return v.kind }

// Len returns the number of pairs in an object or elements in an array.
// It is zero for scalars.
func (v *Value) Len() int {
	switch v.kind {
	case Object:
		return len(v.pairs)
	case Array:
		return len(v.elems)
	}
	return 0
}

// Keys returns an object's keys in source order. It is nil for other kinds.
func (v *Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	keys := make([]string, len(v.pairs))
	for i, p := range v.pairs {
		keys[i] = p.Key
	}
	return keys
}

// Pairs returns an object's key/value pairs in source order. It is nil for
// other kinds.
func (v *Value) Pairs() []Pair {
	if v.kind != Object {
		return nil
	}
	return v.pairs
}

// Values returns an array's elements in source order. It is nil for other
// kinds.
func (v *Value) Values() []*Value {
	if v.kind != Array {
		return nil
	}
	return v.elems
}

// Get returns the value of the first pair with the given key.
// It returns a *LookupError if the value is not an object or the key is not
// present.
func (v *Value) Get(key string) (*Value, error) {
	if v.kind != Object {
		return nil, &LookupError{Key: key, Index: -1, Msg: fmt.Sprintf("cannot look up key %q in %s value", key, v.kind)}
	}
	for _, p := range v.pairs {
		if p.Key == key {
			return p.Value, nil
		}
	}
	return nil, &LookupError{Key: key, Index: -1, Msg: fmt.Sprintf("key %q not found in object", key)}
}

// MustGet is like Get but panics with the *LookupError on failure. It is a
// convenience for documents whose shape is known in advance.
func (v *Value) MustGet(key string) *Value {
	child, err := v.Get(key)
	if err != nil {
		panic(err)
	}
	return child
}

// Index returns the i'th element of an array.
// It returns a *LookupError if the value is not an array or i is out of
// range.
func (v *Value) Index(i int) (*Value, error) {
	if v.kind != Array {
		return nil, &LookupError{Index: i, Msg: fmt.Sprintf("cannot index %s value with ordinal %d", v.kind, i)}
	}
	if i < 0 || i >= len(v.elems) {
		return nil, &LookupError{Index: i, Msg: fmt.Sprintf("index %d out of range for array of length %d", i, len(v.elems))}
	}
	return v.elems[i], nil
}

// MustIndex is like Index but panics with the *LookupError on failure.
func (v *Value) MustIndex(i int) *Value {
	child, err := v.Index(i)
	if err != nil {
		panic(err)
	}
	return child
}

// Text returns a scalar's stored text. It is empty for objects and arrays.
func (v *Value) Text() string {
	if v.kind != Scalar {
		return ""
	}
	return v.text
}

// Str returns a scalar's text, or a *ConversionError for objects and arrays.
func (v *Value) Str() (string, error) {
	return As[string](v)
}

// String returns a compact single-line rendering of the tree for debugging.
// It is not a serialization format.
func (v *Value) String() string {
	var out bytes.Buffer
	v.debugString(&out)
	return out.String()
}

func (v *Value) debugString(out *bytes.Buffer) {
	switch v.kind {
	case Object:
		out.WriteString("{")
		for i, p := range v.pairs {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString(p.Key)
			out.WriteString(": ")
			p.Value.debugString(out)
		}
		out.WriteString("}")
	case Array:
		out.WriteString("[")
		for i, e := range v.elems {
			if i > 0 {
				out.WriteString(", ")
			}
			e.debugString(out)
		}
		out.WriteString("]")
	case Scalar:
		if strings.ContainsAny(v.text, " \t\r\n{}[],:\"#") || v.text == "" {
			out.WriteString(strconv.Quote(v.text))
		} else {
			out.WriteString(v.text)
		}
	}
}

// As parses a scalar's text as type T at the call site. Supported types are
// string (returned as stored), bool (exactly "true" or "false"), the signed
// and unsigned integer types (base 10), and the float types.
//
// It returns a *ConversionError when the text does not parse as T, or when v
// is not a scalar.
func As[T any](v *Value) (T, error) {
	var out T
	if v.kind != Scalar {
		return out, &ConversionError{
			Type: fmt.Sprintf("%T", out),
			Text: v.String(),
			Err:  fmt.Errorf("value is %s %s, not a scalar", article(v.kind), v.kind),
		}
	}
	if err := parseScalar(v.text, &out); err != nil {
		return out, err
	}
	return out, nil
}

// MustAs is like As but panics with the *ConversionError on failure.
func MustAs[T any](v *Value) T {
	out, err := As[T](v)
	if err != nil {
		panic(err)
	}
	return out
}

// parseScalar converts scalar text into the concrete type behind out, which
// must be a pointer to one of the supported primitive types.
func parseScalar(text string, out any) error {
	var err error
	switch p := out.(type) {
	case *string:
		*p = text
		return nil
	case *bool:
		// Exactly "true" or "false"; no case folding, no 0/1.
		switch text {
		case "true":
			*p = true
			return nil
		case "false":
			*p = false
			return nil
		}
		err = errors.New(`must be "true" or "false"`)
	case *int:
		var n int64
		if n, err = strconv.ParseInt(text, 10, strconv.IntSize); err == nil {
			*p = int(n)
			return nil
		}
	case *int8:
		var n int64
		if n, err = strconv.ParseInt(text, 10, 8); err == nil {
			*p = int8(n)
			return nil
		}
	case *int16:
		var n int64
		if n, err = strconv.ParseInt(text, 10, 16); err == nil {
			*p = int16(n)
			return nil
		}
	case *int32:
		var n int64
		if n, err = strconv.ParseInt(text, 10, 32); err == nil {
			*p = int32(n)
			return nil
		}
	case *int64:
		var n int64
		if n, err = strconv.ParseInt(text, 10, 64); err == nil {
			*p = n
			return nil
		}
	case *uint:
		var n uint64
		if n, err = strconv.ParseUint(text, 10, strconv.IntSize); err == nil {
			*p = uint(n)
			return nil
		}
	case *uint8:
		var n uint64
		if n, err = strconv.ParseUint(text, 10, 8); err == nil {
			*p = uint8(n)
			return nil
		}
	case *uint16:
		var n uint64
		if n, err = strconv.ParseUint(text, 10, 16); err == nil {
			*p = uint16(n)
			return nil
		}
	case *uint32:
		var n uint64
		if n, err = strconv.ParseUint(text, 10, 32); err == nil {
			*p = uint32(n)
			return nil
		}
	case *uint64:
		var n uint64
		if n, err = strconv.ParseUint(text, 10, 64); err == nil {
			*p = n
			return nil
		}
	case *float32:
		var f float64
		if f, err = strconv.ParseFloat(text, 32); err == nil {
			*p = float32(f)
			return nil
		}
	case *float64:
		var f float64
		if f, err = strconv.ParseFloat(text, 64); err == nil {
			*p = f
			return nil
		}
	default:
		return &ConversionError{
			Type: fmt.Sprintf("%T", out)[1:], // strip the pointer star
			Text: text,
			Err:  errors.New("unsupported target type"),
		}
	}
	if numErr, ok := err.(*strconv.NumError); ok {
		err = numErr.Err
	}
	return &ConversionError{
		Type: fmt.Sprintf("%T", out)[1:],
		Text: text,
		Err:  err,
	}
}

func article(k Kind) string {
	if k == Object {
		return "an"
	}
	return "a"
}
