package gon

import (
	"encoding"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/iancoleman/strcase"
)

// Unmarshaler is the interface implemented by types that can decode a GON
// subtree themselves. UnmarshalGON is called with the parsed Value for the
// node being decoded; the value must not be mutated or retained.
type Unmarshaler interface {
	UnmarshalGON(v *Value) error
}

// Decoder reads and decodes a GON document from an input stream.
type Decoder struct {
	r    io.Reader
	opts []DecodeOption
}

const defaultMaxDepth = 1000

// NewDecoder returns a new decoder that reads from r.
//
// Functional options can be provided to configure the decoding process, such
// as setting a maximum decoding depth with the MaxDepth option.
func NewDecoder(r io.Reader, opts ...DecodeOption) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads a GON document from its input and stores it in the value
// pointed to by out. If out is nil or not a pointer, Decode returns an error.
//
// Objects decode into structs (honoring `gon:"name"` field tags, with
// case-insensitive and snake_case fallbacks) and into maps with string keys.
// Arrays decode into slices and fixed-size arrays. Scalars decode into
// strings, booleans, integers, and floats using the same text-parsing rules
// as As; into an any target a scalar always decodes as a string. The bare
// word null zeroes pointer, interface, map, and slice targets.
//
// Note: this is a non-streaming implementation. It reads the entire reader
// into memory before parsing.
func (d *Decoder) Decode(out any) error {
	if d.r == nil {
		return fmt.Errorf("gon: Decode(nil reader)")
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}
	root, err := Parse(data)
	if err != nil {
		return err
	}
	return decodeRoot(root, out, d.opts)
}

func decodeRoot(root *Value, out any, opts []DecodeOption) error {
	d := &decoder{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return err
		}
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("gon: Unmarshal(non-pointer %T or nil)", out)
	}
	return d.decodeValue(root, rv.Elem())
}

type decoder struct {
	maxDepth int
	depth    int
}

func (d *decoder) decodeValue(val *Value, rv reflect.Value) error {
	d.depth++
	if d.depth > d.maxDepth {
		return fmt.Errorf("gon: reached max recursion depth")
	}
	defer func() { d.depth-- }()

	if isNull(val) {
		switch rv.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
	}

	// Attempt to use a custom unmarshaler if available.
	handled, err := d.tryCustomUnmarshal(val, rv)
	if err != nil {
		return err
	}
	if handled {
		return nil
	}

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	if rv.Kind() == reflect.Interface {
		return d.decodeInterface(val, rv)
	}
	if !rv.CanSet() {
		return fmt.Errorf("gon: cannot set value of type %s", rv.Type())
	}

	switch val.Kind() {
	case Scalar:
		return decodeScalar(val, rv)
	case Array:
		switch rv.Kind() {
		case reflect.Slice:
			return d.decodeSlice(val, rv)
		case reflect.Array:
			return d.decodeArray(val, rv)
		default:
			return fmt.Errorf("gon: cannot unmarshal array into Go value of type %s", rv.Type())
		}
	case Object:
		switch rv.Kind() {
		case reflect.Struct:
			return d.decodeStruct(val, rv)
		case reflect.Map:
			return d.decodeMap(val, rv)
		default:
			return fmt.Errorf("gon: cannot unmarshal object into Go value of type %s", rv.Type())
		}
	}
	return fmt.Errorf("gon: unhandled value kind %s", val.Kind())
}

// isNull reports whether val is the bare scalar null. GON has no dedicated
// null literal; the spelling follows JSON.
func isNull(val *Value) bool {
	return val.Kind() == Scalar && val.Text() == "null"
}

// tryCustomUnmarshal attempts to use a custom unmarshaler (gon.Unmarshaler or
// encoding.TextUnmarshaler) on the given reflect.Value. It returns true if a
// custom unmarshaler was found and used, in which case the caller should not
// proceed with default decoding.
func (d *decoder) tryCustomUnmarshal(val *Value, rv reflect.Value) (bool, error) {
	if !rv.CanAddr() {
		return false, nil
	}
	pv := rv.Addr()
	if !pv.CanInterface() {
		return false, nil
	}

	if u, ok := pv.Interface().(Unmarshaler); ok {
		if err := u.UnmarshalGON(val); err != nil {
			return true, &UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	}

	if u, ok := pv.Interface().(encoding.TextUnmarshaler); ok {
		if val.Kind() != Scalar {
			// TextUnmarshaler can only be used on scalar values.
			return false, nil
		}
		if err := u.UnmarshalText([]byte(val.Text())); err != nil {
			return true, &UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	}

	return false, nil
}

func decodeScalar(val *Value, rv reflect.Value) error {
	text := val.Text()
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(text)
		return nil
	case reflect.Bool:
		var b bool
		if err := parseScalar(text, &b); err != nil {
			return err
		}
		rv.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return conversionError(rv.Type(), text, err)
		}
		if rv.OverflowInt(n) {
			return conversionError(rv.Type(), text, fmt.Errorf("value overflows %s", rv.Type()))
		}
		rv.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return conversionError(rv.Type(), text, err)
		}
		if rv.OverflowUint(n) {
			return conversionError(rv.Type(), text, fmt.Errorf("value overflows %s", rv.Type()))
		}
		rv.SetUint(n)
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(text, rv.Type().Bits())
		if err != nil {
			return conversionError(rv.Type(), text, err)
		}
		rv.SetFloat(f)
		return nil
	default:
		return fmt.Errorf("gon: cannot unmarshal scalar into Go value of type %s", rv.Type())
	}
}

func conversionError(t reflect.Type, text string, err error) error {
	if numErr, ok := err.(*strconv.NumError); ok {
		err = numErr.Err
	}
	return &ConversionError{Type: t.String(), Text: text, Err: err}
}

func (d *decoder) decodeSlice(val *Value, rv reflect.Value) error {
	elems := val.Values()
	newSlice := reflect.MakeSlice(rv.Type(), len(elems), len(elems))
	for i, el := range elems {
		if err := d.decodeValue(el, newSlice.Index(i)); err != nil {
			return err
		}
	}
	rv.Set(newSlice)
	return nil
}

func (d *decoder) decodeArray(val *Value, rv reflect.Value) error {
	elems := val.Values()
	if rv.Len() != len(elems) {
		return fmt.Errorf("gon: cannot unmarshal array of length %d into Go array of length %d", len(elems), rv.Len())
	}
	for i, el := range elems {
		if err := d.decodeValue(el, rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) decodeMap(val *Value, rv reflect.Value) error {
	mapType := rv.Type()
	if mapType.Key().Kind() != reflect.String {
		return fmt.Errorf("gon: cannot unmarshal object into map with non-string key type %s", mapType.Key())
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(mapType))
	} else {
		for _, k := range rv.MapKeys() {
			rv.SetMapIndex(k, reflect.Value{}) // The zero Value deletes the key
		}
	}
	elemType := mapType.Elem()
	for _, pair := range val.Pairs() {
		newVal := reflect.New(elemType).Elem()
		if err := d.decodeValue(pair.Value, newVal); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(pair.Key).Convert(mapType.Key()), newVal)
	}
	return nil
}

func (d *decoder) decodeStruct(val *Value, rv reflect.Value) error {
	fields := cachedFields(rv.Type())
	for _, pair := range val.Pairs() {
		if target := findField(fields, pair.Key); target != nil {
			fieldVal := fieldByIndex(rv, target.idx)
			if fieldVal.IsValid() && fieldVal.CanSet() {
				if err := d.decodeValue(pair.Value, fieldVal); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (d *decoder) decodeInterface(val *Value, rv reflect.Value) error {
	if rv.NumMethod() != 0 {
		return fmt.Errorf("gon: cannot unmarshal into non-empty interface %s", rv.Type())
	}
	var concreteVal reflect.Value
	switch val.Kind() {
	case Scalar:
		// Scalar typing is deferred; into an untyped target the text is the
		// only faithful representation.
		var s string
		concreteVal = reflect.ValueOf(&s).Elem()
	case Array:
		var a []any
		concreteVal = reflect.ValueOf(&a).Elem()
	case Object:
		var o map[string]any
		concreteVal = reflect.ValueOf(&o).Elem()
	}
	if err := d.decodeValue(val, concreteVal); err != nil {
		return err
	}
	rv.Set(concreteVal)
	return nil
}

// fieldByIndex walks the index path to a possibly promoted field, allocating
// nil embedded pointers along the way. It returns an invalid Value when an
// intermediate pointer cannot be allocated.
func fieldByIndex(rv reflect.Value, idx []int) reflect.Value {
	for n, i := range idx {
		if n > 0 {
			if rv.Kind() == reflect.Pointer {
				if rv.IsNil() {
					if !rv.CanSet() {
						return reflect.Value{}
					}
					rv.Set(reflect.New(rv.Type().Elem()))
				}
				rv = rv.Elem()
			}
		}
		rv = rv.Field(i)
	}
	return rv
}

// A field represents a single field in a struct.
type field struct {
	idx []int
}

// findField finds the target field in a struct's cached fields. It attempts a
// case-sensitive match first, then the case-insensitive and snake_case
// aliases pre-calculated in the cache.
func findField(fields map[string]field, key string) *field {
	if f, ok := fields[key]; ok {
		return &f
	}
	if f, ok := fields[strings.ToLower(key)]; ok {
		return &f
	}
	return nil
}

// fieldCache caches a map of struct field names to their properties.
var fieldCache sync.Map // map[reflect.Type]map[string]field

// cachedFields returns a map of field names to field properties for the given
// type. The result is cached to avoid repeated reflection work.
func cachedFields(t reflect.Type) map[string]field {
	if f, ok := fieldCache.Load(t); ok {
		if fields, ok := f.(map[string]field); ok {
			return fields
		}
	}

	fields := make(map[string]field)
	addAlias := func(name string, f field) {
		// Aliases never overwrite an existing case-sensitive match.
		if _, ok := fields[name]; !ok {
			fields[name] = f
		}
	}
	var walk func(t reflect.Type, idx []int)
	walk = func(t reflect.Type, idx []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if sf.Anonymous {
				ft := sf.Type
				if ft.Kind() == reflect.Pointer {
					ft = ft.Elem()
				}
				if ft.Kind() == reflect.Struct {
					// Recurse into embedded structs.
					walk(ft, append(idx, i))
					continue
				}
				// Embedded non-struct types have no fields to promote;
				// treat them as ordinary named fields.
			}
			if !sf.IsExported() {
				continue
			}

			tag := sf.Tag.Get("gon")
			if tag == "-" {
				continue
			}

			f := field{idx: append(append([]int(nil), idx...), i)}
			tagName := strings.Split(tag, ",")[0]

			if tagName != "" {
				fields[tagName] = f
				addAlias(strings.ToLower(tagName), f)
			}
			fields[sf.Name] = f
			addAlias(strings.ToLower(sf.Name), f)
			// GON documents conventionally use snake_case keys; map them onto
			// Go's CamelCase field names without requiring a tag.
			addAlias(strcase.ToSnake(sf.Name), f)
		}
	}
	walk(t, nil)

	fieldCache.Store(t, fields)
	return fields
}
