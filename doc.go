/*
Package gon parses GON (Glaiel Object Notation), a minimal JSON-inspired
structured-data format, into a navigable value tree. Any well-formed JSON
document is also valid GON and parses into an equivalent tree.

GON drops most of JSON's punctuation: keys need no quotes, the ':' after a key
and the ',' between entries are optional, and the outermost braces may be
omitted. A typical document looks like this:

	big_factory {
		location "New York City"
		whirly_widgets 8346
	}
	weekdays [Monday Tuesday Wednesday]

The package offers two workflows:

1. Tree navigation

Parse returns the root Value of the document. Values are navigated with Get
(object keys) and Index (array ordinals), and leaf text is converted to a
concrete type on access with the generic As:

	root, err := gon.Parse(data)
	if err != nil {
		// handle error
	}
	widgets, err := root.Get("big_factory")
	if err != nil {
		// handle error
	}
	n, err := gon.As[int](widgets.MustGet("whirly_widgets"))

Scalars store only the source text; As parses that text as the requested type
at the call site, so the same field can be read as an int in one place and a
string in another.

2. Decoding into Go values

For the common task of converting a document into Go structs and maps, the
Unmarshal function and Decoder type provide an API familiar from
encoding/json:

	type Factory struct {
		Location      string `gon:"location"`
		WhirlyWidgets int
	}

	var factories map[string]Factory
	if err := gon.Unmarshal(data, &factories); err != nil {
		// handle error
	}

Struct fields match document keys by `gon:"name"` tag, by name, or by the
snake_case spelling of the name.

Syntax errors report the line and column of the offending token. Writing GON
back out is not supported; the tree is read-only once parsed.
*/
package gon
