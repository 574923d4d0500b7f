package gon_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	gon "github.com/gon-format/go-gon"
)

func FuzzParse(f *testing.F) {
	// Seed the corpus with the document shapes the grammar distinguishes.
	f.Add([]byte("{}"))
	f.Add([]byte("[]"))
	f.Add([]byte(`"a simple string"`))
	f.Add([]byte("12345"))
	f.Add([]byte("key value"))
	f.Add([]byte("a { b [1 2] }"))
	f.Add([]byte(`{"k": [true, null], "s": "x\ny"}`))
	f.Add([]byte("# comment\nkey \"quoted \\u0041\""))

	f.Fuzz(func(t *testing.T, data []byte) {
		// Malformed input must come back as an error, never a panic, and the
		// error must carry a usable position.
		root, err := gon.Parse(data)
		if err != nil {
			switch e := err.(type) {
			case *gon.LexError:
				require.Positive(t, e.Line)
				require.Positive(t, e.Column)
			case *gon.ParseError:
				require.Positive(t, e.Line)
				require.Positive(t, e.Column)
			default:
				t.Fatalf("Parse returned unexpected error type %T: %v", err, err)
			}
			return
		}

		// A successful parse yields a tree; decoding that tree into a
		// generic value must not fail either, except for the decoder's own
		// recursion limit on very deep documents.
		require.NotNil(t, root)
		var v any
		if err := gon.Unmarshal(data, &v); err != nil {
			require.ErrorContains(t, err, "max recursion depth")
		}
	})
}
