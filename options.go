package gon

import "fmt"

// A DecodeOption configures a Decoder.
type DecodeOption func(*decoder) error

// MaxDepth returns a DecodeOption that sets the maximum recursion depth for
// the decoder. This helps prevent stack exhaustion when decoding highly
// nested documents into deeply recursive Go types.
//
// The depth n must be a positive integer.
func MaxDepth(n int) DecodeOption {
	return func(d *decoder) error {
		if n <= 0 {
			return fmt.Errorf("gon: max depth must be a positive integer")
		}
		d.maxDepth = n
		return nil
	}
}
