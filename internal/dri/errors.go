package dri

import "errors"

// Construction failures fall into three buckets. All of them are hard,
// synchronous errors: a partial or guessed identifier would corrupt
// cross-referencing downstream, so nothing is recovered locally. The single
// soft spot is the error-type sentinel in FromReceiverType, which is expected,
// recoverable input rather than a bug signal.
var (
	// ErrUnresolvableLocality: the symbol (or its containment chain) has no
	// stable name and no anchor could be found.
	ErrUnresolvableLocality = errors.New("symbol has no stable name")

	// ErrUnsupportedCategory: the symbol or type shape falls outside the
	// exhaustively handled set.
	ErrUnsupportedCategory = errors.New("unsupported symbol category")

	// ErrMalformedInput: a structural precondition on the symbol graph or on
	// an identifier was violated.
	ErrMalformedInput = errors.New("malformed symbol graph input")
)
