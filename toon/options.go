package toon

import "math"

// FoldMode controls encoder key folding.
type FoldMode uint8

const (
	// FoldOff never folds nested objects into dotted keys.
	FoldOff FoldMode = iota
	// FoldSafe folds chains of single-field objects into dotted keys when
	// every segment is a plain identifier and no sibling key collides.
	FoldSafe
)

// ExpandMode controls decoder dotted-path expansion.
type ExpandMode uint8

const (
	// ExpandOff treats dotted keys as literal keys.
	ExpandOff ExpandMode = iota
	// ExpandSafe expands unquoted dotted keys into nested objects.
	ExpandSafe
)

// Options configures both directions of the codec. The zero value is not
// useful; start from DefaultOptions. Options are copied at call entry and
// never mutated, so one Options value may serve concurrent codec calls.
type Options struct {
	// IndentSize is the number of spaces per depth level (default 2).
	IndentSize int

	// Delimiter is the document delimiter separating cells in inline and
	// tabular arrays: ',' (default), '\t', or '|'.
	Delimiter byte

	// Strict enables all decoder validations: indentation granularity,
	// declared counts, row widths, list prefixes, escapes (default true).
	Strict bool

	// KeyFolding lets the encoder collapse single-field object chains
	// into dotted keys (default FoldOff).
	KeyFolding FoldMode

	// FlattenDepth caps the number of dotted segments in a folded key.
	// Zero or negative means unlimited.
	FlattenDepth int

	// ExpandPaths lets the decoder expand dotted keys into nested
	// objects (default ExpandOff).
	ExpandPaths ExpandMode
}

// DefaultOptions returns the format defaults.
func DefaultOptions() Options {
	return Options{
		IndentSize:   2,
		Delimiter:    ',',
		Strict:       true,
		KeyFolding:   FoldOff,
		FlattenDepth: 0,
		ExpandPaths:  ExpandOff,
	}
}

// normalized returns a copy with out-of-domain fields forced back to the
// defaults. Codec entry points call this once so the rest of the code can
// trust every field.
func (o Options) normalized() Options {
	if o.IndentSize < 1 {
		o.IndentSize = 2
	}
	switch o.Delimiter {
	case ',', '\t', '|':
	default:
		o.Delimiter = ','
	}
	if o.FlattenDepth < 1 {
		o.FlattenDepth = math.MaxInt
	}
	return o
}
