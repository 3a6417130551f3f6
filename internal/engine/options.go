// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package engine

// DefaultMaxDepth bounds recursion depth for nested containers when the
// caller does not configure one explicitly, guarding against a pathological
// or adversarial input driving the recursive-descent parsers into a stack
// overflow.
const DefaultMaxDepth = 1024

// Options configures the repairing engine. It is the internal counterpart
// of the public jsonrepair.Options; the root package translates one into
// the other.
type Options struct {
	// Strict turns every repair into a fatal *StrictError. Comments are the
	// one exception: they are skipped as whitespace in strict mode too.
	Strict bool

	// MaxDepth bounds container nesting depth. Zero means DefaultMaxDepth.
	MaxDepth int

	// StreamStable, when set, makes the driver return only the first
	// top-level value it finds and stop, rather than continuing to sweep
	// for more.
	StreamStable bool

	// FancyQuotes maps an opening quote rune to the single rune that closes
	// it, taking precedence over the built-in "fancy quote" table. Only the
	// quote characters the string parser already recognizes open a string,
	// so an entry keyed by any other rune is never consulted.
	FancyQuotes map[rune]rune
}

func (o Options) maxDepth() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return DefaultMaxDepth
}
