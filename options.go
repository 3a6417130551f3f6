// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair

// Options configures a repair call. The zero value is the default
// behavior: a conformant decode is attempted first, repairs are applied
// silently when it fails, multiple top-level values are collected into an
// array, and serialized output is compact, without escaping non-ASCII
// runes.
type Options struct {
	// SkipInitialValidation disables the fast path that first tries a
	// conformant JSON decode of the whole input. Set it when the caller
	// already knows the input is malformed, to avoid the wasted attempt.
	SkipInitialValidation bool

	// Strict turns every repair into a fatal *StrictError instead of
	// applying it. Comments are still skipped as whitespace.
	Strict bool

	// StreamStable returns only the first top-level value found, discarding
	// anything after it, so repeated calls on a growing input converge.
	StreamStable bool

	// EnsureASCII escapes every non-ASCII rune in serialized output as a
	// \uXXXX sequence.
	EnsureASCII bool

	// Indent is the indentation width, in spaces, used when serializing the
	// result to JSON text. Zero means compact output with no added
	// whitespace.
	Indent int

	// Logging requests that the repair log be made available to the
	// caller. Repair and RepairToValue ignore it and always discard the
	// log; use RepairWithLog / RepairToValueWithLog to retrieve it
	// regardless of this flag. Nothing in this module reads it; the CLI
	// and the web demo call RepairWithLog directly.
	Logging bool

	// FancyQuotes maps an opening quote character to the single character
	// that closes it, taking precedence over the built-in table. Only quote
	// characters the parser already recognizes open a string; entries for
	// other runes are never consulted.
	FancyQuotes map[rune]rune
}
