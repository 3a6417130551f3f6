// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsonrepair decodes JSON that purports to be well-formed but
// frequently isn't, the way large language models tend to emit it:
// unbalanced brackets, unterminated strings, missing quotes, stray prose,
// trailing commas, missing separators, comments, concatenated top-level
// values, truncated numbers, and mixed or fancy quote characters.
//
// # Decoding
//
// RepairToValue parses input into a value.Value tree, applying repairs as
// needed. Repair does the same and serializes the result back to JSON
// text:
//
//	v, err := jsonrepair.RepairToValue(input, jsonrepair.Options{})
//	if err != nil {
//	    log.Fatalf("Repair failed: %v", err)
//	}
//
// When the input is already valid JSON, a fast path decodes it with the
// standard library and the repair engine never runs, so valid input is
// returned bit-for-bit equivalent to what encoding/json would have
// produced.
//
// # Strict mode
//
// With Options.Strict set, the first anomaly that would otherwise have
// been silently repaired instead raises a *StrictError carrying a byte
// offset and a reason. Comments are the exception: they are skipped as
// whitespace in strict mode too.
//
// # Logging
//
// RepairToValueWithLog and RepairWithLog additionally return the sequence
// of repairs applied, each naming the heuristic that fired and the input
// surrounding it, for diagnostic display.
package jsonrepair
