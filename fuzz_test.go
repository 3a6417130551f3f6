// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/cflynn/jsonrepair"
)

// corruptDropBracket drops the first closing brace or bracket found, the
// "missing delimiter" malformation LLM output produces most often.
func corruptDropBracket(s string) string {
	for i, r := range s {
		if r == '}' || r == ']' {
			return s[:i] + s[i+1:]
		}
	}
	return s
}

// corruptQuoteStyle replaces every double quote with a single quote.
func corruptQuoteStyle(s string) string {
	return strings.ReplaceAll(s, `"`, `'`)
}

// corruptProseSpan puts a prose sentence before the document and another
// after it, simulating an LLM wrapping its answer in conversational text.
func corruptProseSpan(s string) string {
	return "Sure, here's the JSON you asked for:\n" + s + "\nLet me know if you need anything else!"
}

// corruptPartialToken appends a truncated token after the document, as if
// generation stopped mid-stream.
func corruptPartialToken(s string) string {
	return s + `, "trunc`
}

// FuzzCorruptionOperators applies one of a handful of JSON-mangling
// operators to a seed corpus of well-formed JSON and checks that the
// result still repairs to valid, idempotent output.
func FuzzCorruptionOperators(f *testing.F) {
	seeds := []string{
		`{"a": 1, "b": [2, 3], "c": {"d": true, "e": null}}`,
		`[1, 2, 3]`,
		`{"name": "ada", "tags": ["x", "y"]}`,
		`{}`,
		`[]`,
		`{"nested": {"deeper": {"value": 42}}}`,
	}
	for _, s := range seeds {
		f.Add(s, 0)
	}

	f.Fuzz(func(t *testing.T, seed string, op int) {
		var probe any
		if json.Unmarshal([]byte(seed), &probe) != nil {
			t.Skip("seed is not valid JSON")
		}

		var corrupted string
		switch ((op % 4) + 4) % 4 {
		case 0:
			corrupted = corruptDropBracket(seed)
		case 1:
			corrupted = corruptQuoteStyle(seed)
		case 2:
			corrupted = corruptProseSpan(seed)
		case 3:
			corrupted = corruptPartialToken(seed)
		}

		out, err := jsonrepair.Repair(corrupted, jsonrepair.Options{})
		if err != nil {
			// Strict-mode-worthy garbage is allowed to fail; non-strict
			// mode only fails on genuinely empty input.
			if err == jsonrepair.ErrEmptyInput {
				t.Skip("corrupted input left nothing parseable")
			}
			t.Fatalf("Repair(%q) failed: %v", corrupted, err)
		}

		var v any
		if err := json.Unmarshal([]byte(out), &v); err != nil {
			t.Fatalf("Repair(%q) = %q, not valid JSON: %v", corrupted, out, err)
		}

		again, err := jsonrepair.Repair(out, jsonrepair.Options{})
		if err != nil {
			t.Fatalf("Repair(repair(%q)) failed: %v", corrupted, err)
		}
		if again != out {
			t.Fatalf("Repair not idempotent: repair(x)=%q, repair(repair(x))=%q", out, again)
		}
	})
}
