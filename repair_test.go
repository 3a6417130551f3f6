// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cflynn/jsonrepair"
)

// TestScenarios covers the concrete end-to-end cases: a well-formed
// document that should take the fast path unchanged, and a handful of
// malformations the heuristic engine must repair.
func TestScenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  jsonrepair.Options
		want  string
	}{
		{
			name:  "well formed takes fast path",
			input: `{"a":1,"b":[2,3]}`,
			want:  `{"a":1,"b":[2,3]}`,
		},
		{
			name:  "missing closing brace",
			input: `{"a": 1, "b": 2`,
			want:  `{"a":1,"b":2}`,
		},
		{
			name:  "single quotes and trailing comma",
			input: `{'a': "x", "b": 'y',}`,
			want:  `{"a":"x","b":"y"}`,
		},
		{
			name:  "prose stripped front and back",
			input: `Sure, here is the JSON you asked for: {"k": "v"} hope that helps!`,
			want:  `{"k":"v"}`,
		},
		{
			name:  "code fence wrapped array",
			input: "```json\n[1, 2, 3]\n```",
			want:  `[1,2,3]`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := jsonrepair.Repair(test.input, test.opts)
			require.NoError(t, err)
			assert.JSONEq(t, test.want, got)
		})
	}
}

func TestStreamStable(t *testing.T) {
	prefix := `{"a": 1}`
	grown := prefix + `{"b": 2}`

	base, err := jsonrepair.Repair(prefix, jsonrepair.Options{StreamStable: true})
	require.NoError(t, err)

	withExtra, err := jsonrepair.Repair(grown, jsonrepair.Options{StreamStable: true})
	require.NoError(t, err)

	assert.JSONEq(t, base, withExtra)
}

// TestValidity checks that repaired output is itself accepted by a
// conformant decoder, for every malformed input exercised in this file.
func TestValidity(t *testing.T) {
	inputs := []string{
		`{"a": 1, "b": 2`,
		`{'a': "x", "b": 'y',}`,
		`[1, 2, 3,]`,
		`Sure! {"k": "v"} thanks`,
		"```json\n[1, 2, 3]\n```",
	}
	for _, in := range inputs {
		out, err := jsonrepair.Repair(in, jsonrepair.Options{})
		require.NoError(t, err)
		var v any
		assert.NoError(t, json.Unmarshal([]byte(out), &v), "repaired output %q must be valid JSON", out)
	}
}

// TestIdentityOnValidInput checks that a well-formed document is returned
// byte-for-byte equivalent (modulo whitespace) to what a conformant
// decoder would itself produce.
func TestIdentityOnValidInput(t *testing.T) {
	inputs := []string{
		`{"a":1,"b":2}`,
		`[1,2,3]`,
		`"hello"`,
		`42`,
		`true`,
		`null`,
	}
	for _, in := range inputs {
		out, err := jsonrepair.Repair(in, jsonrepair.Options{})
		require.NoError(t, err)
		assert.JSONEq(t, in, out)
	}
}

// TestIdempotence checks that re-running Repair on its own output is a
// no-op.
func TestIdempotence(t *testing.T) {
	inputs := []string{
		`{"a": 1, "b": 2`,
		`{'a': "x", "b": 'y',}`,
		`[1, 2, 3,]`,
	}
	for _, in := range inputs {
		once, err := jsonrepair.Repair(in, jsonrepair.Options{})
		require.NoError(t, err)
		twice, err := jsonrepair.Repair(once, jsonrepair.Options{})
		require.NoError(t, err)
		assert.JSONEq(t, once, twice)
	}
}

// TestStrictModeRejectsRepairs checks that every input which requires a
// repair in non-strict mode instead raises a *StrictError in strict mode.
func TestStrictModeRejectsRepairs(t *testing.T) {
	inputs := []string{
		`{"a": 1, "b": 2`,
		`{'a': 1}`,
		`[1, 2,]`,
	}
	for _, in := range inputs {
		_, err := jsonrepair.Repair(in, jsonrepair.Options{Strict: true})
		assert.Error(t, err, "Repair(%q) in strict mode should fail", in)
		var se *jsonrepair.StrictError
		assert.ErrorAs(t, err, &se)
	}
}

// TestNoRepairInStrictFastPath checks that well-formed input never raises
// in strict mode, since the fast path never logs a repair.
func TestNoRepairInStrictFastPath(t *testing.T) {
	out, err := jsonrepair.Repair(`{"a":1}`, jsonrepair.Options{Strict: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, out)
}

func TestEmptyInput(t *testing.T) {
	_, err := jsonrepair.Repair("   ", jsonrepair.Options{})
	assert.ErrorIs(t, err, jsonrepair.ErrEmptyInput)
}

func TestEnsureASCII(t *testing.T) {
	out, err := jsonrepair.Repair(`{"a": "café"}`, jsonrepair.Options{EnsureASCII: true})
	require.NoError(t, err)
	assert.Contains(t, out, `\u00e9`)
	assert.NotContains(t, out, "é")
}

func TestIndent(t *testing.T) {
	out, err := jsonrepair.Repair(`{"a": 1}`, jsonrepair.Options{Indent: 2})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", out)
}

func TestRepairWithLogReportsRepairs(t *testing.T) {
	_, entries, err := jsonrepair.RepairWithLog(`{"a": 1, "b": 2`, jsonrepair.Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestRepairWithLogEmptyOnFastPath(t *testing.T) {
	_, entries, err := jsonrepair.RepairWithLog(`{"a":1}`, jsonrepair.Options{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLookup(t *testing.T) {
	input := `{"users": [{"name": "ann", "tags": ['admin', "ops"]}, {"name": 'bo'}]`

	v, err := jsonrepair.Lookup(input, jsonrepair.Options{}, "users", 0, "name", nil)
	require.NoError(t, err)
	assert.Equal(t, `"ann"`, v.JSON())

	v, err = jsonrepair.Lookup(input, jsonrepair.Options{}, "users", 0, "tags", 1)
	require.NoError(t, err)
	assert.Equal(t, `"ops"`, v.JSON())

	_, err = jsonrepair.Lookup(input, jsonrepair.Options{}, "users", 5)
	assert.Error(t, err)
}
