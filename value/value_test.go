// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"go4.org/mem"

	"github.com/cflynn/jsonrepair/value"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", `""`},
		{"plain", "hello", `"hello"`},
		{"quote", `a"b`, `"a\"b"`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline", "a\nb", `"a\nb"`},
		{"tab", "a\tb", `"a\tb"`},
		{"control", "\x01", `""`},
		{"unicode", "café", `"café"`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, value.Quote(test.in))
		})
	}
}

func TestQuoteOptionsEnsureASCII(t *testing.T) {
	got := string(value.QuoteOptions(memS("café"), true))
	want := `"caf\u00e9"`
	assert.Equal(t, want, got)
}

func TestQuoteOptionsSurrogatePair(t *testing.T) {
	got := string(value.QuoteOptions(memS("😀"), true))
	want := `"\ud83d\ude00"`
	assert.Equal(t, want, got)
}

func TestObjectOrderingAndDuplicates(t *testing.T) {
	var o value.Object
	o.Put("a", value.NewNumber("1", true))
	o.Put("b", value.NewNumber("2", true))
	o.Put("a", value.NewNumber("3", true))

	want := value.Object{
		value.Field("a", value.NewNumber("3", true)),
		value.Field("b", value.NewNumber("2", true)),
	}
	if diff := cmp.Diff(want, o); diff != "" {
		t.Errorf("Object diff (-want +got):\n%s", diff)
	}
}

func TestNumberConversions(t *testing.T) {
	n := value.NewNumber("42", true)
	i, ok := n.Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(42), i)

	f := value.NewNumber("3.14", false)
	fv, ok := f.Float64()
	assert.True(t, ok)
	assert.InDelta(t, 3.14, fv, 0.0001)

	big := value.NewNumber("123456789012345678901234567890", true)
	r, ok := big.Big()
	assert.True(t, ok)
	assert.Equal(t, "123456789012345678901234567890", r.RatString())
}

func TestToValue(t *testing.T) {
	assert.Equal(t, value.Null, value.ToValue(nil))
	assert.Equal(t, value.Bool(true), value.ToValue(true))
	assert.Equal(t, value.String("x"), value.ToValue("x"))
	assert.Equal(t, value.NewNumber("7", true), value.ToValue(7))
}

func memS(s string) mem.RO { return mem.S(s) }
