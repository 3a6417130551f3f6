// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package value defines the tagged-union value tree produced by the
// repairing JSON decoder: objects, arrays, strings, numbers, booleans, and
// null. A Value is always a finite tree; containers hold their children by
// value or pointer, never by reference cycle.
package value

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"go4.org/mem"
)

// A Value is an arbitrary decoded JSON value.
type Value interface {
	// JSON renders the value as JSON source text.
	JSON() string

	// String renders the value as a human-readable string. The result is
	// not guaranteed to be valid JSON.
	String() string
}

// A Text is a Value that can report a plain (unescaped) string form,
// allowing it to be used as an object member key.
type Text interface {
	Value

	// Text returns the unescaped text of the receiver.
	Text() string
}

// TextEqual returns a matcher that reports whether a Text's unescaped
// content is exactly s.
func TextEqual(s string) func(Text) bool {
	return func(t Text) bool { return t.Text() == s }
}

// TextEqualFold returns a matcher like TextEqual but case-insensitive.
func TextEqualFold(s string) func(Text) bool {
	return func(t Text) bool { return strings.EqualFold(t.Text(), s) }
}

// An Object is an ordered collection of key-value members. Order reflects
// first-insertion order of keys as they appeared in the input; overwriting
// a duplicate key retains its original position.
type Object []*Member

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member { return o.FindKey(TextEqual(key)) }

// FindKey returns the first member of o for whose key f reports true, or nil.
func (o Object) FindKey(f func(Text) bool) *Member {
	for _, m := range o {
		if f(m.Key) {
			return m
		}
	}
	return nil
}

// Len returns the number of members in the object.
func (o Object) Len() int { return len(o) }

// Put inserts or updates a member of o, applying last-writer-wins semantics
// while preserving the position of the first insertion of key.
func (o *Object) Put(key string, v Value) {
	if m := o.Find(key); m != nil {
		m.Value = v
		return
	}
	*o = append(*o, &Member{Key: String(key), Value: v})
}

// JSON renders o as JSON text.
func (o Object) JSON() string {
	if len(o) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o)) }

// Sort sorts the object in ascending order by key. The decoder itself never
// calls it.
func (o Object) Sort() {
	sort.SliceStable(o, func(i, j int) bool { return o[i].Key.Text() < o[j].Key.Text() })
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   Text
	Value Value
}

// Field constructs an object member with the given plain-text key.
func Field(key string, val Value) *Member { return &Member{Key: String(key), Value: val} }

// JSON renders the member as a "key":value pair.
func (m *Member) JSON() string { return Quote(m.Key.Text()) + ":" + m.Value.JSON() }

func (m *Member) String() string { return fmt.Sprintf("Member(key=%q)", m.Key.Text()) }

// An Array is a sequence of values.
type Array []Value

// Len returns the number of elements in a.
func (a Array) Len() int { return len(a) }

// JSON renders the array as JSON text.
func (a Array) JSON() string {
	if len(a) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a)) }

// A Number is a numeric literal. The original lexical text is preserved so
// that values too large or precise for a native machine type still
// round-trip without losing digits.
type Number struct {
	text  string
	isInt bool
}

// NewNumber constructs a Number directly from its lexical text. The caller
// must supply text that the number parser would itself have produced (an
// optional sign, digits, optional fraction, optional exponent).
func NewNumber(text string, isInt bool) Number { return Number{text: text, isInt: isInt} }

// JSON renders n as JSON text: its original lexical form.
func (n Number) JSON() string { return n.text }

func (n Number) String() string { return n.text }

// Equal reports whether n and o have the same lexical text and the same
// integer flag, letting
// go-cmp compare Number values without reaching into its unexported
// fields.
func (n Number) Equal(o Number) bool { return n.text == o.text && n.isInt == o.isInt }

// IsInt reports whether n was lexed without a fraction or exponent.
func (n Number) IsInt() bool { return n.isInt }

// Int64 returns n as an int64 and whether the conversion was exact.
func (n Number) Int64() (int64, bool) {
	v, err := strconv.ParseInt(n.text, 10, 64)
	return v, err == nil
}

// Float64 returns n as a float64. If n is not representable as a float64 it
// reports false, with 0 for a malformed lexical fragment and ±Inf for a
// magnitude out of range.
func (n Number) Float64() (float64, bool) {
	v, err := strconv.ParseFloat(n.text, 64)
	return v, err == nil
}

// Big returns n as an arbitrary-precision rational, which never loses
// digits regardless of magnitude.
func (n Number) Big() (*big.Rat, bool) {
	r, ok := new(big.Rat).SetString(n.text)
	return r, ok
}

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON returns b as JSON text.
func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

func (b Bool) String() string { return b.JSON() }

// String is an unquoted (decoded) string value.
type String string

var _ Text = String("")

// Text returns s as a plain string.
func (s String) Text() string { return string(s) }

// JSON renders s as a quoted, escaped JSON string.
func (s String) JSON() string { return Quote(string(s)) }

func (s String) String() string { return string(s) }

// Null represents the JSON null constant.
var Null nullValue

type nullValue struct{}

func (nullValue) JSON() string   { return "null" }
func (nullValue) String() string { return "null" }

// ToValue converts a small set of native Go types into the corresponding
// Value, for convenience when constructing trees programmatically (e.g. in
// tests). It panics on an unsupported type.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return NewNumber(strconv.Itoa(t), true)
	case int64:
		return NewNumber(strconv.FormatInt(t, 10), true)
	case float64:
		return NewNumber(strconv.FormatFloat(t, 'g', -1, 64), false)
	default:
		panic(fmt.Sprintf("value: unsupported type %T", v))
	}
}

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel: sizes the array to cover all control codes
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes s as a double-quoted JSON string literal.
func Quote(s string) string { return string(QuoteOptions(mem.S(s), false)) }

// QuoteOptions encodes src as a double-quoted JSON string literal. When
// ensureASCII is set, every rune outside the ASCII range is escaped as a
// \uXXXX sequence (surrogate pairs for runes beyond the BMP).
func QuoteOptions(src mem.RO, ensureASCII bool) []byte {
	buf := make([]byte, 0, src.Len()+2)
	buf = append(buf, '"')
	for src.Len() > 0 {
		r, n := mem.DecodeRune(src)
		switch {
		case r < utf8.RuneSelf:
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					buf = append(buf, '\\', b)
				} else {
					buf = append(buf, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
				}
			} else if r == '\\' || r == '"' {
				buf = append(buf, '\\', byte(r))
			} else {
				buf = append(buf, byte(r))
			}
		case ensureASCII || r == utf8.RuneError:
			if r > 0xFFFF {
				r1, r2 := utf16Pair(r)
				buf = appendEscape(buf, r1)
				buf = appendEscape(buf, r2)
			} else {
				buf = appendEscape(buf, r)
			}
		default:
			var rbuf [4]byte
			m := utf8.EncodeRune(rbuf[:], r)
			buf = append(buf, rbuf[:m]...)
		}
		src = src.SliceFrom(n)
	}
	buf = append(buf, '"')
	return buf
}

func appendEscape(buf []byte, r rune) []byte {
	return append(buf, '\\', 'u',
		hexDigit[(r>>12)&0xF], hexDigit[(r>>8)&0xF], hexDigit[(r>>4)&0xF], hexDigit[r&0xF])
}

func utf16Pair(r rune) (rune, rune) {
	r -= 0x10000
	return 0xD800 + (r >> 10), 0xDC00 + (r & 0x3FF)
}
