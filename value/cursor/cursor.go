// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements path-based navigation over a decoded Value tree,
// so a caller can drill into nested objects and arrays without writing a
// type switch by hand.
package cursor

import (
	"errors"
	"fmt"

	"github.com/cflynn/jsonrepair/value"
)

// ErrKeyNotFound is a sentinel error reported when a name or array index
// lookup fails into a value of the correct type.
var ErrKeyNotFound = errors.New("key not found")

// Path traverses a sequential path into the structure of v where path
// elements are as documented for the Cursor.Down method. It is a
// convenience wrapper for creating a cursor, applying path, and retrieving
// its value as the requested type.
func Path[T value.Value](v value.Value, path ...any) (T, error) {
	c := New(v).Down(path...)
	var result T
	if err := c.Err(); err != nil {
		return result, err
	}
	got, ok := c.Value().(T)
	if !ok {
		return result, fmt.Errorf("wrong value type %T", c.Value())
	}
	return got, nil
}

// A Cursor is a pointer that navigates into the structure of a value.Value.
type Cursor struct {
	org value.Value
	stk []value.Value
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin value.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() value.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() value.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Get reports the current value under the cursor and the error, if any.
func (c *Cursor) Get() (value.Value, error) { return c.Value(), c.Err() }

// Path reports the complete sequence of values from the origin to the
// current location in c.
func (c *Cursor) Path() []value.Value {
	return append([]value.Value{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible. It
// returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are either strings (denoting object
// keys), integers (denoting offsets into arrays), functions (see below), or
// nil. It returns c to permit chaining. If the path is valid, c is left at
// the element reached; if it cannot be completely consumed, traversal stops
// and an error is recorded. Use Get or Err to recover the error.
//
// If a path element is a string, the corresponding value must be an object,
// and the string resolves an object member with that name. A string path
// element beginning with "%" requests a case-insensitive match; double the
// leading "%" to escape this meaning.
//
// If a path element is an integer, the corresponding value must be an array
// or an object, and the integer resolves to an index in the array or to the
// member at that position in the object. Negative indices count backward
// from the end (-1 is last, -2 second last).
//
// If a path element is a function with signature func(value.Text) bool, the
// corresponding value must be an object, and the function resolves the
// first member whose key is reported true by the function.
//
// A nil path element does nothing; it exists so a caller can terminate a
// path on an object member (resolving to its value) without a trailing key.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	cur := c.Value()
	for _, elt := range path {
		if m, ok := cur.(*value.Member); ok {
			cur = c.push(m.Value)
		}

		switch t := elt.(type) {
		case string:
			obj, ok := cur.(value.Object)
			if !ok {
				return c.setErrorf("cannot traverse %T with %q", cur, elt)
			}
			m := obj.FindKey(keyMatch(t))
			if m == nil {
				return c.setErrorf("%w: %q", ErrKeyNotFound, t)
			}
			cur = c.push(m)

		case int:
			switch e := cur.(type) {
			case value.Array:
				i, ok := fixArrayBound(len(e), t)
				if !ok {
					return c.setErrorf("%w: array index %d out of bounds (n=%d)", ErrKeyNotFound, t, len(e))
				}
				cur = c.push(e[i])
			case value.Object:
				i, ok := fixArrayBound(len(e), t)
				if !ok {
					return c.setErrorf("%w: object index %d out of bounds (n=%d)", ErrKeyNotFound, t, len(e))
				}
				cur = c.push(e[i])
			default:
				return c.setErrorf("cannot traverse %T with %v", cur, elt)
			}

		case func(value.Text) bool:
			obj, ok := cur.(value.Object)
			if !ok {
				return c.setErrorf("cannot traverse %T with a key function", cur)
			}
			m := obj.FindKey(t)
			if m == nil {
				return c.setErrorf("%w: no matching member", ErrKeyNotFound)
			}
			cur = c.push(m)

		case nil:
			// Do nothing; supports indirecting through a member at the end
			// of a path.

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v value.Value) value.Value { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

func keyMatch(key string) func(value.Text) bool {
	switch {
	case len(key) >= 2 && key[:2] == "%%":
		return value.TextEqual(key[1:])
	case len(key) >= 1 && key[0] == '%':
		return value.TextEqualFold(key[1:])
	default:
		return value.TextEqual(key)
	}
}
