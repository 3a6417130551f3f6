// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package engine implements the repairing recursive-descent JSON parser:
// the character cursor, context stack, log sink, and the primitive and
// container parsers driven by heuristics tuned for malformed LLM output.
package engine

import (
	"bufio"
	"io"
	"strings"
)

// historyLen bounds how much recently-consumed input the Cursor retains for
// diagnostic log windows. It does not bound lookahead.
const historyLen = 24

// A Cursor is a windowed view over an input rune stream, exposing peek,
// advance, and bounded lookahead. The input may be a full in-memory string
// or a file-like reader whose bytes are lazily paged through a bufio.Reader,
// so peak resident memory stays proportional to the active window rather
// than the whole file.
//
// The cursor offset is monotonically non-decreasing: Advance and SkipN are
// the only ways to move it forward, and nothing in this package ever
// rewinds one created elsewhere.
type Cursor struct {
	r    *bufio.Reader
	pend []rune // lookahead buffer: runes read from r but not yet consumed
	hist []rune // ring of the most recently consumed runes, for log windows
	pos  int    // byte offset consumed so far
	eof  bool   // true once r has reported io.EOF and pend is drained
}

// NewCursor constructs a Cursor that pages its input from r.
func NewCursor(r io.Reader) *Cursor {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Cursor{r: br}
}

// NewCursorString constructs a Cursor over an in-memory string.
func NewCursorString(s string) *Cursor { return NewCursor(strings.NewReader(s)) }

// fill ensures at least n runes are buffered in pend, short of EOF.
func (c *Cursor) fill(n int) {
	for len(c.pend) < n && !c.eof {
		r, _, err := c.r.ReadRune()
		if err != nil {
			c.eof = true
			return
		}
		c.pend = append(c.pend, r)
	}
}

// AtEOF reports whether the cursor has no more input to offer, including
// anything still buffered for lookahead.
func (c *Cursor) AtEOF() bool {
	c.fill(1)
	return len(c.pend) == 0
}

// Pos returns the number of bytes consumed so far. This offset only grows.
func (c *Cursor) Pos() int { return c.pos }

// Peek returns the rune at the cursor without consuming it.
func (c *Cursor) Peek() (rune, bool) { return c.PeekAt(0) }

// PeekAt returns the rune n positions ahead of the cursor (0 is the current
// position) without consuming any input.
func (c *Cursor) PeekAt(n int) (rune, bool) {
	c.fill(n + 1)
	if n >= len(c.pend) {
		return 0, false
	}
	return c.pend[n], true
}

// PeekString returns up to n runes ahead of the cursor as a string, without
// consuming them. It may return fewer than n runes if the input ends first.
func (c *Cursor) PeekString(n int) string {
	c.fill(n)
	if n > len(c.pend) {
		n = len(c.pend)
	}
	return string(c.pend[:n])
}

// Advance consumes and returns the rune at the cursor.
func (c *Cursor) Advance() (rune, bool) {
	c.fill(1)
	if len(c.pend) == 0 {
		return 0, false
	}
	r := c.pend[0]
	c.pend = c.pend[1:]
	c.pos += len(string(r))
	c.pushHistory(r)
	return r, true
}

// SkipN consumes up to n runes, returning how many were actually consumed.
func (c *Cursor) SkipN(n int) int {
	i := 0
	for ; i < n; i++ {
		if _, ok := c.Advance(); !ok {
			break
		}
	}
	return i
}

// SkipWhile consumes runes matching f until one does not match or the input
// is exhausted, and reports how many were consumed.
func (c *Cursor) SkipWhile(f func(rune) bool) int {
	n := 0
	for {
		r, ok := c.Peek()
		if !ok || !f(r) {
			return n
		}
		c.Advance()
		n++
	}
}

func (c *Cursor) pushHistory(r rune) {
	c.hist = append(c.hist, r)
	if len(c.hist) > historyLen {
		c.hist = c.hist[len(c.hist)-historyLen:]
	}
}

// Window returns a short diagnostic snippet of input surrounding the
// cursor: the most recently consumed runes followed by a bounded lookahead,
// for inclusion in a LogEntry.
func (c *Cursor) Window() string {
	c.fill(historyLen)
	n := len(c.pend)
	if n > historyLen {
		n = historyLen
	}
	return string(c.hist) + "·" + string(c.pend[:n])
}
