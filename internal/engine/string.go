// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/cflynn/jsonrepair/value"
)

// Quote characters recognized as opening a string, beyond the canonical
// double quote: single quote, backtick, and the four curly "smart" quotes a
// word processor or chat UI commonly substitutes.
const (
	leftDoubleQuote  = '“'
	rightDoubleQuote = '”'
	leftSingleQuote  = '‘'
	rightSingleQuote = '’'
)

func isQuote(r rune) bool {
	switch r {
	case '"', '\'', '`', leftDoubleQuote, rightDoubleQuote, leftSingleQuote, rightSingleQuote:
		return true
	}
	return false
}

var defaultQuoteClose = map[rune]rune{
	'"':            '"',
	'\'':           '\'',
	'`':            '`',
	leftDoubleQuote:  rightDoubleQuote,
	rightDoubleQuote: rightDoubleQuote,
	leftSingleQuote:  rightSingleQuote,
	rightSingleQuote: rightSingleQuote,
}

// quoteClose reports the rune that closes an opening quote q, consulting
// the caller's fancy-quote table before the built-in one.
func (p *Parser) quoteClose(q rune) rune {
	if p.opts.FancyQuotes != nil {
		if c, ok := p.opts.FancyQuotes[q]; ok {
			return c
		}
	}
	if c, ok := defaultQuoteClose[q]; ok {
		return c
	}
	return q
}

// parseStringOrLiteral dispatches between a quoted string and an unquoted
// bareword, which may turn out to be a string, a boolean, or null.
func (p *Parser) parseStringOrLiteral() (value.Value, error) {
	r, _ := p.c.Peek()
	if isQuote(r) {
		return p.parseQuotedString()
	}
	return p.parseBarewordOrKeyword()
}

// parseQuotedString reads a string literal opened at the cursor. It decodes
// backslash escapes as it goes and, outside strict mode, tolerates a
// missing closing quote by inferring the end of the string from its
// grammatical context: a colon ends a key, a comma or a container's closer
// ends a value.
func (p *Parser) parseQuotedString() (value.Value, error) {
	if r, _ := p.c.Peek(); p.opts.Strict && r != '"' {
		return nil, strictf(p.c, "string must be double-quoted, not opened with %q", r)
	}
	open, _ := p.c.Advance()
	close := p.quoteClose(open)

	var sb strings.Builder
	for {
		r, ok := p.c.Peek()
		if !ok {
			if p.opts.Strict {
				return nil, strictf(p.c, "unterminated string")
			}
			p.log.Add("string ran to end of input without a closing quote", p.c)
			return value.String(sb.String()), nil
		}
		if r == close {
			p.c.Advance()
			return value.String(sb.String()), nil
		}
		if r == '\\' {
			p.c.Advance()
			logged := p.log.Len()
			esc, ok := p.decodeEscape()
			if p.opts.Strict && p.log.Len() > logged {
				return nil, strictf(p.c, "invalid escape sequence")
			}
			if ok {
				sb.WriteRune(esc)
			}
			continue
		}
		if !p.opts.Strict && p.looksLikeImplicitClose(r) {
			p.log.Add("closed an unterminated quoted string at a structural boundary", p.c)
			return value.String(sb.String()), nil
		}
		p.c.Advance()
		sb.WriteRune(r)
	}
}

// looksLikeImplicitClose reports whether r, found before any closing quote,
// should be treated as ending the string anyway because the current
// grammatical context makes a real closing quote unlikely.
func (p *Parser) looksLikeImplicitClose(r rune) bool {
	switch p.ctx.Top() {
	case ContextObjectKey:
		return r == ':'
	case ContextObjectValue:
		if r == ',' || r == '}' {
			return true
		}
		return r == '\n' && p.aheadLooksLikeNextKey()
	case ContextArray:
		return r == ',' || r == ']'
	default:
		return false
	}
}

// aheadLooksLikeNextKey peeks past the rune at the cursor (a newline) to see
// whether the following non-space content begins a new quoted key, the
// signal used to end an unterminated object value early.
func (p *Parser) aheadLooksLikeNextKey() bool {
	for i := 1; ; i++ {
		r, ok := p.c.PeekAt(i)
		if !ok {
			return false
		}
		if isSpace(r) {
			continue
		}
		return isQuote(r)
	}
}

// decodeEscape decodes the character following a backslash already consumed
// by the caller. Unrecognized escapes are kept literally in non-strict
// mode, matching LLM output that often emits stray backslashes.
func (p *Parser) decodeEscape() (rune, bool) {
	r, ok := p.c.Advance()
	if !ok {
		return 0, false
	}
	switch r {
	case '"', '\\', '/':
		return r, true
	case '\'':
		return r, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case 'u':
		return p.decodeUnicodeEscape()
	default:
		p.log.Addf(p.c, "kept literal character after unrecognized escape \\%c", r)
		return r, true
	}
}

// decodeUnicodeEscape decodes a \uXXXX escape, merging a following \uXXXX
// low surrogate into a single rune when the first value is a high
// surrogate.
func (p *Parser) decodeUnicodeEscape() (rune, bool) {
	hi, ok := readHex4(p.c)
	if !ok {
		p.log.Add("malformed \\u escape; replaced with U+FFFD", p.c)
		return utf8.RuneError, true
	}
	if hi >= 0xD800 && hi <= 0xDBFF {
		if lo, ok := p.peekLowSurrogate(); ok {
			p.c.SkipN(6)
			return ((hi - 0xD800) << 10) | (lo - 0xDC00) + 0x10000, true
		}
	}
	return hi, true
}

// peekLowSurrogate looks (without consuming) for a \uDC00-\uDFFF escape at
// the cursor, the second half of a UTF-16 surrogate pair.
func (p *Parser) peekLowSurrogate() (rune, bool) {
	r0, ok0 := p.c.PeekAt(0)
	r1, ok1 := p.c.PeekAt(1)
	if !ok0 || !ok1 || r0 != '\\' || r1 != 'u' {
		return 0, false
	}
	var v rune
	for i := 0; i < 4; i++ {
		r, ok := p.c.PeekAt(2 + i)
		if !ok {
			return 0, false
		}
		d, ok := hexVal(r)
		if !ok {
			return 0, false
		}
		v = v*16 + rune(d)
	}
	if v < 0xDC00 || v > 0xDFFF {
		return 0, false
	}
	return v, true
}

func readHex4(c *Cursor) (rune, bool) {
	var v rune
	for i := 0; i < 4; i++ {
		r, ok := c.Advance()
		if !ok {
			return 0, false
		}
		d, ok := hexVal(r)
		if !ok {
			return 0, false
		}
		v = v*16 + rune(d)
	}
	return v, true
}

func hexVal(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	}
	return 0, false
}

// parseBarewordOrKeyword scans an unquoted run of characters and classifies
// it as true, false, null, or else a bare string. LLM output regularly
// omits quotes around both keys and simple values.
func (p *Parser) parseBarewordOrKeyword() (value.Value, error) {
	var sb strings.Builder
	hitEOF := false
	for {
		r, ok := p.c.Peek()
		if !ok {
			hitEOF = true
			break
		}
		if p.barewordTerminates(r) {
			break
		}
		p.c.Advance()
		sb.WriteRune(r)
	}
	text := sb.String()

	switch {
	case equalFoldASCII(text, "true"):
		return value.Bool(true), nil
	case equalFoldASCII(text, "false"):
		return value.Bool(false), nil
	case equalFoldASCII(text, "null"), equalFoldASCII(text, "none"):
		return value.Null, nil
	}

	// Generation sometimes cuts off mid-keyword ("tr" instead of "true").
	// A partial match only counts as one when the stream genuinely ran out
	// right there; a bareword cut short by a structural character like ','
	// or '}' is just a short string, not a truncated keyword.
	if !p.opts.Strict && hitEOF {
		if v, ok := truncatedKeyword(text); ok {
			p.log.Add("resolved a truncated keyword at end of input", p.c)
			return v, nil
		}
	}

	if p.opts.Strict {
		if text == "" {
			return nil, strictf(p.c, "expected a value")
		}
		return nil, strictf(p.c, "unquoted bareword %q is not valid JSON", text)
	}
	p.log.Add("treated an unquoted bareword as a string literal", p.c)
	return value.String(text), nil
}

// truncatedKeyword reports whether text is a non-empty, proper,
// case-insensitive prefix of true, false, or null, and if so the value it
// resolves to. looksLikeKeyword is a separate, looser check made ahead of
// the cursor: it also accepts a complete keyword followed by more text.
func truncatedKeyword(text string) (value.Value, bool) {
	if text == "" {
		return nil, false
	}
	for _, kw := range []struct {
		name string
		val  value.Value
	}{
		{"true", value.Bool(true)},
		{"false", value.Bool(false)},
		{"null", value.Null},
	} {
		if len(text) < len(kw.name) && equalFoldASCII(text, kw.name[:len(text)]) {
			return kw.val, true
		}
	}
	return nil, false
}

// barewordTerminates reports whether r ends an unquoted bareword run.
func (p *Parser) barewordTerminates(r rune) bool {
	if isSpace(r) {
		return true
	}
	switch r {
	case ':', ',', '}', ']':
		return true
	}
	return false
}
