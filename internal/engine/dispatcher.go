// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package engine

import (
	"github.com/cflynn/jsonrepair/value"
)

// A Parser drives a Cursor through the repairing grammar, maintaining the
// context stack and log sink. It is the single piece of mutable shared
// state in a parse; the cursor is lent by reference to each sub-parser,
// which runs to completion before returning control.
type Parser struct {
	c    *Cursor
	ctx  ContextStack
	log  Log
	opts Options
}

// NewParser constructs a Parser reading from c under the given options.
func NewParser(c *Cursor, opts Options) *Parser {
	return &Parser{c: c, opts: opts}
}

// Log returns the repair log accumulated so far.
func (p *Parser) Log() *Log { return &p.log }

// ParseDocument runs the full top-level driver: it skips leading prose if
// the input doesn't look like JSON at all, collects one or more top-level
// values, and discards trailing prose symmetrically. It reports
// ErrEmptyInput if no parseable character remains anywhere in the input.
// In strict mode no fence or prose is skipped, and any content after the
// first top-level value is a *StrictError.
func (p *Parser) ParseDocument() ([]value.Value, error) {
	var wrapped bool
	if !p.opts.Strict {
		wrapped = p.skipLeadingFence()
		if !wrapped {
			wrapped = p.skipLeadingProse()
		}
	}

	var out []value.Value
	for {
		p.skipWhitespaceAndComments()
		if p.c.AtEOF() {
			break
		}
		v, err := p.parseValue()
		if err != nil {
			return out, err
		}
		out = append(out, v)

		if p.opts.Strict {
			p.skipWhitespaceAndComments()
			if !p.c.AtEOF() {
				return out, strictf(p.c, "unexpected content after the top-level value")
			}
		}
		if p.opts.StreamStable {
			break
		}
		if wrapped {
			break
		}
	}

	if wrapped || p.opts.StreamStable {
		p.discardRemainder()
	}

	if len(out) == 0 {
		return nil, ErrEmptyInput
	}
	return out, nil
}

// skipLeadingFence recognizes a leading markdown code fence (```` ``` ````
// or ```` ```json ````, or any other single-word language tag) wrapping the
// document, as LLM output commonly does, and strips it so the value parser
// never sees the backticks. A matching closing fence is stripped
// symmetrically by discardRemainder.
func (p *Parser) skipLeadingFence() bool {
	if p.c.PeekString(3) != "```" {
		return false
	}
	p.c.SkipN(3)
	for {
		r, ok := p.c.Peek()
		if !ok || !isLetter(r) {
			break
		}
		p.c.Advance()
	}
	for {
		r, ok := p.c.Peek()
		if !ok || r == '\n' {
			break
		}
		if !isSpace(r) {
			break
		}
		p.c.Advance()
	}
	if r, ok := p.c.Peek(); ok && r == '\n' {
		p.c.Advance()
	}
	p.log.Add("stripped an opening markdown code fence", p.c)
	return true
}

// skipLeadingProse handles chatty LLM preambles: if the first non-whitespace
// character is a letter and does not begin a recognizable true/false/null
// literal, scan forward for the first '{' or '[' and resume there, logging
// the skipped prose as a repair. If neither appears anywhere ahead, nothing
// is consumed and the text is left to the value parser as a bareword.
func (p *Parser) skipLeadingProse() bool {
	p.skipWhitespaceAndComments()
	r, ok := p.c.Peek()
	if !ok || !isLetter(r) {
		return false
	}
	if looksLikeKeyword(p.c) {
		return false
	}

	n := 0
	for {
		r, ok := p.c.PeekAt(n)
		if !ok {
			return false
		}
		if r == '{' || r == '[' {
			break
		}
		n++
	}
	p.c.SkipN(n)
	if n > 0 {
		p.log.Add("leading text does not look like JSON; skipped to the first '{' or '['", p.c)
	}
	return true
}

// discardRemainder consumes and silently drops everything left in the
// input, logging a single repair if anything nonblank was discarded.
func (p *Parser) discardRemainder() {
	p.skipWhitespaceAndComments()
	if p.c.AtEOF() {
		return
	}
	if p.c.PeekString(3) == "```" {
		p.c.SkipN(3)
		p.log.Add("stripped a closing markdown code fence", p.c)
		p.skipWhitespaceAndComments()
		if p.c.AtEOF() {
			return
		}
	}
	n := p.c.SkipWhile(func(rune) bool { return true })
	if n > 0 {
		p.log.Add("discarded trailing content after the last top-level value", p.c)
	}
}

// parseValue routes on the lead character of the next token to the
// appropriate primitive or container parser.
func (p *Parser) parseValue() (value.Value, error) {
	for {
		p.skipWhitespaceAndComments()
		r, ok := p.c.Peek()
		if !ok {
			if p.opts.Strict {
				return nil, strictf(p.c, "unexpected end of input")
			}
			return value.String(""), nil
		}

		switch {
		case r == '{':
			return p.parseObject()
		case r == '[':
			return p.parseArray()
		case isQuote(r) || isLetter(r):
			return p.parseStringOrLiteral()
		case isNumberStart(r):
			return p.parseNumber()
		case r == '/' || r == '#':
			if !p.skipComment() {
				// Not actually a comment (e.g. a lone '/'); treat it as a
				// stray character and retry.
				if p.opts.Strict {
					return nil, strictf(p.c, "unexpected %q", r)
				}
				p.c.Advance()
				p.log.Add("skipped unexpected character outside any value", p.c)
			}
			continue
		case r == '}' || r == ']' || r == ',' || r == ':':
			if p.opts.Strict {
				return nil, strictf(p.c, "unexpected %q", r)
			}
			p.c.Advance()
			p.log.Add("skipped a stray structural character with no value to attach to", p.c)
			continue
		default:
			if p.opts.Strict {
				return nil, strictf(p.c, "unexpected %q", r)
			}
			p.c.Advance()
			p.log.Add("skipped unexpected character outside any value", p.c)
			continue
		}
	}
}

// skipWhitespaceAndComments advances past runs of whitespace and comments,
// which are interchangeable everywhere outside of strings.
func (p *Parser) skipWhitespaceAndComments() {
	for {
		r, ok := p.c.Peek()
		if !ok {
			return
		}
		if isSpace(r) {
			p.c.Advance()
			continue
		}
		if r == '/' || r == '#' {
			if p.skipComment() {
				continue
			}
		}
		return
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '$'
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isNumberStart(r rune) bool {
	return r == '-' || r == '+' || r == '.' || isDigit(r)
}

// looksLikeKeyword reports whether the input at the cursor begins with a
// case-insensitive true/false/null (or truncated prefix thereof), which
// disqualifies it from the leading-prose heuristic.
func looksLikeKeyword(c *Cursor) bool {
	for _, kw := range []string{"true", "false", "null"} {
		s := c.PeekString(len(kw))
		if len(s) == 0 {
			continue
		}
		if len(s) > len(kw) {
			s = s[:len(kw)]
		}
		if equalFoldASCII(s, kw[:len(s)]) {
			return true
		}
	}
	return false
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
