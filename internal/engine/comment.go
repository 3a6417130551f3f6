// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package engine

// skipComment consumes a comment at the cursor, if one is actually there,
// and reports whether it did. Comments are not legal JSON, but LLM output
// routinely includes them; treating them as whitespace is cheaper than
// rejecting the whole document.
func (p *Parser) skipComment() bool {
	r0, ok := p.c.Peek()
	if !ok {
		return false
	}
	switch r0 {
	case '#':
		p.c.Advance()
		p.skipToEOL()
		p.log.Add("skipped a '#' line comment", p.c)
		return true
	case '/':
		r1, ok := p.c.PeekAt(1)
		if !ok {
			return false
		}
		switch r1 {
		case '/':
			p.c.SkipN(2)
			p.skipToEOL()
			p.log.Add("skipped a '//' line comment", p.c)
			return true
		case '*':
			p.c.SkipN(2)
			if p.skipToBlockEnd() {
				p.log.Add("skipped a block comment", p.c)
			} else {
				p.log.Add("unterminated block comment consumed to end of input", p.c)
			}
			return true
		}
	}
	return false
}

func (p *Parser) skipToEOL() {
	p.c.SkipWhile(func(r rune) bool { return r != '\n' })
}

// skipToBlockEnd consumes through the closing "*/" and reports whether it
// found one before the input ran out.
func (p *Parser) skipToBlockEnd() bool {
	for {
		r, ok := p.c.Peek()
		if !ok {
			return false
		}
		if r == '*' {
			if nr, ok := p.c.PeekAt(1); ok && nr == '/' {
				p.c.SkipN(2)
				return true
			}
		}
		p.c.Advance()
	}
}
