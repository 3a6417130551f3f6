// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package engine

import "github.com/cflynn/jsonrepair/value"

// parseArray parses an array opened at the cursor, tolerating a missing or
// doubled separating comma, a trailing comma, and a container that runs out
// of input instead of closing. It is the symmetric counterpart of
// parseObject.
func (p *Parser) parseArray() (value.Value, error) {
	p.c.Advance() // consume '['
	if p.ctx.Depth() >= p.opts.maxDepth() {
		if p.opts.Strict {
			return nil, strictf(p.c, "exceeded maximum nesting depth")
		}
		p.c.SkipWhile(func(rune) bool { return true })
		p.log.Add("exceeded maximum nesting depth; discarded the rest of the input", p.c)
		return value.Array{}, nil
	}
	p.ctx.Push(ContextArray)
	defer p.ctx.Pop()

	var arr value.Array
	for {
		p.skipWhitespaceAndComments()
		r, ok := p.c.Peek()
		if !ok {
			if p.opts.Strict {
				return nil, strictf(p.c, "unterminated array")
			}
			p.log.Add("closed an array at end of input", p.c)
			return arr, nil
		}
		if r == ']' {
			p.c.Advance()
			return arr, nil
		}
		if r == ',' {
			if p.opts.Strict {
				return nil, strictf(p.c, "unexpected ',' in array")
			}
			p.c.Advance()
			p.log.Add("dropped an empty element before a comma", p.c)
			continue
		}

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)

		p.skipWhitespaceAndComments()
		r2, ok2 := p.c.Peek()
		switch {
		case ok2 && r2 == ',':
			p.c.Advance()
			p.skipWhitespaceAndComments()
			if r3, ok3 := p.c.Peek(); ok3 && r3 == ']' {
				if p.opts.Strict {
					return nil, strictf(p.c, "trailing ',' before ']'")
				}
				p.c.Advance()
				p.log.Add("dropped a trailing comma before ']'", p.c)
				return arr, nil
			}
		case ok2 && r2 == ']':
			p.c.Advance()
			return arr, nil
		case !ok2:
			if p.opts.Strict {
				return nil, strictf(p.c, "unterminated array")
			}
			p.log.Add("closed an array at end of input", p.c)
			return arr, nil
		default:
			if p.opts.Strict {
				return nil, strictf(p.c, "expected ',' or ']' after array element")
			}
			p.log.Add("inserted an implicit ',' between array elements", p.c)
		}
	}
}
