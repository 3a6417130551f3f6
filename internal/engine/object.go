// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package engine

import "github.com/cflynn/jsonrepair/value"

// parseObject parses an object opened at the cursor, tolerating malformed
// members: a missing colon, a missing value, a missing or doubled
// separating comma, a trailing comma, and a container that simply runs out
// of input instead of closing. Duplicate keys keep the position of their
// first occurrence but take the value of the last, via value.Object.Put.
func (p *Parser) parseObject() (value.Value, error) {
	p.c.Advance() // consume '{'
	if p.ctx.Depth() >= p.opts.maxDepth() {
		if p.opts.Strict {
			return nil, strictf(p.c, "exceeded maximum nesting depth")
		}
		p.c.SkipWhile(func(rune) bool { return true })
		p.log.Add("exceeded maximum nesting depth; discarded the rest of the input", p.c)
		return value.Object{}, nil
	}
	p.ctx.Push(ContextObjectKey)
	defer p.ctx.Pop()

	var obj value.Object
	for {
		p.skipWhitespaceAndComments()
		r, ok := p.c.Peek()
		if !ok {
			if p.opts.Strict {
				return nil, strictf(p.c, "unterminated object")
			}
			p.log.Add("closed an object at end of input", p.c)
			return obj, nil
		}
		if r == '}' {
			p.c.Advance()
			return obj, nil
		}
		if r == ',' {
			if p.opts.Strict {
				return nil, strictf(p.c, "unexpected ',' in object")
			}
			p.c.Advance()
			p.log.Add("skipped a stray comma inside an object", p.c)
			continue
		}

		keyVal, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		key := textOf(keyVal)
		if key == "" && p.opts.Strict {
			return nil, strictf(p.c, "object key must not be empty")
		}

		p.skipWhitespaceAndComments()
		p.ctx.ToggleObject() // now positioned at the value
		if r2, ok2 := p.c.Peek(); ok2 && r2 == ':' {
			p.c.Advance()
		} else if p.opts.Strict {
			return nil, strictf(p.c, "expected ':' after object key %q", key)
		} else {
			p.log.Add("synthesized a missing ':' after an object key", p.c)
		}

		p.skipWhitespaceAndComments()
		var val value.Value
		if r3, ok3 := p.c.Peek(); !ok3 || r3 == ',' || r3 == '}' {
			if p.opts.Strict {
				return nil, strictf(p.c, "expected a value after ':'")
			}
			p.log.Add("substituted an empty string for a missing object value", p.c)
			val = value.String("")
		} else {
			val, err = p.parseValue()
			if err != nil {
				return nil, err
			}
		}
		if key == "" && isEmptyValue(val) {
			p.log.Add("dropped an object member with an empty key and empty value", p.c)
		} else {
			obj.Put(key, val)
		}
		p.ctx.ToggleObject() // back to key position

		p.skipWhitespaceAndComments()
		r4, ok4 := p.c.Peek()
		switch {
		case ok4 && r4 == ',':
			p.c.Advance()
			p.skipWhitespaceAndComments()
			if r5, ok5 := p.c.Peek(); ok5 && r5 == '}' {
				if p.opts.Strict {
					return nil, strictf(p.c, "trailing ',' before '}'")
				}
				p.c.Advance()
				p.log.Add("dropped a trailing comma before '}'", p.c)
				return obj, nil
			}
		case ok4 && r4 == '}':
			p.c.Advance()
			return obj, nil
		case !ok4:
			if p.opts.Strict {
				return nil, strictf(p.c, "unterminated object")
			}
			p.log.Add("closed an object at end of input", p.c)
			return obj, nil
		default:
			if p.opts.Strict {
				return nil, strictf(p.c, "expected ',' or '}' after object member")
			}
			p.log.Add("inserted an implicit ',' between object members", p.c)
		}
	}
}

// textOf returns the plain text of a key value. Most keys parse as
// value.Text; a key that happened to look like a number, bool, or null
// still needs a string form to index the object by.
func textOf(v value.Value) string {
	if t, ok := v.(value.Text); ok {
		return t.Text()
	}
	return v.String()
}

// isEmptyValue reports whether v is the empty string, the value a missing
// object member is substituted with.
func isEmptyValue(v value.Value) bool {
	s, ok := v.(value.String)
	return ok && s == ""
}
