// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package engine

import (
	"strings"

	"github.com/cflynn/jsonrepair/value"
)

// numScan is the result of peeking a numeric token off the cursor without
// committing to consuming it, so the parser can back off to a bareword if
// the token turns out not to be a number after all.
type numScan struct {
	runes    int    // input runes to consume
	text     string // repaired, JSON-legal lexical text
	isInt    bool
	repaired bool // true if any repair (comma/plus/trailing dot) was applied
}

// scanNumber peeks a numeric literal at the cursor, tolerating the
// malformations LLM output commonly introduces: a stray leading '+', comma
// thousands separators, and a trailing decimal point with no digits after
// it. It never advances the cursor; the caller commits with SkipN once it
// has decided the scan should stand.
func (p *Parser) scanNumber() (numScan, bool) {
	i := 0
	var sb strings.Builder
	repaired := false

	peek := func(off int) (rune, bool) { return p.c.PeekAt(i + off) }

	if r, ok := peek(0); ok && (r == '-' || r == '+') {
		if r == '-' {
			sb.WriteRune(r)
		} else {
			repaired = true // dropped a non-canonical leading '+'
		}
		i++
	}

	digitsBefore := 0
	for {
		r, ok := peek(0)
		if !ok {
			break
		}
		if isDigit(r) {
			sb.WriteRune(r)
			i++
			digitsBefore++
			continue
		}
		if r == ',' && digitsBefore > 0 {
			// Only a comma followed by exactly three digits is a thousands
			// separator; "1,2" is two values, not twelve.
			group := true
			for k := 1; k <= 3; k++ {
				if nr, ok2 := peek(k); !ok2 || !isDigit(nr) {
					group = false
				}
			}
			if nr, ok2 := peek(4); ok2 && isDigit(nr) {
				group = false
			}
			if group {
				i++
				repaired = true
				continue
			}
		}
		break
	}

	isInt := true
	if r, ok := peek(0); ok && r == '.' {
		if nr, ok2 := peek(1); ok2 && isDigit(nr) {
			sb.WriteByte('.')
			i++
			isInt = false
			for {
				r, ok := peek(0)
				if !ok || !isDigit(r) {
					break
				}
				sb.WriteRune(r)
				i++
			}
		} else if digitsBefore > 0 {
			i++ // drop a trailing '.' with nothing after it
			repaired = true
		}
	}

	if digitsBefore == 0 {
		return numScan{}, false
	}

	if r, ok := peek(0); ok && (r == 'e' || r == 'E') {
		j := 1
		if r2, ok2 := peek(j); ok2 && (r2 == '+' || r2 == '-') {
			j++
		}
		if r3, ok3 := peek(j); ok3 && isDigit(r3) {
			sb.WriteRune(r)
			i++
			if r2, ok2 := peek(0); ok2 && (r2 == '+' || r2 == '-') {
				sb.WriteRune(r2)
				i++
			}
			isInt = false
			for {
				r, ok := peek(0)
				if !ok || !isDigit(r) {
					break
				}
				sb.WriteRune(r)
				i++
			}
		}
	}

	return numScan{runes: i, text: sb.String(), isInt: isInt, repaired: repaired}, true
}

// parseNumber consumes a numeric literal, or backs off to an unquoted
// bareword if what looked like a number turns out to be immediately
// followed by a letter (e.g. a stray identifier like 3rd).
func (p *Parser) parseNumber() (value.Value, error) {
	ns, ok := p.scanNumber()
	if !ok {
		return p.parseBarewordOrKeyword()
	}
	if nr, ok := p.c.PeekAt(ns.runes); ok && isLetter(nr) {
		return p.parseBarewordOrKeyword()
	}

	if ns.repaired && p.opts.Strict {
		return nil, strictf(p.c, "malformed numeric literal")
	}
	p.c.SkipN(ns.runes)
	if ns.repaired {
		p.log.Add("normalized a malformed numeric literal", p.c)
	}
	return value.NewNumber(ns.text, ns.isInt), nil
}
