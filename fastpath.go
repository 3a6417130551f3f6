// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/cflynn/jsonrepair/value"
)

// fastDecode attempts the two "this input wasn't actually damaged" paths
// before the caller falls back to the full heuristic engine: first a
// conformant decode of the input as-is, and failing that, a conformant
// decode of the input after hujson.Standardize has stripped JWCC comments
// and trailing commas. Comments and trailing commas are legitimate
// JSON-adjacent syntax, not the kind of damage the repair engine exists to
// guess at, so giving hujson first crack at them narrows the engine's job
// to genuine LLM malformation.
func fastDecode(data []byte) (value.Value, bool) {
	if v, err := decodeConformant(data); err == nil {
		return v, true
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, false
	}
	if v, err := decodeConformant(std); err == nil {
		return v, true
	}
	return nil, false
}

// decodeConformant decodes data with the standard library decoder, walking
// its token stream to build a value.Value tree that preserves object key
// order and numeric lexical form exactly as the repair engine's own
// container and number parsers do, so the two code paths produce
// indistinguishable trees for the same logical input.
func decodeConformant(data []byte) (value.Value, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("jsonrepair: trailing data after top-level value")
	}
	if _, err := dec.Token(); err != io.EOF && err != nil {
		return nil, err
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (value.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var obj value.Object
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("jsonrepair: non-string object key %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Put(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			var arr value.Array
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		}
	case json.Number:
		s := t.String()
		isInt := !strings.ContainsAny(s, ".eE")
		return value.NewNumber(s, isInt), nil
	case string:
		return value.String(t), nil
	case bool:
		return value.Bool(t), nil
	case nil:
		return value.Null, nil
	}
	return nil, fmt.Errorf("jsonrepair: unexpected token %v", tok)
}
