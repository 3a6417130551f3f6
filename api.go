// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair

import (
	"os"
	"strings"

	"go4.org/mem"

	"github.com/cflynn/jsonrepair/internal/engine"
	"github.com/cflynn/jsonrepair/value"
	"github.com/cflynn/jsonrepair/value/cursor"
)

// LogEntry records a single repair performed while decoding: the heuristic
// that fired and a window of surrounding input.
type LogEntry struct {
	Context string
	Window  string
}

func convertLog(l *engine.Log) []LogEntry {
	entries := l.Entries()
	if len(entries) == 0 {
		return nil
	}
	out := make([]LogEntry, len(entries))
	for i, e := range entries {
		out[i] = LogEntry{Context: e.Context, Window: e.Window}
	}
	return out
}

// RepairToValue decodes input into a value.Value tree, applying whatever
// repairs are necessary unless Options.Strict is set.
func RepairToValue(input string, opts Options) (value.Value, error) {
	v, _, err := RepairToValueWithLog(input, opts)
	return v, err
}

// RepairToValueWithLog is RepairToValue, additionally returning the repair
// log regardless of Options.Logging.
func RepairToValueWithLog(input string, opts Options) (value.Value, []LogEntry, error) {
	if !opts.SkipInitialValidation {
		if opts.Strict {
			// The comments and trailing commas hujson would standardize
			// are anomalies in strict mode, so only a conformant decode
			// may short-circuit the engine.
			if v, err := decodeConformant([]byte(input)); err == nil {
				return v, nil, nil
			}
		} else if v, ok := fastDecode([]byte(input)); ok {
			return v, nil, nil
		}
	}

	c := engine.NewCursorString(input)
	p := engine.NewParser(c, engine.Options{
		Strict:       opts.Strict,
		StreamStable: opts.StreamStable,
		FancyQuotes:  opts.FancyQuotes,
	})
	values, err := p.ParseDocument()
	if err != nil {
		return nil, convertLog(p.Log()), wrapStrictError(err)
	}

	var result value.Value
	if len(values) == 1 {
		result = values[0]
	} else {
		result = value.Array(values)
	}
	return result, convertLog(p.Log()), nil
}

// Repair decodes input and serializes the result back to JSON text,
// applying Options.Indent and Options.EnsureASCII to the output.
func Repair(input string, opts Options) (string, error) {
	s, _, err := RepairWithLog(input, opts)
	return s, err
}

// RepairWithLog is Repair, additionally returning the repair log
// regardless of Options.Logging.
func RepairWithLog(input string, opts Options) (string, []LogEntry, error) {
	v, log, err := RepairToValueWithLog(input, opts)
	if err != nil {
		return "", log, err
	}
	return Serialize(v, opts), log, nil
}

// Serialize renders v as JSON text honoring Options.Indent and
// Options.EnsureASCII. It is exported so collaborators (the CLI, the web
// demo) that already hold a value.Value can format it without re-parsing.
// The generic serializer delegated to here is deliberately not the
// engine's own concern; the engine produces a value tree and nothing else.
func Serialize(v value.Value, opts Options) string {
	var sb strings.Builder
	renderJSON(&sb, v, opts, 0)
	return sb.String()
}

func renderJSON(sb *strings.Builder, v value.Value, opts Options, depth int) {
	newline := func(n int) {
		if opts.Indent > 0 {
			sb.WriteByte('\n')
			sb.WriteString(strings.Repeat(" ", opts.Indent*n))
		}
	}
	switch t := v.(type) {
	case value.Object:
		if len(t) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteByte('{')
		for i, m := range t {
			if i > 0 {
				sb.WriteByte(',')
			}
			newline(depth + 1)
			sb.Write(value.QuoteOptions(mem.S(m.Key.Text()), opts.EnsureASCII))
			sb.WriteByte(':')
			if opts.Indent > 0 {
				sb.WriteByte(' ')
			}
			renderJSON(sb, m.Value, opts, depth+1)
		}
		newline(depth)
		sb.WriteByte('}')
	case value.Array:
		if len(t) == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				sb.WriteByte(',')
			}
			newline(depth + 1)
			renderJSON(sb, e, opts, depth+1)
		}
		newline(depth)
		sb.WriteByte(']')
	case value.String:
		sb.Write(value.QuoteOptions(mem.S(string(t)), opts.EnsureASCII))
	default:
		sb.WriteString(v.JSON())
	}
}

// Lookup decodes input and navigates to the value reached by path, using
// the same path element types as cursor.Cursor.Down (string object keys,
// int array/object indices, or a func(value.Text) bool key matcher). It
// saves a caller that only wants one field out of a repaired document from
// writing a type switch over the whole tree by hand.
func Lookup(input string, opts Options, path ...any) (value.Value, error) {
	v, err := RepairToValue(input, opts)
	if err != nil {
		return nil, err
	}
	return cursor.New(v).Down(path...).Get()
}

// LoadFile reads the whole file at path into memory and decodes it as
// RepairToValue does. It does not page the file through the engine's
// cursor, whatever the file's size.
func LoadFile(path string, opts Options) (value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return RepairToValue(string(data), opts)
}
