// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package engine

import "fmt"

// A LogEntry records a single repair: the heuristic that fired and a
// window of the surrounding input, for diagnostic display.
type LogEntry struct {
	Context string // name of the heuristic that fired
	Window  string // surrounding input at the point of repair
}

// A Log is an append-only list of repair records. It is bounded in content
// only by the size of the input; there is no rate limiting. A Log is not
// safe for concurrent use, matching the single-threaded parser it belongs
// to.
type Log struct {
	entries []LogEntry
}

// Add appends a repair record built from the given heuristic name and the
// current cursor window.
func (l *Log) Add(context string, c *Cursor) {
	l.entries = append(l.entries, LogEntry{Context: context, Window: c.Window()})
}

// Addf is like Add but formats the heuristic name with args.
func (l *Log) Addf(c *Cursor, format string, args ...any) {
	l.Add(fmt.Sprintf(format, args...), c)
}

// Entries returns the recorded log entries. The caller must not modify the
// returned slice.
func (l *Log) Entries() []LogEntry { return l.entries }

// Len reports the number of recorded repairs.
func (l *Log) Len() int { return len(l.entries) }
