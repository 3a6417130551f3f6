// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package engine

import "fmt"

// A StrictError reports the first structural anomaly encountered while
// parsing in strict mode. Unlike a logged repair, a StrictError unwinds
// the whole parse.
type StrictError struct {
	Pos    int    // byte offset of the anomaly
	Reason string // human-readable description of the anomaly
}

// Error satisfies the error interface.
func (e *StrictError) Error() string {
	return fmt.Sprintf("strict mode: at byte %d: %s", e.Pos, e.Reason)
}

// strictf constructs a *StrictError anchored at the cursor's current
// position with a formatted reason.
func strictf(c *Cursor, format string, args ...any) *StrictError {
	return &StrictError{Pos: c.Pos(), Reason: fmt.Sprintf(format, args...)}
}

// ErrEmptyInput is returned when no parseable character remains in the
// input at all: the only terminal failure in non-strict mode.
var ErrEmptyInput = fmt.Errorf("empty input")
