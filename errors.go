// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair

import (
	"errors"

	"github.com/cflynn/jsonrepair/internal/engine"
)

// A StrictError reports the first structural anomaly found while parsing
// with Options.Strict set. It is the direct descendant of the engine's
// internal error type, re-exported so callers outside this module never
// need to import internal/engine to use errors.As.
type StrictError struct {
	Pos    int
	Reason string
}

func (e *StrictError) Error() string {
	return (&engine.StrictError{Pos: e.Pos, Reason: e.Reason}).Error()
}

func wrapStrictError(err error) error {
	var se *engine.StrictError
	if errors.As(err, &se) {
		return &StrictError{Pos: se.Pos, Reason: se.Reason}
	}
	return err
}

// ErrEmptyInput is returned when the input contains no parseable character
// at all; it is the only terminal failure in non-strict mode.
var ErrEmptyInput = engine.ErrEmptyInput
