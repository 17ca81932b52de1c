package report

import (
	"errors"
	"fmt"
)

// ErrMissingInput is returned when a report is requested without a ledger source.
var ErrMissingInput = errors.New("no ledger data supplied")

// ErrorKind names the error taxonomy exposed to callers.
type ErrorKind string

const (
	KindMissingInput   ErrorKind = "MissingInput"
	KindMalformedInput ErrorKind = "MalformedInput"
)

// MalformedInputError describes a ledger row or column that cannot be turned
// into a valid trade. Line is 0 when the problem is not tied to a data row
// (for example a missing header column). Source is set when the row came
// from the ledger store, where line numbers repeat across files.
type MalformedInputError struct {
	Source string
	Line   int
	Column string
	Value  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	msg := "malformed input"
	if e.Source != "" {
		msg += fmt.Sprintf(" in %s", e.Source)
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(" column %q", e.Column)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" (value %q)", e.Value)
	}
	return msg + ": " + e.Reason
}

// Malformed builds a MalformedInputError.
func Malformed(line int, column, value, reason string) *MalformedInputError {
	return &MalformedInputError{Line: line, Column: column, Value: value, Reason: reason}
}

// KindOf maps an error returned by this package (possibly wrapped) to its kind.
// It returns "" for errors outside the taxonomy.
func KindOf(err error) ErrorKind {
	var mErr *MalformedInputError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingInput):
		return KindMissingInput
	case errors.As(err, &mErr):
		return KindMalformedInput
	default:
		return ""
	}
}
