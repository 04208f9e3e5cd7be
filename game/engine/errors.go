package engine

import (
	"errors"
	"fmt"
)

// Maze loading failures. Every error returned by Parse or LoadFile matches
// exactly one of the first four with errors.Is.
var (
	ErrNotFound         = errors.New("maze source not found")
	ErrMalformedFormat  = errors.New("malformed maze format")
	ErrSizeMismatch     = errors.New("maze size mismatch")
	ErrInvalidCharacter = errors.New("invalid maze character")

	ErrMarkerCount      = fmt.Errorf("%w: maze needs exactly one start and one exit", ErrMalformedFormat)
	ErrUnexpectedSymbol = errors.New("unexpected symbol in validated maze")
	ErrInvalidDirection = errors.New("invalid direction")
)

// ParseError carries the location of a maze file problem. Line and Column are
// 1-based; zero means the location does not apply.
type ParseError struct {
	Kind   error
	Line   int
	Column int
	Detail string
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("%v at line %d, column %d: %s", e.Kind, e.Line, e.Column, e.Detail)
	case e.Line > 0:
		return fmt.Sprintf("%v at line %d: %s", e.Kind, e.Line, e.Detail)
	default:
		return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// KindOf returns the sentinel kind of a maze loading error, or nil when err is
// not one of them.
func KindOf(err error) error {
	for _, kind := range []error{ErrNotFound, ErrMalformedFormat, ErrSizeMismatch, ErrInvalidCharacter} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// KindName returns a short machine-friendly name for a maze loading error
func KindName(err error) string {
	switch KindOf(err) {
	case ErrNotFound:
		return "not_found"
	case ErrMalformedFormat:
		return "malformed_format"
	case ErrSizeMismatch:
		return "size_mismatch"
	case ErrInvalidCharacter:
		return "invalid_character"
	}
	return ""
}

// DirectionError reports input that does not name a direction
type DirectionError struct {
	Input string
}

func (e *DirectionError) Error() string {
	return fmt.Sprintf("%v: %q (use up, down, left, right or w, a, s, d)", ErrInvalidDirection, e.Input)
}

func (e *DirectionError) Unwrap() error {
	return ErrInvalidDirection
}
