// Package errs defines the closed set of failures surfaced by the collaborators
// around the simulation core: file I/O, document decoding and the rendering
// backend.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an Error
type Kind int

const (
	KindIO Kind = iota + 1
	KindDecode
	KindBackend
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindDecode:
		return "decode"
	case KindBackend:
		return "backend"
	default:
		return "unknown"
	}
}

// Error is the failure type returned by loaders and front-ends
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s failure: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s failure: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, errs.ErrDecode) works
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Err == nil && t.Op == "" && t.Kind == e.Kind
}

var (
	ErrIO      = &Error{Kind: KindIO}
	ErrDecode  = &Error{Kind: KindDecode}
	ErrBackend = &Error{Kind: KindBackend}
)

// IO wraps a file or device failure
func IO(op string, err error) error {
	return wrap(KindIO, op, err)
}

// Decode wraps a malformed document failure
func Decode(op string, err error) error {
	return wrap(KindDecode, op, err)
}

// Backend wraps a rendering backend failure
func Backend(op string, err error) error {
	return wrap(KindBackend, op, err)
}

// KindOf returns the kind of the first *Error in err's chain, or 0
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
