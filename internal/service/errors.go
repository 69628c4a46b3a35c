package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a lookup key did not resolve. Every kind ends up
// as the same 404 response; the kind only drives logging and tests.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindFetch
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindFetch:
		return "fetch_error"
	case KindDecode:
		return "decode_error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	// ErrEmptyKey is returned for the root path, which never names a link.
	ErrEmptyKey = errors.New("empty lookup key")

	// ErrInvalidUTF8 is returned when stored content is not UTF-8 text.
	ErrInvalidUTF8 = errors.New("link content is not valid UTF-8")

	// ErrEmptyURL is returned when stored content is blank after trimming.
	ErrEmptyURL = errors.New("link content is empty")
)

// ResolveError is a failed lookup. Its message is the description of the
// underlying cause.
type ResolveError struct {
	Kind ErrorKind
	Key  string
	Err  error
}

func (e *ResolveError) Error() string {
	return e.Err.Error()
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or 0 when err is not a ResolveError.
func KindOf(err error) ErrorKind {
	var resolveErr *ResolveError
	if errors.As(err, &resolveErr) {
		return resolveErr.Kind
	}
	return 0
}
