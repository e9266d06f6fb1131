package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrLoadFailure signals that the catalog source was unreachable or unreadable.
	ErrLoadFailure = errors.New("catalog source load failure")
	// ErrMalformedDocument signals an unparsable catalog document.
	ErrMalformedDocument = errors.New("malformed catalog document")
	// ErrInvalidArgument signals a rejected request parameter.
	ErrInvalidArgument = errors.New("invalid argument")
)
