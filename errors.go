package celadon

import "errors"

var (
	// ErrSyntax is returned for malformed selectors and rule sources.
	ErrSyntax = errors.New("syntax error")

	// ErrAttribute is returned when a rule names an attribute a widget does
	// not expose, or one that is internal.
	ErrAttribute = errors.New("attribute error")

	// ErrValue is returned for attribute values, routes and options that
	// cannot be used.
	ErrValue = errors.New("value error")

	// ErrNotImplemented is returned when a widget is asked to measure its
	// content but does not know how.
	ErrNotImplemented = errors.New("not implemented")
)
