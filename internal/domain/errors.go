package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrStorage indicates the persistence medium is unavailable or failing.
	ErrStorage = errors.New("storage failure")
	// ErrParse indicates a persisted or imported payload could not be decoded.
	ErrParse = errors.New("parse failure")
	// ErrValidation indicates an imported document has the wrong shape.
	ErrValidation = errors.New("validation failure")
)
