package bp

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// caller input was rejected, nothing was written
	KindValidation
	// a stored reading could not be parsed while building a report
	KindParse
	// the reading store or the object store failed
	KindDependency
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindParse:
		return "parse"
	case KindDependency:
		return "dependency"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind ErrorKind
	// Code is a stable label for logs and metrics
	Code string
	// Message is safe to return to the caller for validation errors
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	ErrMalformedInput = &Error{
		Kind:    KindValidation,
		Code:    "malformed_input",
		Message: "Invalid JSON in request body",
	}
	ErrMissingFields = &Error{
		Kind:    KindValidation,
		Code:    "missing_fields",
		Message: "Missing required fields",
	}
	ErrInvalidDatetime = &Error{
		Kind:    KindValidation,
		Code:    "invalid_datetime",
		Message: "Invalid datetime format. Use 'DD-MM-YYYY HH:MM'",
	}
	ErrWrongType = &Error{
		Kind:    KindValidation,
		Code:    "wrong_type",
		Message: "Systole and dystole must be integers",
	}
)

func dependencyError(op string, err error) *Error {
	return &Error{Kind: KindDependency, Code: "dependency_failure", Message: op, Err: err}
}

func parseError(readingID string, err error) *Error {
	return &Error{
		Kind:    KindParse,
		Code:    "stored_datetime",
		Message: fmt.Sprintf("reading %s has an unparseable reading_datetime", readingID),
		Err:     err,
	}
}

// KindOf reports the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
