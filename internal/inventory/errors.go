package inventory

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes catalog errors.
type ErrorCode string

const (
	// ErrCodeValidation indicates the caller supplied an invalid value:
	// a negative quantity, a duplicate SKU, or text that is not a number.
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeNotFound indicates the referenced SKU is not in the catalog.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodePersistence indicates loading or saving the catalog failed:
	// missing or unreadable storage, malformed content, or an I/O error.
	ErrCodePersistence ErrorCode = "PERSISTENCE"
)

// Error is the single error type returned by catalog operations.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op names the operation that failed ("add", "adjust", "load", ...).
	Op string

	// SKU identifies the affected item, if any.
	SKU string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Op)
	if e.SKU != "" {
		msg += fmt.Sprintf(" %q", e.SKU)
	}
	msg += ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the code of the outermost *Error in err's chain, or ""
// when err carries none.
func CodeOf(err error) ErrorCode {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Code
	}
	return ""
}

// IsValidation reports whether err is a VALIDATION error.
func IsValidation(err error) bool { return CodeOf(err) == ErrCodeValidation }

// IsNotFound reports whether err is a NOT_FOUND error.
func IsNotFound(err error) bool { return CodeOf(err) == ErrCodeNotFound }

// IsPersistence reports whether err is a PERSISTENCE error.
func IsPersistence(err error) bool { return CodeOf(err) == ErrCodePersistence }

func validationError(op, sku, format string, args ...any) *Error {
	return &Error{Code: ErrCodeValidation, Op: op, SKU: sku, Message: fmt.Sprintf(format, args...)}
}

func notFoundError(op, sku string) *Error {
	return &Error{Code: ErrCodeNotFound, Op: op, SKU: sku, Message: "item not found"}
}

func persistenceError(op string, err error, format string, args ...any) *Error {
	return &Error{Code: ErrCodePersistence, Op: op, Message: fmt.Sprintf(format, args...), Err: err}
}

// asPersistence converts a backend failure into a PERSISTENCE error.
// Errors that already carry that code pass through unchanged.
func asPersistence(op string, err error) error {
	if IsPersistence(err) {
		return err
	}
	return persistenceError(op, err, "backend failure")
}
