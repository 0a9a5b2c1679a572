// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

import (
	"errors"
	"fmt"
)

// Decoder errors
var (
	// ErrMalformedTag is returned when identifier octets are truncated or invalid.
	ErrMalformedTag = errors.New("ber: malformed tag")

	// ErrMalformedLength is returned when length octets are structurally invalid.
	ErrMalformedLength = errors.New("ber: malformed length")

	// ErrInsufficientData is returned when the buffer ends before the declared
	// length. This is what a partial capture looks like.
	ErrInsufficientData = errors.New("ber: insufficient data")

	// ErrUnexpectedTag is returned when the expected tag does not match the actual tag.
	ErrUnexpectedTag = errors.New("ber: unexpected tag")

	// ErrInvalidBoolean is returned when a boolean value has invalid length.
	ErrInvalidBoolean = errors.New("ber: invalid boolean encoding")

	// ErrInvalidInteger is returned when an integer value is malformed.
	ErrInvalidInteger = errors.New("ber: invalid integer encoding")

	// ErrInvalidNull is returned when a null value has non-zero length.
	ErrInvalidNull = errors.New("ber: invalid null encoding")

	// ErrInvalidOID is returned when an object identifier is malformed.
	ErrInvalidOID = errors.New("ber: invalid object identifier")

	// ErrInvalidBitString is returned when a bit string has a bad unused-bits octet.
	ErrInvalidBitString = errors.New("ber: invalid bit string encoding")
)

// DecodeError provides detailed information about a decoding failure.
type DecodeError struct {
	Offset  int    // Byte offset where the error occurred
	Message string // Human-readable error description
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ber: decode error at offset %d: %s: %v", e.Offset, e.Message, e.Err)
	}
	return fmt.Sprintf("ber: decode error at offset %d: %s", e.Offset, e.Message)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a new DecodeError with the given parameters.
func NewDecodeError(offset int, message string, err error) *DecodeError {
	return &DecodeError{
		Offset:  offset,
		Message: message,
		Err:     err,
	}
}

// TagMismatchError provides detailed information about a tag mismatch.
type TagMismatchError struct {
	Offset   int
	Expected Tag
	Actual   Tag
}

// Error implements the error interface.
func (e *TagMismatchError) Error() string {
	return fmt.Sprintf("ber: tag mismatch at offset %d: expected %s, got %s",
		e.Offset, e.Expected, e.Actual)
}

// Is allows TagMismatchError to match ErrUnexpectedTag with errors.Is.
func (e *TagMismatchError) Is(target error) bool {
	return target == ErrUnexpectedTag
}

// ErrorOffset returns the offset carried by err, or -1.
func ErrorOffset(err error) int {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Offset
	}
	var tm *TagMismatchError
	if errors.As(err, &tm) {
		return tm.Offset
	}
	return -1
}
