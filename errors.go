package watermark

import (
	"errors"
	"fmt"
)

// Code categorizes a failed watermark operation.
type Code uint8

const (
	// CodeUnknown is any failure outside the other categories.
	CodeUnknown Code = iota

	// CodeArgument means a required argument was missing or invalid.
	// It is reported before any file is read.
	CodeArgument

	// CodeRead means a source or overlay image could not be read or decoded.
	CodeRead

	// CodeProcessing means drawing, scaling or encoding failed.
	CodeProcessing

	// CodeWrite means the result could not be written to disk.
	CodeWrite
)

// String returns the wire name of the code, as reported to method-call clients.
func (c Code) String() string {
	switch c {
	case CodeArgument:
		return "ARGUMENT_ERROR"
	case CodeRead:
		return "READ_ERROR"
	case CodeProcessing:
		return "PROCESSING_ERROR"
	case CodeWrite:
		return "WRITE_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// ErrInvalidArguments is the single, generic validation failure.
// It deliberately carries no per-field detail.
var ErrInvalidArguments = errors.New("watermark: missing or invalid arguments")

// Error is returned by every watermark operation.
type Error struct {
	// Code is the failure category.
	Code Code
	// Op is the operation name, "addTextWatermark" or "addImageWatermark".
	Op string
	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the category of err, or CodeUnknown when err does not
// wrap an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

func newError(code Code, op string, err error) *Error {
	return &Error{Code: code, Op: op, Err: err}
}
