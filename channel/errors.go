package channel

import (
	"errors"

	"github.com/gogpu/watermark"
)

// ErrNotImplemented is returned for methods the handler does not know.
var ErrNotImplemented = errors.New("channel: not implemented")

// Error is a failed call as reported to the host.
type Error struct {
	Code    watermark.Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Code.String() + ": " + e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the wire code for err. Errors that carry no code map to
// UNKNOWN_ERROR.
func CodeOf(err error) watermark.Code {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return watermark.CodeOf(err)
}

func message(code watermark.Code) string {
	switch code {
	case watermark.CodeArgument:
		return "Missing or invalid arguments"
	case watermark.CodeRead:
		return "Error reading image"
	case watermark.CodeProcessing:
		return "Error processing image"
	case watermark.CodeWrite:
		return "Error writing file"
	default:
		return "Unknown error"
	}
}

func callError(err error) *Error {
	code := watermark.CodeOf(err)
	return &Error{Code: code, Message: message(code), Err: err}
}

func argumentError(method string) *Error {
	return callError(&watermark.Error{Code: watermark.CodeArgument, Op: method, Err: watermark.ErrInvalidArguments})
}
