package watermark

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestCodeString(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeUnknown, "UNKNOWN_ERROR"},
		{CodeArgument, "ARGUMENT_ERROR"},
		{CodeRead, "READ_ERROR"},
		{CodeProcessing, "PROCESSING_ERROR"},
		{CodeWrite, "WRITE_ERROR"},
		{Code(200), "UNKNOWN_ERROR"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("Code(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestErrorWrapping(t *testing.T) {
	err := newError(CodeRead, opAddText, fmt.Errorf("imageio: read file: %w", fs.ErrNotExist))

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false, want true")
	}
	if got := CodeOf(err); got != CodeRead {
		t.Errorf("CodeOf() = %v, want READ_ERROR", got)
	}
	if got := CodeOf(fmt.Errorf("outer: %w", err)); got != CodeRead {
		t.Errorf("CodeOf(wrapped) = %v, want READ_ERROR", got)
	}
	if got := CodeOf(errors.New("plain")); got != CodeUnknown {
		t.Errorf("CodeOf(plain) = %v, want UNKNOWN_ERROR", got)
	}
	if got := CodeOf(nil); got != CodeUnknown {
		t.Errorf("CodeOf(nil) = %v, want UNKNOWN_ERROR", got)
	}
}

func TestErrorMessage(t *testing.T) {
	err := newError(CodeArgument, opAddImage, ErrInvalidArguments)
	want := "addImageWatermark: ARGUMENT_ERROR: watermark: missing or invalid arguments"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	bare := &Error{Code: CodeWrite, Err: errors.New("disk full")}
	if got := bare.Error(); got != "WRITE_ERROR: disk full" {
		t.Errorf("Error() = %q", got)
	}
}
