package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrUnsupportedFace is returned by Draw for a Face not created by a FontSource.
	ErrUnsupportedFace = errors.New("text: unsupported face")
)
