// Package imageio decodes source images and encodes watermarked results.
//
// Decoding accepts every format registered with the image package. Besides
// the standard PNG, JPEG and GIF decoders, this package registers BMP, TIFF
// and WebP from golang.org/x/image. Encoding is limited to JPEG and PNG.
package imageio

import "strings"

// Format is an output encoding.
type Format uint8

const (
	// FormatPNG is lossless PNG. It is the fallback for any unrecognized name.
	FormatPNG Format = iota

	// FormatJPEG is baseline JPEG.
	FormatJPEG
)

// ParseFormat resolves an output format name. The match is case-insensitive:
// "jpeg" selects FormatJPEG and anything else selects FormatPNG.
func ParseFormat(name string) Format {
	if strings.EqualFold(strings.TrimSpace(name), "jpeg") {
		return FormatJPEG
	}
	return FormatPNG
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpeg"
	}
	return "png"
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "PNG"
	case FormatJPEG:
		return "JPEG"
	default:
		return "Unknown"
	}
}
