// Package orient reads the EXIF orientation tag of an encoded image and
// rotates decoded pixels into their canonical, upright orientation.
//
// Only the pure rotations are corrected (tags 3, 6 and 8). Mirrored
// orientations and unknown values are passed through unchanged.
package orient

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// Orientation is the value of the EXIF Orientation tag (0x0112).
type Orientation uint16

// EXIF orientation values.
const (
	Unknown     Orientation = 0
	Normal      Orientation = 1
	FlipH       Orientation = 2
	Rotate180   Orientation = 3
	FlipV       Orientation = 4
	Transpose   Orientation = 5
	Rotate90CW  Orientation = 6
	Transverse  Orientation = 7
	Rotate90CCW Orientation = 8
)

// Errors returned by Read.
var (
	// ErrNoExif is returned when the data carries no EXIF block.
	ErrNoExif = errors.New("orient: no EXIF data")

	// ErrMalformed is returned when the EXIF block cannot be parsed.
	ErrMalformed = errors.New("orient: malformed EXIF data")
)

var (
	pngSignature = []byte("\x89PNG\r\n\x1a\n")
	exifHeader   = []byte("Exif\x00\x00")
)

// Read returns the orientation stored in a JPEG APP1 segment or a PNG eXIf
// chunk. Data without an orientation tag yields Normal and a nil error.
func Read(data []byte) (Orientation, error) {
	var x *exif.Exif
	var err error
	switch {
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8:
		x, err = exif.Decode(bytes.NewReader(data))
		if err != nil && !bytes.Contains(data, exifHeader) {
			return Unknown, ErrNoExif
		}
	case bytes.HasPrefix(data, pngSignature):
		var tiff []byte
		if tiff, err = pngExif(data); err != nil {
			return Unknown, err
		}
		x, err = exif.Decode(bytes.NewReader(tiff))
	default:
		return Unknown, ErrNoExif
	}
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return Unknown, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		if exif.IsTagNotPresentError(err) {
			return Normal, nil
		}
		return Unknown, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	v, err := tag.Int(0)
	if err != nil {
		return Unknown, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Orientation(v), nil
}

// Apply rotates img so that it displays upright for orientation o.
// Images whose orientation needs no rotation are returned unchanged.
func Apply(img image.Image, o Orientation) image.Image {
	switch o {
	case Rotate180:
		return imaging.Rotate180(img)
	case Rotate90CW:
		// Stored rotated 90 degrees counter-clockwise; turn it back clockwise.
		return imaging.Rotate270(img)
	case Rotate90CCW:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// String returns the string representation of the orientation.
func (o Orientation) String() string {
	switch o {
	case Normal:
		return "Normal"
	case FlipH:
		return "FlipH"
	case Rotate180:
		return "Rotate180"
	case FlipV:
		return "FlipV"
	case Transpose:
		return "Transpose"
	case Rotate90CW:
		return "Rotate90CW"
	case Transverse:
		return "Transverse"
	case Rotate90CCW:
		return "Rotate90CCW"
	default:
		return "Unknown"
	}
}

// pngExif returns the payload of the first eXIf chunk.
func pngExif(data []byte) ([]byte, error) {
	pos := len(pngSignature)
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos:]))
		kind := string(data[pos+4 : pos+8])
		start := pos + 8
		end := start + length
		if length < 0 || end+4 > len(data) {
			return nil, ErrMalformed
		}
		switch kind {
		case "eXIf":
			return data[start:end], nil
		case "IDAT", "IEND":
			// eXIf must precede the image data.
			return nil, ErrNoExif
		}
		pos = end + 4
	}
	return nil, ErrNoExif
}
