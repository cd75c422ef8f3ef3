package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")

	// ErrEmptyImage is returned when a decoded image has no pixels.
	ErrEmptyImage = errors.New("imageio: image has zero size")
)

// ReadFile reads the raw bytes of an image file.
func ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- image path is provided by the caller
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: read file: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return data, nil
}

// Decode decodes an image from raw bytes, auto-detecting the format.
// It returns the format name reported by the decoder.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("imageio: decode: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, "", ErrEmptyImage
	}
	return img, format, nil
}

// Load reads and decodes the image at path.
func Load(path string) (image.Image, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := Decode(data)
	return img, err
}

// ToRGBA returns a mutable RGBA copy of img with its origin moved to (0, 0).
// The source is never modified.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Encode writes img to w in the given format.
//
// Quality is on a 0-100 scale. JPEG uses it as the encoder quality, clamped
// to 1-100. PNG is lossless, so quality only selects the compression effort.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	switch f {
	case FormatJPEG:
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: clampQuality(quality)}); err != nil {
			return fmt.Errorf("imageio: encode JPEG: %w", err)
		}
	default:
		enc := png.Encoder{CompressionLevel: pngCompression(quality)}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("imageio: encode PNG: %w", err)
		}
	}
	return nil
}

// EncodeToBytes encodes img and returns the bytes.
func EncodeToBytes(img image.Image, f Format, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clampQuality(q int) int {
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}

// pngCompression maps a 0-100 quality to a zlib effort level.
func pngCompression(q int) png.CompressionLevel {
	switch {
	case q < 34:
		return png.BestSpeed
	case q < 67:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}
