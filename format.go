package watermark

import "github.com/gogpu/watermark/internal/imageio"

// Format is an output encoding.
type Format = imageio.Format

// Output formats.
const (
	PNG  = imageio.FormatPNG
	JPEG = imageio.FormatJPEG
)

// ParseFormat resolves an output format name. The match is case-insensitive:
// "jpeg" selects JPEG and anything else, including "jpg", selects PNG.
func ParseFormat(name string) Format {
	return imageio.ParseFormat(name)
}
