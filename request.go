package watermark

import "math"

// Padding is the space added around the text block when painting its
// background. Values are in pixels and must not be negative.
type Padding struct {
	Top, Right, Bottom, Left float64
}

func (p Padding) valid() bool {
	return finiteNonNegative(p.Top) && finiteNonNegative(p.Right) &&
		finiteNonNegative(p.Bottom) && finiteNonNegative(p.Left)
}

// TextRequest describes a text watermark.
type TextRequest struct {
	// FilePath is the source image. Required.
	FilePath string
	// Text is the watermark text. Required. Newlines start new paragraphs.
	Text string
	// X and Y anchor the text: X is the left edge and Y the baseline of
	// the first line.
	X, Y float64
	// TextSize is the font size in pixels. Must be positive.
	TextSize float64
	// Color is the text color.
	Color ARGB
	// BackgroundColor, when set, fills the padded box behind the text.
	BackgroundColor *ARGB
	// Padding expands the background box. Ignored without BackgroundColor,
	// except that it narrows the wrapping width.
	Padding Padding
	// Quality is the encoder quality, 0-100.
	Quality int
	// ImageFormat selects the output encoding; see ParseFormat.
	ImageFormat string
	// RotateUsingExif rotates the source upright according to its EXIF
	// orientation before drawing.
	RotateUsingExif bool
}

func (r *TextRequest) validate() bool {
	return r.FilePath != "" &&
		r.Text != "" &&
		finite(r.X) && finite(r.Y) &&
		finite(r.TextSize) && r.TextSize > 0 &&
		validQuality(r.Quality) &&
		r.ImageFormat != "" &&
		r.Padding.valid()
}

// ImageRequest describes an image watermark.
type ImageRequest struct {
	// FilePath is the source image. Required.
	FilePath string
	// WatermarkImagePath is the overlay image. Required.
	WatermarkImagePath string
	// X and Y are the top-left corner of the overlay.
	X, Y float64
	// WatermarkWidth and WatermarkHeight are the exact overlay size in
	// pixels. Both must be positive.
	WatermarkWidth, WatermarkHeight int
	// Quality is the encoder quality, 0-100.
	Quality int
	// ImageFormat selects the output encoding; see ParseFormat.
	ImageFormat string
}

func (r *ImageRequest) validate() bool {
	return r.FilePath != "" &&
		r.WatermarkImagePath != "" &&
		finite(r.X) && finite(r.Y) &&
		r.WatermarkWidth > 0 && r.WatermarkHeight > 0 &&
		validQuality(r.Quality) &&
		r.ImageFormat != ""
}

func validQuality(q int) bool { return q >= 0 && q <= 100 }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func finiteNonNegative(v float64) bool { return finite(v) && v >= 0 }
