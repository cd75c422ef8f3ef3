package watermark

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/watermark/text"
)

// Canvas is the drawing capability set the compositor needs.
// Implementations own a mutable raster; the compositor never touches pixels
// directly.
type Canvas interface {
	// Bounds returns the raster size, with its origin at (0, 0).
	Bounds() image.Rectangle

	// FillRect composites a solid color over r.
	FillRect(r Rect, c color.Color)

	// DrawText draws s with its baseline origin at (x, y).
	DrawText(s string, face text.Face, x, y float64, c color.Color) error

	// DrawImage scales img to exactly r and composites it over the raster.
	DrawImage(img image.Image, r image.Rectangle)

	// Image returns the current raster.
	Image() image.Image
}

// rasterCanvas is the software Canvas over an *image.RGBA.
type rasterCanvas struct {
	dst    *image.RGBA
	scaler xdraw.Interpolator
}

// NewRasterCanvas returns a Canvas drawing into dst. Overlays are scaled
// with Catmull-Rom resampling.
func NewRasterCanvas(dst *image.RGBA) Canvas {
	return &rasterCanvas{dst: dst, scaler: xdraw.CatmullRom}
}

func (c *rasterCanvas) Bounds() image.Rectangle {
	return c.dst.Bounds()
}

func (c *rasterCanvas) FillRect(r Rect, col color.Color) {
	area := r.Pixels().Intersect(c.dst.Bounds())
	if area.Empty() {
		return
	}
	draw.Draw(c.dst, area, image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *rasterCanvas) DrawText(s string, face text.Face, x, y float64, col color.Color) error {
	return text.Draw(c.dst, s, face, x, y, col)
}

func (c *rasterCanvas) DrawImage(img image.Image, r image.Rectangle) {
	if r.Empty() || !r.Overlaps(c.dst.Bounds()) {
		return
	}
	// Scale clips to the destination bounds itself.
	c.scaler.Scale(c.dst, r, img, img.Bounds(), xdraw.Over, nil)
}

func (c *rasterCanvas) Image() image.Image {
	return c.dst
}
