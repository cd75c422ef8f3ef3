package text

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Draw renders text to a destination image.
// Position (x, y) is the baseline origin of the first glyph.
// Glyphs are placed with the advances Face.Advance measures, and their
// coverage is composited over dst with col.
func Draw(dst draw.Image, text string, face Face, x, y float64, col color.Color) error {
	if text == "" || face == nil {
		return nil
	}

	sf, ok := face.(*sourceFace)
	if !ok {
		return ErrUnsupportedFace
	}

	// opentype.Face keeps per-face scratch buffers, so each call gets its own.
	otFace, err := opentype.NewFace(sf.source.font, &opentype.FaceOptions{
		Size:    sf.size,
		DPI:     72,
		Hinting: mapHinting(sf.config.hinting),
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = otFace.Close()
	}()

	src := image.NewUniform(col)
	for _, g := range sf.place(text).runes {
		dot := fixed.Point26_6{
			X: fixed.Int26_6((x + g.x) * 64),
			Y: fixed.Int26_6((y + g.y) * 64),
		}
		dr, mask, maskp, _, _ := otFace.Glyph(dot, g.r)
		if !dr.Empty() {
			draw.DrawMask(dst, dr, src, image.Point{}, mask, maskp, draw.Over)
		}
	}
	return nil
}

// Measure returns the dimensions of text.
// Width is the horizontal advance, height is the face's line height.
func Measure(text string, face Face) (width, height float64) {
	if text == "" || face == nil {
		return 0, 0
	}
	return face.Advance(text), face.Metrics().LineHeight()
}
