package text

import (
	"bytes"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// parseFont parses TTF/OTF data with golang.org/x/image/font/opentype.
func parseFont(data []byte) (*opentype.Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return f, nil
}

// fontName returns the family name, falling back to the full name.
func fontName(f *opentype.Font) string {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(nil, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}

func newSfntBuffer() any { return new(sfnt.Buffer) }

func bytesReader(b []byte) *bytes.Reader { return bytes.NewReader(b) }

// metrics returns the scaled font metrics.
func (s *FontSource) metrics(ppem fixed.Int26_6, hinting font.Hinting) Metrics {
	buf := s.bufs.Get().(*sfnt.Buffer)
	defer s.bufs.Put(buf)

	m, err := s.font.Metrics(buf, ppem, hinting)
	if err != nil {
		return Metrics{}
	}

	// font.Metrics reports Descent as a positive distance below the baseline,
	// but some fonts store it negated.
	descent := fixedToFloat(m.Descent)
	if descent < 0 {
		descent = -descent
	}
	ascent := fixedToFloat(m.Ascent)

	return Metrics{
		Ascent:    ascent,
		Descent:   descent,
		LineGap:   fixedToFloat(m.Height) - ascent - descent,
		XHeight:   fixedToFloat(m.XHeight),
		CapHeight: fixedToFloat(m.CapHeight),
	}
}

// advance sums glyph advances and pair kerning for text, matching the pen
// movement of font.Drawer over an opentype.Face with the same scale and hinting.
func (s *FontSource) advance(text string, ppem fixed.Int26_6, hinting font.Hinting) float64 {
	return fixedToFloat(s.walk(text, ppem, hinting, nil))
}

// place returns the pen position of each rune of text on the same walk
// advance takes.
func (s *FontSource) place(text string, ppem fixed.Int26_6, hinting font.Hinting) placement {
	var p placement
	total := s.walk(text, ppem, hinting, func(r rune, pen fixed.Int26_6) {
		p.runes = append(p.runes, placedRune{r: r, x: fixedToFloat(pen)})
	})
	p.advance = fixedToFloat(total)
	return p
}

// walk moves a pen over text, kerning before each rune the way font.Drawer
// does, and calls visit (if non-nil) with each rune's pen position. It
// returns the final pen position.
func (s *FontSource) walk(text string, ppem fixed.Int26_6, hinting font.Hinting, visit func(rune, fixed.Int26_6)) fixed.Int26_6 {
	buf := s.bufs.Get().(*sfnt.Buffer)
	defer s.bufs.Put(buf)

	var pen fixed.Int26_6
	var prev sfnt.GlyphIndex
	first := true

	for _, r := range text {
		gid, err := s.font.GlyphIndex(buf, r)
		if err != nil {
			gid = 0
		}
		if !first {
			if k, err := s.font.Kern(buf, prev, gid, ppem, hinting); err == nil {
				pen += k
			}
		}
		if visit != nil {
			visit(r, pen)
		}
		if adv, err := s.font.GlyphAdvance(buf, gid, ppem, hinting); err == nil {
			pen += adv
		}
		prev, first = gid, false
	}

	return pen
}

// hasGlyph reports whether the font maps r to a real glyph.
func (s *FontSource) hasGlyph(r rune) bool {
	buf := s.bufs.Get().(*sfnt.Buffer)
	defer s.bufs.Put(buf)

	gid, err := s.font.GlyphIndex(buf, r)
	return err == nil && gid != 0
}

// sizeToFixed converts a pixel size to the ppem scale used by opentype.NewFace at 72 DPI.
func sizeToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(0.5 + size*64)
}

// fixedToFloat converts fixed.Int26_6 to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
