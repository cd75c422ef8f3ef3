package text

// Face represents a font face at a specific size.
// This is a lightweight object that can be created from a FontSource.
// Face is safe for concurrent use.
type Face interface {
	// Metrics returns the font metrics at this face's size.
	Metrics() Metrics

	// Advance returns the total advance width of the text in pixels.
	// Its signature matches MeasureFunc, so face.Advance can be passed to Wrap.
	Advance(text string) float64

	// HasGlyph reports whether the font has a glyph for the given rune.
	HasGlyph(r rune) bool

	// Source returns the FontSource this face was created from.
	Source() *FontSource

	// Size returns the size of this face in pixels.
	Size() float64

	// private prevents external implementation
	private()
}

// sourceFace is the internal implementation of Face.
type sourceFace struct {
	source *FontSource
	size   float64
	config faceConfig
}

// Metrics implements Face.Metrics.
func (f *sourceFace) Metrics() Metrics {
	return f.source.metrics(sizeToFixed(f.size), mapHinting(f.config.hinting))
}

// Advance implements Face.Advance.
func (f *sourceFace) Advance(text string) float64 {
	if text == "" {
		return 0
	}
	if f.config.shaping {
		if w, ok := shapedAdvance(f.source, text, f.size, f.config.language); ok {
			return w
		}
	}
	return f.source.advance(text, sizeToFixed(f.size), mapHinting(f.config.hinting))
}

// placedRune is one rune of a line and its pen position relative to the
// line origin, in pixels with y growing downward.
type placedRune struct {
	r    rune
	x, y float64
}

// placement positions the runes of a line. advance equals Face.Advance.
type placement struct {
	runes   []placedRune
	advance float64
}

// place positions every rune of text with the same advances Advance sums,
// so drawn lines are exactly as wide as they were measured.
func (f *sourceFace) place(text string) placement {
	if text == "" {
		return placement{}
	}
	if f.config.shaping {
		if p, ok := shapedPlacement(f.source, text, f.size, f.config.language); ok {
			return p
		}
	}
	return f.source.place(text, sizeToFixed(f.size), mapHinting(f.config.hinting))
}

// HasGlyph implements Face.HasGlyph.
func (f *sourceFace) HasGlyph(r rune) bool {
	return f.source.hasGlyph(r)
}

// Source implements Face.Source.
func (f *sourceFace) Source() *FontSource {
	return f.source
}

// Size implements Face.Size.
func (f *sourceFace) Size() float64 {
	return f.size
}

// private implements the Face interface.
func (f *sourceFace) private() {}
