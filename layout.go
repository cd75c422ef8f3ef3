package watermark

import (
	"image"
	"math"

	"github.com/gogpu/watermark/text"
)

// Rect is an axis-aligned rectangle in image coordinates (y grows down).
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the height of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.MinX >= r.MaxX || r.MinY >= r.MaxY }

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.MinX >= r.MinX && o.MinY >= r.MinY && o.MaxX <= r.MaxX && o.MaxY <= r.MaxY
}

// Union returns the smallest rectangle containing r and o.
// An empty rectangle does not contribute.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Expand grows r outward by the padding.
func (r Rect) Expand(p Padding) Rect {
	return Rect{
		MinX: r.MinX - p.Left,
		MinY: r.MinY - p.Top,
		MaxX: r.MaxX + p.Right,
		MaxY: r.MaxY + p.Bottom,
	}
}

// Pixels returns the integer rectangle covering r: minimums are floored and
// maximums are ceiled, so every partially covered pixel is included.
func (r Rect) Pixels() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.MinX)),
		int(math.Floor(r.MinY)),
		int(math.Ceil(r.MaxX)),
		int(math.Ceil(r.MaxY)),
	)
}

// Line is one positioned line of wrapped text.
type Line struct {
	Text string
	// X is the left edge and Baseline the baseline y of the line.
	X, Baseline float64
	// Width is the measured advance of Text.
	Width float64
}

// Bounds returns the line box: its advance horizontally and ascent to
// descent vertically.
func (l Line) Bounds(ascent, descent float64) Rect {
	return Rect{
		MinX: l.X,
		MinY: l.Baseline - ascent,
		MaxX: l.X + l.Width,
		MaxY: l.Baseline + descent,
	}
}

// Layout is a block of wrapped lines with its background box.
type Layout struct {
	Lines []Line
	// Ascent and Descent are the face metrics used for every line.
	Ascent, Descent float64
	// LineHeight is the baseline-to-baseline distance.
	LineHeight float64
	// Background is the padded box behind the text block.
	Background Rect
}

// LayoutText positions lines left-aligned at x, with the first baseline at y
// and each following baseline one line height (ascent plus descent) lower.
//
// The background box spans from (x - pad.Left, y - ascent - pad.Top) to
// (x + widest line + pad.Right, y + lines*lineHeight + pad.Bottom), which
// contains every line box expanded by the padding.
func LayoutText(lines []string, face text.Face, x, y float64, pad Padding) Layout {
	m := face.Metrics()
	lineHeight := m.LineHeight()

	l := Layout{
		Lines:      make([]Line, len(lines)),
		Ascent:     m.Ascent,
		Descent:    m.Descent,
		LineHeight: lineHeight,
	}

	var maxWidth float64
	for i, s := range lines {
		w := face.Advance(s)
		maxWidth = math.Max(maxWidth, w)
		l.Lines[i] = Line{
			Text:     s,
			X:        x,
			Baseline: y + float64(i)*lineHeight,
			Width:    w,
		}
	}

	l.Background = Rect{
		MinX: x - pad.Left,
		MinY: y - m.Ascent - pad.Top,
		MaxX: x + maxWidth + pad.Right,
		MaxY: y + float64(len(lines))*lineHeight + pad.Bottom,
	}
	return l
}

// TextBounds returns the union of all line boxes, without padding.
func (l Layout) TextBounds() Rect {
	var r Rect
	for _, line := range l.Lines {
		r = r.Union(line.Bounds(l.Ascent, l.Descent))
	}
	return r
}
