package watermark

import (
	"image"
	"testing"

	"github.com/gogpu/watermark/text"
)

func TestRect(t *testing.T) {
	r := Rect{MinX: 1, MinY: 2, MaxX: 11, MaxY: 7}
	if r.Width() != 10 || r.Height() != 5 {
		t.Errorf("size = %vx%v, want 10x5", r.Width(), r.Height())
	}
	if r.Empty() {
		t.Error("Empty() = true, want false")
	}
	if !(Rect{MinX: 3, MinY: 3, MaxX: 3, MaxY: 9}).Empty() {
		t.Error("zero-width rect should be empty")
	}
	if !r.Contains(Rect{MinX: 1, MinY: 2, MaxX: 5, MaxY: 7}) {
		t.Error("Contains() should accept a rect sharing edges")
	}
	if r.Contains(Rect{MinX: 0, MinY: 2, MaxX: 5, MaxY: 7}) {
		t.Error("Contains() should reject a rect sticking out")
	}

	u := r.Union(Rect{MinX: -1, MinY: 4, MaxX: 3, MaxY: 9})
	if want := (Rect{MinX: -1, MinY: 2, MaxX: 11, MaxY: 9}); u != want {
		t.Errorf("Union() = %+v, want %+v", u, want)
	}
	if got := (Rect{}).Union(r); got != r {
		t.Errorf("empty.Union(r) = %+v, want %+v", got, r)
	}

	e := r.Expand(Padding{Top: 1, Right: 2, Bottom: 3, Left: 4})
	if want := (Rect{MinX: -3, MinY: 1, MaxX: 13, MaxY: 10}); e != want {
		t.Errorf("Expand() = %+v, want %+v", e, want)
	}
}

func TestRectPixels(t *testing.T) {
	r := Rect{MinX: 1.5, MinY: -0.25, MaxX: 4.1, MaxY: 3}
	if got, want := r.Pixels(), image.Rect(1, -1, 5, 3); got != want {
		t.Errorf("Pixels() = %v, want %v", got, want)
	}
}

func TestLayoutText(t *testing.T) {
	face := text.Default().Face(24)
	m := face.Metrics()
	lines := []string{"Hello", "wide world line", "x"}

	l := LayoutText(lines, face, 10, 20, Padding{})

	if len(l.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3", len(l.Lines))
	}
	for i, line := range l.Lines {
		if line.X != 10 {
			t.Errorf("line %d X = %v, want 10", i, line.X)
		}
		if want := 20 + float64(i)*m.LineHeight(); line.Baseline != want {
			t.Errorf("line %d Baseline = %v, want %v", i, line.Baseline, want)
		}
		if line.Width != face.Advance(lines[i]) {
			t.Errorf("line %d Width = %v, want %v", i, line.Width, face.Advance(lines[i]))
		}
	}

	want := Rect{
		MinX: 10,
		MinY: 20 - m.Ascent,
		MaxX: 10 + face.Advance("wide world line"),
		MaxY: 20 + 3*m.LineHeight(),
	}
	if l.Background != want {
		t.Errorf("Background = %+v, want %+v", l.Background, want)
	}
}

func TestLayoutBackgroundPadding(t *testing.T) {
	face := text.Default().Face(18)
	pad := Padding{Top: 3, Right: 7, Bottom: 5, Left: 11}

	plain := LayoutText([]string{"abc"}, face, 40, 50, Padding{})
	padded := LayoutText([]string{"abc"}, face, 40, 50, pad)

	if got := plain.Background.Expand(pad); got != padded.Background {
		t.Errorf("padded background = %+v, want %+v", padded.Background, got)
	}
}

// TestLayoutBackgroundContainsText checks that the background covers every
// line box grown by the padding, for a range of inputs.
func TestLayoutBackgroundContainsText(t *testing.T) {
	pads := []Padding{{}, {Top: 4, Right: 8, Bottom: 4, Left: 8}, {Top: 0.5, Right: 0, Bottom: 12, Left: 3}}
	texts := []string{
		"Hello world",
		"The quick brown fox jumps over the lazy dog",
		"gjpqy descenders\nÅÉÎ ascenders",
	}

	for _, size := range []float64{10, 24, 61} {
		face := text.Default().Face(size)
		for _, s := range texts {
			lines := text.Wrap(s, 200, face.Advance)
			for _, pad := range pads {
				l := LayoutText(lines, face, 15, 30, pad)
				for _, line := range l.Lines {
					box := line.Bounds(l.Ascent, l.Descent).Expand(pad)
					if line.Text == "" {
						continue
					}
					if !l.Background.Contains(box) {
						t.Errorf("size %v, pad %+v: background %+v does not contain line %q box %+v",
							size, pad, l.Background, line.Text, box)
					}
				}
				if !l.Background.Contains(l.TextBounds().Expand(pad)) {
					t.Errorf("background %+v does not contain text bounds %+v", l.Background, l.TextBounds())
				}
			}
		}
	}
}

func TestLayoutEmpty(t *testing.T) {
	l := LayoutText(nil, text.Default().Face(12), 5, 5, Padding{})
	if len(l.Lines) != 0 {
		t.Errorf("len(Lines) = %d, want 0", len(l.Lines))
	}
	if !l.TextBounds().Empty() {
		t.Errorf("TextBounds() = %+v, want empty", l.TextBounds())
	}
}
