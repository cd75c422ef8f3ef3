package text

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestNewFontSource(t *testing.T) {
	s, err := NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatalf("NewFontSource() error = %v", err)
	}
	if got := s.Name(); got != "Go" {
		t.Errorf("Name() = %q, want %q", got, "Go")
	}
}

func TestNewFontSourceErrors(t *testing.T) {
	if _, err := NewFontSource(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("NewFontSource(nil) error = %v, want ErrEmptyFontData", err)
	}
	if _, err := NewFontSource([]byte("not a font")); err == nil {
		t.Error("NewFontSource(garbage) should fail")
	}
	if _, err := NewFontSourceFromFile(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Error("NewFontSourceFromFile(missing) should fail")
	}
}

func TestNewFontSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := NewFontSourceFromFile(path)
	if err != nil {
		t.Fatalf("NewFontSourceFromFile() error = %v", err)
	}
	if s.Face(12).Advance("x") <= 0 {
		t.Error("Advance(x) should be positive")
	}
}

func TestDefaultIsShared(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() should return the same FontSource")
	}
}

func TestFacePanicsOnCopy(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Face() on a copied FontSource should panic")
		}
	}()
	s, err := NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	copied := &FontSource{addr: s, font: s.font}
	_ = copied.Face(10)
}

func TestFaceMetrics(t *testing.T) {
	small := Default().Face(12).Metrics()
	large := Default().Face(48).Metrics()

	if small.Ascent <= 0 || small.Descent <= 0 {
		t.Fatalf("Metrics() = %+v, want positive ascent and descent", small)
	}
	if large.Ascent <= small.Ascent {
		t.Errorf("ascent at 48px (%v) should exceed ascent at 12px (%v)", large.Ascent, small.Ascent)
	}
	if got, want := large.LineHeight(), large.Ascent+large.Descent; got != want {
		t.Errorf("LineHeight() = %v, want %v", got, want)
	}
}

func TestFaceAdvance(t *testing.T) {
	face := Default().Face(24)

	if got := face.Advance(""); got != 0 {
		t.Errorf("Advance(\"\") = %v, want 0", got)
	}
	one := face.Advance("Hello")
	two := face.Advance("Hello Hello")
	if one <= 0 {
		t.Fatalf("Advance(Hello) = %v, want > 0", one)
	}
	if two <= 2*one {
		t.Errorf("Advance(Hello Hello) = %v, want more than twice %v", two, one)
	}
	if bigger := Default().Face(48).Advance("Hello"); bigger <= one {
		t.Errorf("Advance at 48px = %v, want more than %v", bigger, one)
	}
	if face.Size() != 24 {
		t.Errorf("Size() = %v, want 24", face.Size())
	}
	if face.Source() != Default() {
		t.Error("Source() should return the creating FontSource")
	}
}

func TestFaceHasGlyph(t *testing.T) {
	face := Default().Face(16)
	if !face.HasGlyph('A') {
		t.Error("HasGlyph('A') = false, want true")
	}
	if face.HasGlyph('\U0001F600') {
		t.Error("HasGlyph(emoji) = true, want false for Go Regular")
	}
}

func TestFaceShapedAdvance(t *testing.T) {
	plain := Default().Face(24)
	shaped := Default().Face(24, WithShaping(), WithLanguage("en"))

	p := plain.Advance("Watermark")
	s := shaped.Advance("Watermark")
	if s <= 0 {
		t.Fatalf("shaped Advance() = %v, want > 0", s)
	}
	// Both backends read the same hmtx advances; only kerning may differ.
	if diff := p - s; diff > 0.1*p || diff < -0.1*p {
		t.Errorf("shaped advance %v differs from plain %v by more than 10%%", s, p)
	}
}

func TestHintingString(t *testing.T) {
	tests := []struct {
		h    Hinting
		want string
	}{
		{HintingNone, "None"},
		{HintingVertical, "Vertical"},
		{HintingFull, "Full"},
		{Hinting(9), unknownStr},
	}
	for _, tt := range tests {
		if got := tt.h.String(); got != tt.want {
			t.Errorf("Hinting(%d).String() = %q, want %q", tt.h, got, tt.want)
		}
	}
}

func TestDraw(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 120, 40))
	face := Default().Face(24)

	if err := Draw(dst, "Hi", face, 5, 30, color.RGBA{R: 255, A: 255}); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	painted := 0
	for y := range 40 {
		for x := range 120 {
			if c := dst.RGBAAt(x, y); c.R > 0 {
				painted++
				if x < 5 {
					t.Fatalf("pixel painted left of the anchor at (%d,%d)", x, y)
				}
			}
		}
	}
	if painted == 0 {
		t.Error("Draw() painted no pixels")
	}
}

func TestDrawNoop(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if err := Draw(dst, "", Default().Face(10), 0, 5, color.Black); err != nil {
		t.Errorf("Draw(empty) error = %v", err)
	}
	if err := Draw(dst, "x", nil, 0, 5, color.Black); err != nil {
		t.Errorf("Draw(nil face) error = %v", err)
	}
}

// inkRight returns one past the rightmost column of dst with any red.
func inkRight(dst *image.RGBA) int {
	b := dst.Bounds()
	for x := b.Max.X - 1; x >= b.Min.X; x-- {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			if dst.RGBAAt(x, y).R > 0 {
				return x + 1
			}
		}
	}
	return b.Min.X
}

func TestDrawStaysWithinAdvance(t *testing.T) {
	line := strings.TrimSpace(strings.Repeat("AVATAR WAVE Ty ", 6))

	tests := []struct {
		name string
		face Face
	}{
		{"plain", Default().Face(40)},
		{"shaped", Default().Face(40, WithShaping())},
		{"shaped unhinted", Default().Face(40, WithShaping(), WithHinting(HintingNone))},
		{"plain unhinted", Default().Face(40, WithHinting(HintingNone))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const x = 10
			adv := tt.face.Advance(line)
			dst := image.NewRGBA(image.Rect(0, 0, int(adv)+200, 80))
			if err := Draw(dst, line, tt.face, x, 60, color.RGBA{R: 255, A: 255}); err != nil {
				t.Fatalf("Draw() error = %v", err)
			}

			right := inkRight(dst)
			if limit := x + adv + 1; float64(right) > limit {
				t.Errorf("ink reaches x=%d, measured line ends at %.2f", right, x+adv)
			}
			if float64(right) < x+adv-40 {
				t.Errorf("ink ends at x=%d, far short of measured end %.2f", right, x+adv)
			}
		})
	}
}

func TestPlacementMatchesAdvance(t *testing.T) {
	for _, opts := range [][]FaceOption{nil, {WithShaping()}} {
		face := Default().Face(32, opts...).(*sourceFace)
		text := "Tyrannosaurus WAVE"
		p := face.place(text)
		if p.advance != face.Advance(text) {
			t.Errorf("shaping=%v: placement advance %v, Advance %v", face.config.shaping, p.advance, face.Advance(text))
		}
		if len(p.runes) != len([]rune(text)) {
			t.Fatalf("shaping=%v: placed %d runes, want %d", face.config.shaping, len(p.runes), len([]rune(text)))
		}
		for i := 1; i < len(p.runes); i++ {
			if p.runes[i].x < p.runes[i-1].x {
				t.Errorf("shaping=%v: rune %d at %v left of rune %d at %v",
					face.config.shaping, i, p.runes[i].x, i-1, p.runes[i-1].x)
			}
		}
	}
}

// wrappedFace satisfies Face by embedding one.
type wrappedFace struct{ Face }

func TestDrawUnsupportedFace(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	err := Draw(dst, "x", wrappedFace{Default().Face(10)}, 0, 5, color.Black)
	if !errors.Is(err, ErrUnsupportedFace) {
		t.Errorf("Draw(wrapped face) error = %v, want ErrUnsupportedFace", err)
	}
}

func TestMeasure(t *testing.T) {
	face := Default().Face(20)
	w, h := Measure("abc", face)
	if w != face.Advance("abc") {
		t.Errorf("Measure width = %v, want %v", w, face.Advance("abc"))
	}
	if h != face.Metrics().LineHeight() {
		t.Errorf("Measure height = %v, want %v", h, face.Metrics().LineHeight())
	}
	if w, h := Measure("", face); w != 0 || h != 0 {
		t.Errorf("Measure(\"\") = (%v, %v), want (0, 0)", w, h)
	}
}
