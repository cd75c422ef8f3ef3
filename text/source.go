package text

import (
	"fmt"
	"os"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontSource represents a loaded font file.
// One FontSource can create multiple Face instances at different sizes.
// FontSource is heavyweight and should be shared across the application.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection. It must point to the FontSource itself.
	addr *FontSource

	data []byte
	font *opentype.Font
	name string

	// bufs pools sfnt.Buffer values; sfnt.Font is read-only but its
	// methods need scratch space.
	bufs sync.Pool

	// shaped is the go-text parse of data, created on first shaped measurement.
	shapedOnce sync.Once
	shaped     *gotext.Font
	shapedErr  error
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	f, err := parseFont(dataCopy)
	if err != nil {
		return nil, err
	}

	s := &FontSource{
		data: dataCopy,
		font: f,
	}
	s.addr = s
	s.bufs.New = newSfntBuffer
	s.name = fontName(f)

	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}

	return NewFontSource(data)
}

// defaultSource parses the embedded Go Regular font once.
var defaultSource = sync.OnceValue(func() *FontSource {
	s, err := NewFontSource(goregular.TTF)
	if err != nil {
		panic("text: embedded Go Regular font is invalid: " + err.Error())
	}
	return s
})

// Default returns the shared FontSource for the embedded Go Regular font.
func Default() *FontSource {
	return defaultSource()
}

// Face creates a Face at the specified size in pixels.
// Multiple faces can be created from the same FontSource.
//
// Panics if s is nil (e.g. when the NewFontSourceFromFile error was ignored).
func (s *FontSource) Face(size float64, opts ...FaceOption) Face {
	if s == nil {
		panic("text: FontSource is nil; check the error from NewFontSourceFromFile")
	}
	s.copyCheck()

	config := defaultFaceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &sourceFace{
		source: s,
		size:   size,
		config: config,
	}
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// goTextFont returns the go-text parse of the font data, parsing on first use.
// The returned *gotext.Font is read-only and safe for concurrent use.
func (s *FontSource) goTextFont() (*gotext.Font, error) {
	s.shapedOnce.Do(func() {
		face, err := gotext.ParseTTF(bytesReader(s.data))
		if err != nil {
			s.shapedErr = fmt.Errorf("text: failed to parse font for shaping: %w", err)
			return
		}
		s.shaped = face.Font
	})
	return s.shaped, s.shapedErr
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}
