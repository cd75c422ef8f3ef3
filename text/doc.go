// Package text provides the font and line-breaking layer used to render
// watermark text.
//
// The pipeline follows a separation of concerns:
//
//   - FontSource: heavyweight, shared font resource (parses TTF/OTF data)
//   - Face: lightweight font instance at a specific size
//   - Wrap: greedy word wrapping against any width-measuring function
//
// # Example usage
//
//	source := text.Default() // embedded Go Regular
//	face := source.Face(24)
//
//	lines := text.Wrap("Hello world", 300, face.Advance)
//	for i, line := range lines {
//	    text.Draw(dst, line, face, 10, 20+float64(i)*face.Metrics().LineHeight(), color.White)
//	}
//
// # Measurement backends
//
// By default advances come from the sfnt tables through
// golang.org/x/image/font/sfnt, including pair kerning, which matches what
// Draw renders. WithShaping switches a face to HarfBuzz shaping through
// github.com/go-text/typesetting, which also accounts for GPOS kerning and
// ligatures.
package text
