package text

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MeasureFunc returns the advance width of s in pixels.
// Face.Advance satisfies MeasureFunc.
type MeasureFunc func(s string) float64

// WrapOption configures Wrap.
type WrapOption func(*wrapConfig)

type wrapConfig struct {
	paragraphGap bool
}

// WithParagraphGap inserts one empty line between consecutive paragraphs.
func WithParagraphGap() WrapOption {
	return func(c *wrapConfig) {
		c.paragraphGap = true
	}
}

// Wrap breaks text into lines no wider than maxWidth using greedy word
// packing: words are added to the current line while the measured line still
// fits, and the first word that does not fit starts a new line.
//
// Hard line breaks (\n, \r\n, \r) split the text into paragraphs that are
// wrapped independently; an empty paragraph yields an empty line. Words are
// separated by spaces and runs of spaces collapse. A single word wider than
// maxWidth is emitted unbroken on its own line and may overflow.
//
// If maxWidth <= 0 or measure is nil, each paragraph becomes one line.
// Text is NFC-normalized first so combining sequences measure as drawn.
// Wrap is deterministic and keeps no state between calls.
func Wrap(text string, maxWidth float64, measure MeasureFunc, opts ...WrapOption) []string {
	if text == "" {
		return nil
	}

	var cfg wrapConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	normalized := norm.NFC.String(text)
	normalized = strings.ReplaceAll(normalized, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	paragraphs := strings.Split(normalized, "\n")

	lines := make([]string, 0, len(paragraphs))
	for i, para := range paragraphs {
		if i > 0 && cfg.paragraphGap {
			lines = append(lines, "")
		}
		lines = append(lines, wrapParagraph(para, maxWidth, measure)...)
	}
	return lines
}

// wrapParagraph wraps a single paragraph (no hard line breaks).
func wrapParagraph(para string, maxWidth float64, measure MeasureFunc) []string {
	words := strings.FieldsFunc(para, func(r rune) bool { return r == ' ' })
	if len(words) == 0 {
		return []string{""}
	}
	if maxWidth <= 0 || measure == nil {
		return []string{strings.Join(words, " ")}
	}

	lines := make([]string, 0, 4)
	line := ""
	for _, word := range words {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if measure(candidate) <= maxWidth {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		line = word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
