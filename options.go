package watermark

import (
	"github.com/google/uuid"

	"github.com/gogpu/watermark/text"
)

// OutputPolicy decides where a result is written.
type OutputPolicy uint8

const (
	// ReplaceOriginal writes dir/<name>.<ext> next to the source, where
	// <name> is the source name without its extension, and removes the
	// source when that path differs from it.
	ReplaceOriginal OutputPolicy = iota

	// NewFile writes dir/<random uuid>.<ext> next to the source and leaves
	// the source untouched.
	NewFile
)

// String returns the string representation of the policy.
func (p OutputPolicy) String() string {
	switch p {
	case ReplaceOriginal:
		return "replace"
	case NewFile:
		return "new"
	default:
		return "unknown"
	}
}

// ParseOutputPolicy parses "replace" or "new". It reports false for any
// other value.
func ParseOutputPolicy(s string) (OutputPolicy, bool) {
	switch s {
	case "", "replace":
		return ReplaceOriginal, true
	case "new":
		return NewFile, true
	default:
		return ReplaceOriginal, false
	}
}

// Option configures a Watermarker during creation.
//
// Example:
//
//	w, err := watermark.New(
//	    watermark.WithFontFile("Roboto-Regular.ttf"),
//	    watermark.WithOutputPolicy(watermark.NewFile),
//	)
type Option func(*options)

// options holds optional configuration for a Watermarker.
type options struct {
	source       *text.FontSource
	fontFile     string
	shaping      bool
	policy       OutputPolicy
	paragraphGap bool
	newName      func() string
}

// defaultOptions returns the default Watermarker options.
func defaultOptions() options {
	return options{
		policy:  ReplaceOriginal,
		newName: uuid.NewString,
	}
}

// WithFont sets the font used for text watermarks.
// The default is the embedded Go Regular font.
func WithFont(s *text.FontSource) Option {
	return func(o *options) {
		o.source = s
	}
}

// WithFontFile loads the text font from a TTF/OTF file when New runs.
// It is ignored when WithFont is also given.
func WithFontFile(path string) Option {
	return func(o *options) {
		o.fontFile = path
	}
}

// WithShaping measures text with HarfBuzz shaping, which accounts for GPOS
// kerning and ligatures when breaking lines.
func WithShaping(enabled bool) Option {
	return func(o *options) {
		o.shaping = enabled
	}
}

// WithOutputPolicy sets where results are written. The default is
// ReplaceOriginal.
func WithOutputPolicy(p OutputPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithParagraphGap inserts a blank line between paragraphs of text
// watermarks.
func WithParagraphGap(enabled bool) Option {
	return func(o *options) {
		o.paragraphGap = enabled
	}
}

// withNameGenerator overrides the random file name source used by NewFile.
func withNameGenerator(f func() string) Option {
	return func(o *options) {
		o.newName = f
	}
}
