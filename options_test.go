package watermark

import (
	"testing"

	"github.com/gogpu/watermark/text"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.policy != ReplaceOriginal {
		t.Errorf("default policy = %v, want replace", o.policy)
	}
	if o.source != nil || o.fontFile != "" {
		t.Error("default options should not pick a font")
	}
	if o.shaping || o.paragraphGap {
		t.Error("shaping and paragraph gaps are off by default")
	}
	if a, b := o.newName(), o.newName(); a == "" || a == b {
		t.Errorf("newName() = %q, %q; want distinct non-empty names", a, b)
	}
}

func TestOptionsApply(t *testing.T) {
	src := text.Default()
	o := defaultOptions()
	for _, opt := range []Option{
		WithFont(src),
		WithFontFile("ignored.ttf"),
		WithShaping(true),
		WithOutputPolicy(NewFile),
		WithParagraphGap(true),
		withNameGenerator(func() string { return "n" }),
	} {
		opt(&o)
	}

	if o.source != src {
		t.Error("WithFont not applied")
	}
	if o.fontFile != "ignored.ttf" {
		t.Error("WithFontFile not applied")
	}
	if !o.shaping || !o.paragraphGap {
		t.Error("boolean options not applied")
	}
	if o.policy != NewFile {
		t.Errorf("policy = %v, want new", o.policy)
	}
	if o.newName() != "n" {
		t.Error("withNameGenerator not applied")
	}

	// WithFont wins over WithFontFile, so New does not try to open the file.
	w, err := New(WithFont(src), WithFontFile("ignored.ttf"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if w.Font() != src {
		t.Error("New() did not use the WithFont source")
	}
}

func TestParseOutputPolicy(t *testing.T) {
	tests := []struct {
		in   string
		want OutputPolicy
		ok   bool
	}{
		{"", ReplaceOriginal, true},
		{"replace", ReplaceOriginal, true},
		{"new", NewFile, true},
		{"rename", ReplaceOriginal, false},
	}
	for _, tt := range tests {
		got, ok := ParseOutputPolicy(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseOutputPolicy(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if NewFile.String() != "new" || ReplaceOriginal.String() != "replace" {
		t.Error("OutputPolicy.String() mismatch")
	}
}
