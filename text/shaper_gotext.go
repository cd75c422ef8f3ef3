package text

import (
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// harfbuzzPool pools HarfbuzzShaper instances. A HarfbuzzShaper has internal
// mutable state and is not safe for concurrent use, but reusing one across
// sequential calls avoids reallocating its buffers.
var harfbuzzPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

// shape runs HarfBuzz over runes through go-text/typesetting.
// It reports false when the font cannot be parsed by go-text, in which case
// callers fall back to sfnt advances.
func shape(source *FontSource, runes []rune, size float64, lang string) (shaping.Output, bool) {
	f, err := source.goTextFont()
	if err != nil {
		return shaping.Output{}, false
	}

	// gotext.Face is not safe for concurrent use; NewFace is cheap.
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(f),
		Size:      sizeToFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage(lang),
	}

	hb := harfbuzzPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	harfbuzzPool.Put(hb)
	return out, true
}

// shapedAdvance measures text with HarfBuzz shaping.
func shapedAdvance(source *FontSource, text string, size float64, lang string) (float64, bool) {
	runes := []rune(text)
	if len(runes) == 0 {
		return 0, true
	}
	out, ok := shape(source, runes, size, lang)
	if !ok {
		return 0, false
	}
	return fixedToFloat(out.Advance), true
}

// shapedPlacement positions the runes of text at their shaped offsets.
// A cluster's spacing runes split the cluster advance evenly; nonspacing
// marks sit on the rune before them. The pen sums the same glyph advances
// as shapedAdvance.
func shapedPlacement(source *FontSource, text string, size float64, lang string) (placement, bool) {
	runes := []rune(text)
	out, ok := shape(source, runes, size, lang)
	if !ok {
		return placement{}, false
	}

	p := placement{runes: make([]placedRune, 0, len(runes))}
	var pen fixed.Int26_6
	cluster := -1
	for _, g := range out.Glyphs {
		// Later glyphs of a cluster only move the pen.
		if g.ClusterIndex != cluster && g.ClusterIndex < len(runes) {
			cluster = g.ClusterIndex
			end := min(cluster+max(g.RuneCount, 1), len(runes))
			members := runes[cluster:end]

			spacing := 0
			for _, r := range members {
				if !unicode.Is(unicode.Mn, r) {
					spacing++
				}
			}
			var step fixed.Int26_6
			if spacing > 1 {
				step = g.XAdvance / fixed.Int26_6(spacing)
			}

			x := pen + g.XOffset
			for i, r := range members {
				if i > 0 && !unicode.Is(unicode.Mn, r) {
					x += step
				}
				p.runes = append(p.runes, placedRune{r: r, x: fixedToFloat(x), y: -fixedToFloat(g.YOffset)})
			}
		}
		pen += g.XAdvance
	}
	p.advance = fixedToFloat(pen)
	return p, true
}

// detectScript returns the script of the first non-space rune.
// Mixed-script text is measured as a single run.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
