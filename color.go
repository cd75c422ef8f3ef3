package watermark

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ARGB is a packed 32-bit color, 0xAARRGGBB, the layout of Flutter's
// Color.value and Android's @ColorInt. Every color in a request uses it.
// An alpha byte of zero means fully transparent.
type ARGB uint32

// RGB returns the opaque ARGB color for a packed 0xRRGGBB value.
func RGB(rgb uint32) ARGB {
	return ARGB(0xFF000000 | rgb&0x00FFFFFF)
}

// Alpha returns the alpha component.
func (c ARGB) Alpha() uint8 { return uint8(c >> 24) }

// Color converts the packed value to a non-premultiplied color.NRGBA.
func (c ARGB) Color() color.NRGBA {
	return color.NRGBA{
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
		A: uint8(c >> 24),
	}
}

// String returns the color as 0xAARRGGBB.
func (c ARGB) String() string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// ParseColor parses a color string.
// Supported forms: "0xAARRGGBB", "#AARRGGBB", "#RRGGBB" (opaque) and a
// decimal integer holding the packed ARGB value. Negative decimals are
// taken as signed 32-bit values, as produced by Java's Color ints.
func ParseColor(s string) (ARGB, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("watermark: empty color")
	}

	if hex, ok := strings.CutPrefix(s, "#"); ok {
		return parseHexColor(s, hex, true)
	}
	if hex, ok := cutHexPrefix(s); ok {
		return parseHexColor(s, hex, false)
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < -1<<31 || v > 1<<32-1 {
		return 0, fmt.Errorf("watermark: invalid color %q", s)
	}
	return ARGB(uint32(v)), nil
}

func cutHexPrefix(s string) (string, bool) {
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		return rest, true
	}
	return strings.CutPrefix(s, "0X")
}

// parseHexColor parses 6 or 8 hex digits. Six digits are RRGGBB and are
// opaque only when allowRGB is set; 0x-prefixed values are always ARGB.
func parseHexColor(orig, hex string, allowRGB bool) (ARGB, error) {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("watermark: invalid color %q", orig)
	}
	switch {
	case len(hex) == 8:
		return ARGB(v), nil
	case len(hex) == 6 && allowRGB:
		return RGB(uint32(v)), nil
	case !allowRGB && len(hex) <= 8:
		return ARGB(v), nil
	default:
		return 0, fmt.Errorf("watermark: invalid color %q", orig)
	}
}
