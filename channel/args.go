package channel

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/gogpu/watermark"
)

// Arguments are the loosely typed parameters of a Call.
//
// Numbers may arrive as any Go numeric type or as json.Number. A nil value
// is treated as absent.
type Arguments map[string]any

// String returns a non-empty string argument.
func (a Arguments) String(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok && s != ""
}

// Float returns a finite numeric argument.
func (a Arguments) Float(key string) (float64, bool) {
	v, ok := a[key]
	if !ok || v == nil {
		return 0, false
	}
	return toFloat(v)
}

// Int returns an integral numeric argument. Fractional values are rejected.
func (a Arguments) Int(key string) (int64, bool) {
	v, ok := a[key]
	if !ok || v == nil {
		return 0, false
	}
	return toInt(v)
}

// Bool returns a boolean argument.
func (a Arguments) Bool(key string) (bool, bool) {
	b, ok := a[key].(bool)
	return b, ok
}

// Color returns a 32-bit ARGB color argument. Both the unsigned form
// (0xAARRGGBB) and its signed 32-bit reading are accepted.
func (a Arguments) Color(key string) (watermark.ARGB, bool) {
	v, ok := a.Int(key)
	if !ok || v < math.MinInt32 || v > math.MaxUint32 {
		return 0, false
	}
	return watermark.ARGB(uint32(v)), true
}

// has reports whether key holds a non-nil value.
func (a Arguments) has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

// optFloat reads an optional number: absent yields def, present but
// invalid fails.
func (a Arguments) optFloat(key string, def float64) (float64, bool) {
	if !a.has(key) {
		return def, true
	}
	return a.Float(key)
}

func (a Arguments) optBool(key string) (bool, bool) {
	if !a.has(key) {
		return false, true
	}
	return a.Bool(key)
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		var err error
		if f, err = n.Float64(); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return fromUint(uint64(n))
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return fromUint(n)
	case json.Number:
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return i, true
		}
	}

	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func fromUint(u uint64) (int64, bool) {
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}
