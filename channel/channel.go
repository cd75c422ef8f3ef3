package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/gogpu/watermark"
)

// Method names.
const (
	MethodAddText         = "addTextWatermark"
	MethodAddImage        = "addImageWatermark"
	MethodPlatformVersion = "getPlatformVersion"
)

// Call is one method invocation.
type Call struct {
	Method    string    `json:"method"`
	Arguments Arguments `json:"arguments"`
}

// ErrNoMethod is returned by DecodeCall when the call names no method.
var ErrNoMethod = errors.New("channel: call has no method")

// DecodeCall reads a JSON encoded Call from r. Numbers are kept as
// json.Number so integer arguments survive exactly.
func DecodeCall(r io.Reader) (Call, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var c Call
	if err := dec.Decode(&c); err != nil {
		return Call{}, fmt.Errorf("channel: decode call: %w", err)
	}
	if c.Method == "" {
		return Call{}, ErrNoMethod
	}
	return c, nil
}

// Handler dispatches calls to a Watermarker.
type Handler struct {
	w *watermark.Watermarker
}

// NewHandler returns a Handler backed by w.
func NewHandler(w *watermark.Watermarker) *Handler {
	return &Handler{w: w}
}

// Handle runs call and returns its result: the absolute path of the written
// file for the watermark methods, or the runtime description for
// getPlatformVersion.
func (h *Handler) Handle(ctx context.Context, call Call) (any, error) {
	log := watermark.Logger().With(slog.String("method", call.Method))
	log.Debug("call received", slog.Int("arguments", len(call.Arguments)))

	var (
		out string
		err error
	)
	switch call.Method {
	case MethodPlatformVersion:
		return PlatformVersion(), nil
	case MethodAddText:
		req, ok := TextRequest(call.Arguments)
		if !ok {
			return nil, argumentError(call.Method)
		}
		out, err = h.w.AddText(ctx, req)
	case MethodAddImage:
		req, ok := ImageRequest(call.Arguments)
		if !ok {
			return nil, argumentError(call.Method)
		}
		out, err = h.w.AddImage(ctx, req)
	default:
		return nil, fmt.Errorf("%w: %q", ErrNotImplemented, call.Method)
	}

	if err != nil {
		ce := callError(err)
		log.Warn("call failed", slog.String("code", ce.Code.String()), slog.Any("error", err))
		return nil, ce
	}
	return out, nil
}

// PlatformVersion describes the runtime, for example "Go 1.25.0".
func PlatformVersion() string {
	return "Go " + strings.TrimPrefix(runtime.Version(), "go")
}

// TextRequest builds a text watermark request from call arguments. It
// reports false when a required argument is missing or any argument has the
// wrong type.
func TextRequest(a Arguments) (watermark.TextRequest, bool) {
	var (
		req watermark.TextRequest
		ok  = true
	)
	check := func(good bool) {
		ok = ok && good
	}

	var good bool
	req.FilePath, good = a.String("filePath")
	check(good)
	req.Text, good = a.String("text")
	check(good)
	req.X, good = a.Float("x")
	check(good)
	req.Y, good = a.Float("y")
	check(good)
	req.TextSize, good = a.Float("textSize")
	check(good)
	req.Color, good = a.Color("color")
	check(good)

	quality, good := a.Int("quality")
	check(good)
	req.Quality = int(quality)
	req.ImageFormat, good = a.String("imageFormat")
	check(good)

	if a.has("backgroundTextColor") {
		bg, good := a.Color("backgroundTextColor")
		check(good)
		req.BackgroundColor = &bg
	}
	req.Padding.Top, good = a.optFloat("backgroundTextPaddingTop", 0)
	check(good)
	req.Padding.Bottom, good = a.optFloat("backgroundTextPaddingBottom", 0)
	check(good)
	req.Padding.Left, good = a.optFloat("backgroundTextPaddingLeft", 0)
	check(good)
	req.Padding.Right, good = a.optFloat("backgroundTextPaddingRight", 0)
	check(good)
	req.RotateUsingExif, good = a.optBool("rotateUsingExif")
	check(good)

	return req, ok
}

// ImageRequest builds an image watermark request from call arguments.
func ImageRequest(a Arguments) (watermark.ImageRequest, bool) {
	var (
		req watermark.ImageRequest
		ok  = true
	)
	check := func(good bool) {
		ok = ok && good
	}

	var good bool
	req.FilePath, good = a.String("filePath")
	check(good)
	req.WatermarkImagePath, good = a.String("watermarkImagePath")
	check(good)
	req.X, good = a.Float("x")
	check(good)
	req.Y, good = a.Float("y")
	check(good)

	width, good := a.Int("watermarkWidth")
	check(good && width <= 1<<16)
	height, good := a.Int("watermarkHeight")
	check(good && height <= 1<<16)
	req.WatermarkWidth, req.WatermarkHeight = int(width), int(height)

	quality, good := a.Int("quality")
	check(good)
	req.Quality = int(quality)
	req.ImageFormat, good = a.String("imageFormat")
	check(good)

	return req, ok
}
