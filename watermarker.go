package watermark

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/watermark/internal/cache"
	"github.com/gogpu/watermark/internal/imageio"
	"github.com/gogpu/watermark/internal/orient"
	"github.com/gogpu/watermark/text"
)

// Operation names, as used by the method-call interface.
const (
	opAddText  = "addTextWatermark"
	opAddImage = "addImageWatermark"
)

// Cache sizes. Faces are keyed by size and overlays by file identity.
const (
	faceCacheSize    = 32
	overlayCacheSize = 8
)

// Watermarker composites text or image watermarks onto image files.
//
// Each call runs one linear pipeline: validate, decode, draw, encode,
// write. Calls share only the face and overlay caches, so a Watermarker is
// safe for concurrent use. Two calls writing the same output path race like
// any two writers of one file.
type Watermarker struct {
	source       *text.FontSource
	shaping      bool
	policy       OutputPolicy
	paragraphGap bool
	newName      func() string

	faces    *cache.Cache[float64, text.Face]
	overlays *cache.Cache[overlayKey, image.Image]
}

// overlayKey identifies one version of an overlay file.
type overlayKey struct {
	path    string
	size    int64
	modTime int64
}

// New creates a Watermarker.
func New(opts ...Option) (*Watermarker, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	source := o.source
	if source == nil && o.fontFile != "" {
		s, err := text.NewFontSourceFromFile(o.fontFile)
		if err != nil {
			return nil, fmt.Errorf("watermark: load font: %w", err)
		}
		source = s
	}
	if source == nil {
		source = text.Default()
	}

	switch o.policy {
	case ReplaceOriginal, NewFile:
	default:
		return nil, fmt.Errorf("watermark: unknown output policy %d", o.policy)
	}

	return &Watermarker{
		source:       source,
		shaping:      o.shaping,
		policy:       o.policy,
		paragraphGap: o.paragraphGap,
		newName:      o.newName,
		faces:        cache.New[float64, text.Face](faceCacheSize),
		overlays:     cache.New[overlayKey, image.Image](overlayCacheSize),
	}, nil
}

// Font returns the font source used for text watermarks.
func (w *Watermarker) Font() *text.FontSource {
	return w.source
}

// Face returns the face used for a text watermark of the given size.
func (w *Watermarker) Face(size float64) text.Face {
	face, _ := w.faces.GetOrCreate(size, func() (text.Face, error) {
		var opts []text.FaceOption
		if w.shaping {
			opts = append(opts, text.WithShaping())
		}
		return w.source.Face(size, opts...), nil
	})
	return face
}

// WrapWidth returns the width available to text anchored at x on an image
// imageWidth pixels wide: the image width minus the anchor and the
// horizontal padding, never negative.
func WrapWidth(imageWidth int, x float64, pad Padding) float64 {
	return max(0, float64(imageWidth)-x-pad.Left-pad.Right)
}

// AddText draws req.Text onto the source image and returns the absolute path
// of the written result.
func (w *Watermarker) AddText(ctx context.Context, req TextRequest) (string, error) {
	log := Logger().With(slog.String("op", opAddText))
	start := time.Now()

	if !req.validate() {
		log.Debug("rejected request", slog.String("file", req.FilePath))
		return "", newError(CodeArgument, opAddText, ErrInvalidArguments)
	}

	img, err := w.load(req.FilePath, req.RotateUsingExif)
	if err != nil {
		return "", newError(CodeRead, opAddText, err)
	}

	canvas := NewRasterCanvas(imageio.ToRGBA(img))
	face := w.Face(req.TextSize)

	var wrapOpts []text.WrapOption
	if w.paragraphGap {
		wrapOpts = append(wrapOpts, text.WithParagraphGap())
	}
	maxWidth := WrapWidth(canvas.Bounds().Dx(), req.X, req.Padding)
	lines := text.Wrap(req.Text, maxWidth, face.Advance, wrapOpts...)
	layout := LayoutText(lines, face, req.X, req.Y, req.Padding)
	log.Debug("wrapped text",
		slog.Int("lines", len(lines)),
		slog.Float64("max_width", maxWidth),
		slog.Float64("line_height", layout.LineHeight))

	if err := DrawText(canvas, layout, face, req.Color, req.BackgroundColor); err != nil {
		return "", newError(CodeProcessing, opAddText, err)
	}

	if err := ctx.Err(); err != nil {
		return "", newError(CodeUnknown, opAddText, err)
	}

	out, err := w.save(req.FilePath, canvas.Image(), ParseFormat(req.ImageFormat), req.Quality)
	if err != nil {
		return "", tagError(opAddText, err)
	}

	log.Info("text watermark written", slog.String("path", out), slog.Duration("elapsed", time.Since(start)))
	return out, nil
}

// AddImage scales the overlay to exactly req.WatermarkWidth by
// req.WatermarkHeight, composites it at (req.X, req.Y) and returns the
// absolute path of the written result.
func (w *Watermarker) AddImage(ctx context.Context, req ImageRequest) (string, error) {
	log := Logger().With(slog.String("op", opAddImage))
	start := time.Now()

	if !req.validate() {
		log.Debug("rejected request", slog.String("file", req.FilePath))
		return "", newError(CodeArgument, opAddImage, ErrInvalidArguments)
	}

	img, err := w.load(req.FilePath, false)
	if err != nil {
		return "", newError(CodeRead, opAddImage, err)
	}
	overlay, err := w.loadOverlay(req.WatermarkImagePath)
	if err != nil {
		return "", newError(CodeRead, opAddImage, err)
	}

	canvas := NewRasterCanvas(imageio.ToRGBA(img))
	DrawOverlay(canvas, overlay, req.X, req.Y, req.WatermarkWidth, req.WatermarkHeight)

	if err := ctx.Err(); err != nil {
		return "", newError(CodeUnknown, opAddImage, err)
	}

	out, err := w.save(req.FilePath, canvas.Image(), ParseFormat(req.ImageFormat), req.Quality)
	if err != nil {
		return "", tagError(opAddImage, err)
	}

	log.Info("image watermark written", slog.String("path", out), slog.Duration("elapsed", time.Since(start)))
	return out, nil
}

// DrawText paints a laid-out text block: the background box first when bg
// is set, then every line in fg.
func DrawText(c Canvas, l Layout, face text.Face, fg ARGB, bg *ARGB) error {
	if bg != nil {
		c.FillRect(l.Background, bg.Color())
	}
	for _, line := range l.Lines {
		if line.Text == "" {
			continue
		}
		if err := c.DrawText(line.Text, face, line.X, line.Baseline, fg.Color()); err != nil {
			return fmt.Errorf("watermark: draw text: %w", err)
		}
	}
	return nil
}

// DrawOverlay composites overlay scaled to width by height with its top-left
// corner at (x, y). Fractional anchors are truncated to whole pixels.
func DrawOverlay(c Canvas, overlay image.Image, x, y float64, width, height int) {
	r := image.Rect(0, 0, width, height).Add(image.Pt(int(x), int(y)))
	c.DrawImage(overlay, r)
}

// load reads and decodes path, rotating it upright when rotate is set.
func (w *Watermarker) load(path string, rotate bool) (image.Image, error) {
	data, err := imageio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, format, err := imageio.Decode(data)
	if err != nil {
		return nil, err
	}
	Logger().Debug("decoded image",
		slog.String("file", path),
		slog.String("format", format),
		slog.Int("width", img.Bounds().Dx()),
		slog.Int("height", img.Bounds().Dy()))

	if !rotate {
		return img, nil
	}
	o, err := orient.Read(data)
	if err != nil {
		if !errors.Is(err, orient.ErrNoExif) {
			Logger().Warn("ignoring unreadable orientation", slog.String("file", path), slog.Any("error", err))
		}
		return img, nil
	}
	return orient.Apply(img, o), nil
}

// loadOverlay returns the decoded overlay at path. Overlays are cached until
// the file changes size or modification time.
func (w *Watermarker) loadOverlay(path string) (image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("watermark: stat overlay: %w", err)
	}
	key := overlayKey{path: path, size: info.Size(), modTime: info.ModTime().UnixNano()}
	img, err := w.overlays.GetOrCreate(key, func() (image.Image, error) {
		return w.load(path, false)
	})
	if err != nil {
		return nil, err
	}
	s := w.overlays.Stats()
	Logger().Debug("overlay cache",
		slog.String("file", path),
		slog.Uint64("hits", s.Hits),
		slog.Uint64("misses", s.Misses),
		slog.Int("entries", s.Len))
	return img, nil
}

// stageError marks which pipeline stage a save failure came from.
type stageError struct {
	code Code
	err  error
}

func (e *stageError) Error() string { return e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

func tagError(op string, err error) error {
	var se *stageError
	if errors.As(err, &se) {
		return newError(se.code, op, se.err)
	}
	return newError(CodeUnknown, op, err)
}

// save encodes img and writes it according to the output policy.
func (w *Watermarker) save(src string, img image.Image, f Format, quality int) (string, error) {
	data, err := imageio.EncodeToBytes(img, f, quality)
	if err != nil {
		return "", &stageError{code: CodeProcessing, err: err}
	}

	dst, err := outputPath(src, f, w.policy, w.newName)
	if err != nil {
		return "", &stageError{code: CodeWrite, err: err}
	}
	Logger().Debug("writing result",
		slog.String("path", dst),
		slog.String("format", f.String()),
		slog.Int("quality", quality),
		slog.Int("bytes", len(data)))

	if err := writeFileAtomic(dst, data, sourcePerm(src)); err != nil {
		return "", &stageError{code: CodeWrite, err: err}
	}

	if w.policy == ReplaceOriginal {
		if err := removeOriginal(src, dst); err != nil {
			Logger().Warn("original left in place", slog.String("file", src), slog.Any("error", err))
		}
	}
	return dst, nil
}
