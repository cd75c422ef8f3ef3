// Command watermark stamps text or image watermarks onto image files.
//
// Usage:
//
//	watermark [-v] [-config FILE] <command> [flags]
//
// Commands:
//
//	text     draw a text watermark
//	image    composite an image watermark
//	call     run a JSON method call read from stdin or -f
//	watch    watermark every image dropped into a directory
//	version  print version information
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/gogpu/watermark"
	"github.com/gogpu/watermark/channel"
	"github.com/gogpu/watermark/internal/config"
	"github.com/gogpu/watermark/internal/watch"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// env carries the process streams and the loaded configuration.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("watermark", flag.ContinueOnError)
	global.SetOutput(stderr)
	verbose := global.Bool("v", false, "enable debug logging")
	configPath := global.String("config", "", "configuration file (YAML)")
	global.Usage = func() { usage(stderr) }
	if err := global.Parse(args); err != nil {
		return exitUsage
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	watermark.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer watermark.SetLogger(nil)

	rest := global.Args()
	if len(rest) == 0 {
		usage(stderr)
		return exitUsage
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitFail
		}
		cfg = loaded
	}
	e := &env{stdin: stdin, stdout: stdout, stderr: stderr, cfg: cfg}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "text":
		return e.text(ctx, cmdArgs)
	case "image":
		return e.image(ctx, cmdArgs)
	case "call":
		return e.call(ctx, cmdArgs)
	case "watch":
		return e.watch(ctx, cmdArgs)
	case "version":
		fmt.Fprintf(stdout, "watermark %s (%s)\n", watermark.Version, channel.PlatformVersion())
		return exitOK
	case "help", "-h", "-help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "watermark: unknown command %q\n", cmd)
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `usage: watermark [-v] [-config FILE] <command> [flags]

commands:
  text     draw a text watermark
  image    composite an image watermark
  call     run a JSON method call read from stdin or -f
  watch    watermark every image dropped into a directory
  version  print version information

Run "watermark <command> -h" for the flags of a command.
`)
}

// newWatermarker builds a Watermarker from the configuration, with the
// command-line font and policy taking precedence.
func (e *env) newWatermarker(font string, newFile bool) (*watermark.Watermarker, error) {
	opts := e.cfg.Options()
	if font != "" {
		opts = append(opts, watermark.WithFontFile(font))
	}
	if newFile {
		opts = append(opts, watermark.WithOutputPolicy(watermark.NewFile))
	}
	return watermark.New(opts...)
}

func (e *env) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("watermark "+name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func (e *env) text(ctx context.Context, args []string) int {
	fs := e.flagSet("text")
	var (
		in      = fs.String("in", "", "source image (required)")
		text    = fs.String("text", "", "watermark text (required)")
		x       = fs.Float64("x", 0, "left edge of the text")
		y       = fs.Float64("y", 0, "baseline of the first line")
		size    = fs.Float64("size", 24, "font size in pixels")
		fg      = fs.String("color", "0xFFFFFFFF", "text color, 0xAARRGGBB or #RRGGBB")
		bg      = fs.String("bg", "", "background color; no background when empty")
		pad     = fs.String("pad", "", "background padding: all, vertical,horizontal or top,right,bottom,left")
		quality = fs.Int("quality", 90, "encoder quality 0-100")
		format  = fs.String("format", "jpeg", "output format, jpeg or png")
		exif    = fs.Bool("exif", false, "rotate the source upright using its EXIF orientation")
		font    = fs.String("font", "", "TTF/OTF font file")
		newFile = fs.Bool("new-file", false, "write a new file instead of replacing the source")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	req := watermark.TextRequest{
		FilePath:        *in,
		Text:            *text,
		X:               *x,
		Y:               *y,
		TextSize:        *size,
		Quality:         *quality,
		ImageFormat:     *format,
		RotateUsingExif: *exif,
	}
	var err error
	if req.Color, err = watermark.ParseColor(*fg); err != nil {
		return e.usageError(fs, err)
	}
	if *bg != "" {
		c, err := watermark.ParseColor(*bg)
		if err != nil {
			return e.usageError(fs, err)
		}
		req.BackgroundColor = &c
	}
	if req.Padding, err = parsePadding(*pad); err != nil {
		return e.usageError(fs, err)
	}

	w, err := e.newWatermarker(*font, *newFile)
	if err != nil {
		return e.fail(err)
	}
	out, err := w.AddText(ctx, req)
	if err != nil {
		return e.fail(err)
	}
	fmt.Fprintln(e.stdout, out)
	return exitOK
}

func (e *env) image(ctx context.Context, args []string) int {
	fs := e.flagSet("image")
	var (
		in      = fs.String("in", "", "source image (required)")
		overlay = fs.String("overlay", "", "watermark image (required)")
		x       = fs.Float64("x", 0, "left edge of the overlay")
		y       = fs.Float64("y", 0, "top edge of the overlay")
		width   = fs.Int("w", 0, "overlay width in pixels (required)")
		height  = fs.Int("h", 0, "overlay height in pixels (required)")
		quality = fs.Int("quality", 90, "encoder quality 0-100")
		format  = fs.String("format", "jpeg", "output format, jpeg or png")
		newFile = fs.Bool("new-file", false, "write a new file instead of replacing the source")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	w, err := e.newWatermarker("", *newFile)
	if err != nil {
		return e.fail(err)
	}
	out, err := w.AddImage(ctx, watermark.ImageRequest{
		FilePath:           *in,
		WatermarkImagePath: *overlay,
		X:                  *x,
		Y:                  *y,
		WatermarkWidth:     *width,
		WatermarkHeight:    *height,
		Quality:            *quality,
		ImageFormat:        *format,
	})
	if err != nil {
		return e.fail(err)
	}
	fmt.Fprintln(e.stdout, out)
	return exitOK
}

func (e *env) call(ctx context.Context, args []string) int {
	fs := e.flagSet("call")
	file := fs.String("f", "", "JSON call file; stdin when empty")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	r := e.stdin
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			return e.fail(err)
		}
		defer f.Close()
		r = f
	}

	c, err := channel.DecodeCall(r)
	if err != nil {
		return e.fail(err)
	}
	w, err := e.newWatermarker("", false)
	if err != nil {
		return e.fail(err)
	}
	result, err := channel.NewHandler(w).Handle(ctx, c)
	if err != nil {
		return e.fail(err)
	}
	fmt.Fprintln(e.stdout, result)
	return exitOK
}

func (e *env) watch(ctx context.Context, args []string) int {
	fs := e.flagSet("watch")
	dir := fs.String("dir", e.cfg.Watch.Dir, "directory to watch")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *dir == "" {
		return e.usageError(fs, errors.New("no directory: set watch.dir, WATERMARK_WATCH_DIR or -dir"))
	}

	job := e.cfg.Watch.Job
	if err := job.Validate(); err != nil {
		return e.fail(fmt.Errorf("config: invalid: %w", err))
	}
	w, err := e.newWatermarker("", false)
	if err != nil {
		return e.fail(err)
	}

	handle := func(ctx context.Context, path string) (string, error) {
		if job.Kind == config.KindImage {
			return w.AddImage(ctx, job.ImageRequest(path))
		}
		return w.AddText(ctx, job.TextRequest(path))
	}
	watcher, err := watch.New(*dir, handle, watch.Options{
		Extensions: e.cfg.Watch.Extensions,
		Debounce:   e.cfg.Watch.Debounce,
	})
	if err != nil {
		return e.fail(err)
	}
	if err := watcher.Run(ctx); err != nil {
		return e.fail(err)
	}
	return exitOK
}

// fail reports err and returns the failure exit code. Channel and
// watermark errors are printed as "CODE: message".
func (e *env) fail(err error) int {
	var ce *channel.Error
	var we *watermark.Error
	switch {
	case errors.As(err, &ce):
		fmt.Fprintf(e.stderr, "%s: %s\n", ce.Code, ce.Message)
	case errors.As(err, &we):
		fmt.Fprintf(e.stderr, "%s: %v\n", we.Code, we.Err)
	default:
		fmt.Fprintf(e.stderr, "%s: %v\n", channel.CodeOf(err), err)
	}
	return exitFail
}

func (e *env) usageError(fs *flag.FlagSet, err error) int {
	fmt.Fprintf(e.stderr, "%s: %v\n", fs.Name(), err)
	fs.Usage()
	return exitUsage
}

// parsePadding parses "", "all", "vertical,horizontal" or
// "top,right,bottom,left".
func parsePadding(s string) (watermark.Padding, error) {
	if strings.TrimSpace(s) == "" {
		return watermark.Padding{}, nil
	}
	parts := strings.Split(s, ",")
	v := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || f < 0 {
			return watermark.Padding{}, fmt.Errorf("invalid padding %q", s)
		}
		v[i] = f
	}

	switch len(v) {
	case 1:
		return watermark.Padding{Top: v[0], Right: v[0], Bottom: v[0], Left: v[0]}, nil
	case 2:
		return watermark.Padding{Top: v[0], Right: v[1], Bottom: v[0], Left: v[1]}, nil
	case 4:
		return watermark.Padding{Top: v[0], Right: v[1], Bottom: v[2], Left: v[3]}, nil
	default:
		return watermark.Padding{}, fmt.Errorf("padding %q needs 1, 2 or 4 values", s)
	}
}
