// Package config loads the YAML configuration of the watermark command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/watermark"
)

// Environment variables that override file values.
const (
	EnvFont         = "WATERMARK_FONT"
	EnvOutputPolicy = "WATERMARK_OUTPUT_POLICY"
	EnvWatchDir     = "WATERMARK_WATCH_DIR"
)

// Job kinds.
const (
	KindText  = "text"
	KindImage = "image"
)

// Config represents the application configuration.
type Config struct {
	Font         string      `yaml:"font"`
	Shaping      bool        `yaml:"shaping"`
	OutputPolicy string      `yaml:"output_policy"`
	ParagraphGap bool        `yaml:"paragraph_gap"`
	Watch        WatchConfig `yaml:"watch"`
}

// WatchConfig configures hot-folder mode.
type WatchConfig struct {
	Dir        string        `yaml:"dir"`
	Extensions []string      `yaml:"extensions"`
	Debounce   time.Duration `yaml:"debounce"`
	Job        JobConfig     `yaml:"job"`
}

// JobConfig is the watermark applied to every file dropped into the
// watched directory.
type JobConfig struct {
	Kind            string        `yaml:"kind"`
	Text            string        `yaml:"text"`
	X               float64       `yaml:"x"`
	Y               float64       `yaml:"y"`
	TextSize        float64       `yaml:"text_size"`
	Color           Color         `yaml:"color"`
	BackgroundColor *Color        `yaml:"background_color"`
	Padding         PaddingConfig `yaml:"padding"`
	Overlay         string        `yaml:"overlay"`
	Width           int           `yaml:"width"`
	Height          int           `yaml:"height"`
	Quality         int           `yaml:"quality"`
	Format          string        `yaml:"format"`
	RotateUsingExif bool          `yaml:"rotate_using_exif"`
}

// PaddingConfig is the background padding of a text job.
type PaddingConfig struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// Color is an ARGB color written as 0xAARRGGBB, #RRGGBB, #AARRGGBB or a
// decimal integer. The # forms must be quoted in YAML.
type Color watermark.ARGB

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("config: line %d: color must be a scalar", node.Line)
	}
	v, err := watermark.ParseColor(node.Value)
	if err != nil {
		return fmt.Errorf("config: line %d: %w", node.Line, err)
	}
	*c = Color(v)
	return nil
}

// Default returns the configuration used for keys the file leaves out.
func Default() *Config {
	return &Config{
		OutputPolicy: watermark.ReplaceOriginal.String(),
		Watch: WatchConfig{
			Extensions: []string{".jpg", ".jpeg", ".png"},
			Debounce:   500 * time.Millisecond,
			Job: JobConfig{
				Kind:     KindText,
				TextSize: 24,
				Color:    Color(0xFFFFFFFF),
				Quality:  90,
				Format:   "jpeg",
			},
		},
	}
}

// Load reads and parses the configuration file. A .env file next to it or in
// the working directory is loaded first; variables already set in the
// environment win over it, and WATERMARK_* variables win over the file.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env"), ".env"); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults, applies environment overrides and
// validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid: %w", err)
	}
	return cfg, nil
}

// loadDotEnv loads the first existing file of paths.
func loadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("config: load %s: %w", p, err)
		}
		return nil
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvFont); v != "" {
		c.Font = v
	}
	if v := os.Getenv(EnvOutputPolicy); v != "" {
		c.OutputPolicy = v
	}
	if v := os.Getenv(EnvWatchDir); v != "" {
		c.Watch.Dir = v
	}
}

// Validate checks the configuration for values the watermarker would
// reject.
func (c *Config) Validate() error {
	if _, ok := watermark.ParseOutputPolicy(c.OutputPolicy); !ok {
		return fmt.Errorf("output_policy %q must be %q or %q",
			c.OutputPolicy, watermark.ReplaceOriginal, watermark.NewFile)
	}
	if c.Watch.Debounce < 0 {
		return errors.New("watch.debounce must not be negative")
	}
	for _, ext := range c.Watch.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("watch.extensions: %q must start with a dot", ext)
		}
	}
	if c.Watch.Dir == "" {
		return nil
	}
	return c.Watch.Job.Validate()
}

// Validate checks the job for the fields its kind needs.
func (j *JobConfig) Validate() error {
	if j.Quality < 0 || j.Quality > 100 {
		return fmt.Errorf("watch.job.quality %d out of range 0-100", j.Quality)
	}
	if j.Format == "" {
		return errors.New("watch.job.format is required")
	}

	switch j.Kind {
	case KindText:
		if j.Text == "" {
			return errors.New("watch.job.text is required for text jobs")
		}
		if j.TextSize <= 0 {
			return errors.New("watch.job.text_size must be positive")
		}
		p := j.Padding
		if p.Top < 0 || p.Right < 0 || p.Bottom < 0 || p.Left < 0 {
			return errors.New("watch.job.padding must not be negative")
		}
	case KindImage:
		if j.Overlay == "" {
			return errors.New("watch.job.overlay is required for image jobs")
		}
		if j.Width <= 0 || j.Height <= 0 {
			return errors.New("watch.job.width and watch.job.height must be positive")
		}
	default:
		return fmt.Errorf("watch.job.kind %q must be %q or %q", j.Kind, KindText, KindImage)
	}
	return nil
}

// Options returns the watermarker options the configuration selects.
func (c *Config) Options() []watermark.Option {
	policy, _ := watermark.ParseOutputPolicy(c.OutputPolicy)
	opts := []watermark.Option{
		watermark.WithShaping(c.Shaping),
		watermark.WithOutputPolicy(policy),
		watermark.WithParagraphGap(c.ParagraphGap),
	}
	if c.Font != "" {
		opts = append(opts, watermark.WithFontFile(c.Font))
	}
	return opts
}

// TextRequest returns the text watermark request for path.
func (j *JobConfig) TextRequest(path string) watermark.TextRequest {
	req := watermark.TextRequest{
		FilePath:        path,
		Text:            j.Text,
		X:               j.X,
		Y:               j.Y,
		TextSize:        j.TextSize,
		Color:           watermark.ARGB(j.Color),
		Padding:         watermark.Padding(j.Padding),
		Quality:         j.Quality,
		ImageFormat:     j.Format,
		RotateUsingExif: j.RotateUsingExif,
	}
	if j.BackgroundColor != nil {
		bg := watermark.ARGB(*j.BackgroundColor)
		req.BackgroundColor = &bg
	}
	return req
}

// ImageRequest returns the image watermark request for path.
func (j *JobConfig) ImageRequest(path string) watermark.ImageRequest {
	return watermark.ImageRequest{
		FilePath:           path,
		WatermarkImagePath: j.Overlay,
		X:                  j.X,
		Y:                  j.Y,
		WatermarkWidth:     j.Width,
		WatermarkHeight:    j.Height,
		Quality:            j.Quality,
		ImageFormat:        j.Format,
	}
}
