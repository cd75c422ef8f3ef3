package text

// FaceOption configures Face creation.
type FaceOption func(*faceConfig)

// faceConfig holds configuration for Face.
type faceConfig struct {
	hinting  Hinting
	shaping  bool
	language string
}

// defaultFaceConfig returns the default face configuration.
func defaultFaceConfig() faceConfig {
	return faceConfig{
		hinting:  HintingFull,
		language: "en",
	}
}

// WithHinting sets the hinting mode for the face.
func WithHinting(h Hinting) FaceOption {
	return func(c *faceConfig) {
		c.hinting = h
	}
}

// WithShaping makes Face.Advance measure with HarfBuzz shaping instead of
// plain sfnt advances.
func WithShaping() FaceOption {
	return func(c *faceConfig) {
		c.shaping = true
	}
}

// WithLanguage sets the language tag used for shaping (e.g., "en", "ja", "ar").
func WithLanguage(lang string) FaceOption {
	return func(c *faceConfig) {
		c.language = lang
	}
}
