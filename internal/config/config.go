package config

import (
	"fmt"
	"math"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/matcher"
	"github.com/saturnino-fabrica-de-software/ponto/internal/provider/deepface"
	"github.com/saturnino-fabrica-de-software/ponto/internal/recognition"
)

const (
	ExtractorDeepFace = "deepface"
	ExtractorMock     = "mock"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Extractor
	ExtractorType    string        `envconfig:"EXTRACTOR_TYPE" default:"deepface"`
	DeepFaceURL      string        `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`
	DeepFaceModel    string        `envconfig:"DEEPFACE_MODEL" default:"Dlib"`
	DeepFaceDetector string        `envconfig:"DEEPFACE_DETECTOR" default:"opencv"`
	DeepFaceTimeout  time.Duration `envconfig:"DEEPFACE_TIMEOUT" default:"30s"`
	DeepFaceRetries  int           `envconfig:"DEEPFACE_RETRIES" default:"3"`

	// Matching
	MatchMetric     string  `envconfig:"MATCH_METRIC" default:"euclidean"`
	MatchTolerance  float64 `envconfig:"MATCH_TOLERANCE" default:"0.6"`
	ConfidenceFloor float64 `envconfig:"CONFIDENCE_FLOOR" default:"0.7"`
	FaceSelection   string  `envconfig:"FACE_SELECTION" default:"first"`

	// Capture limits
	MaxImageDimension int `envconfig:"MAX_IMAGE_DIMENSION" default:"1024"`
	MaxPayloadBytes   int `envconfig:"MAX_PAYLOAD_BYTES" default:"10485760"`

	// Rate limiting (attendance endpoints, per client IP)
	RateLimitMax    int           `envconfig:"RATE_LIMIT_MAX" default:"60"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

func Load() (*Config, error) {
	cfg, err := LoadOffline()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("load config: DATABASE_URL is required")
	}
	return cfg, nil
}

// LoadOffline lê a configuração sem exigir DATABASE_URL, para comandos que
// só falam com o extrator.
func LoadOffline() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.ExtractorType {
	case ExtractorDeepFace, ExtractorMock:
	default:
		return fmt.Errorf("unknown extractor type: %s", c.ExtractorType)
	}

	if _, err := matcher.ParseMetric(c.MatchMetric); err != nil {
		return err
	}

	if math.IsNaN(c.MatchTolerance) || c.MatchTolerance < 0 {
		return domain.ErrInvalidTolerance
	}

	if _, err := c.RecognitionOptions(); err != nil {
		return err
	}

	if c.DeepFaceRetries < 0 {
		return fmt.Errorf("DEEPFACE_RETRIES cannot be negative")
	}

	if c.RateLimitMax <= 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX and RATE_LIMIT_WINDOW must be positive")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// DeepFaceConfig maps the environment onto the deepface client settings.
func (c *Config) DeepFaceConfig() deepface.Config {
	return deepface.Config{
		BaseURL:    c.DeepFaceURL,
		Timeout:    c.DeepFaceTimeout,
		Model:      c.DeepFaceModel,
		Detector:   c.DeepFaceDetector,
		RetryCount: c.DeepFaceRetries,
	}
}

// RecognitionOptions builds validated session options.
func (c *Config) RecognitionOptions() (recognition.Options, error) {
	selection, err := recognition.ParseSelection(c.FaceSelection)
	if err != nil {
		return recognition.Options{}, err
	}

	opts := recognition.Options{
		ConfidenceFloor:   c.ConfidenceFloor,
		Selection:         selection,
		MaxImageDimension: c.MaxImageDimension,
		MaxPayloadBytes:   c.MaxPayloadBytes,
	}
	if err := opts.Validate(); err != nil {
		return recognition.Options{}, err
	}

	return opts, nil
}

// NewMatcher builds the matcher for the configured metric and tolerance.
func (c *Config) NewMatcher() (*matcher.Matcher, error) {
	metric, err := matcher.ParseMetric(c.MatchMetric)
	if err != nil {
		return nil, err
	}
	return matcher.New(metric, c.MatchTolerance)
}
