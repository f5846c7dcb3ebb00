// Package face wires the configured extractor, matcher and session options
// into a recognizer.
package face

import (
	"fmt"
	"log/slog"

	"github.com/saturnino-fabrica-de-software/ponto/internal/config"
	"github.com/saturnino-fabrica-de-software/ponto/internal/provider"
	"github.com/saturnino-fabrica-de-software/ponto/internal/provider/deepface"
	"github.com/saturnino-fabrica-de-software/ponto/internal/provider/mock"
	"github.com/saturnino-fabrica-de-software/ponto/internal/recognition"
)

// NewExtractor creates an Extractor based on configuration
//
// Environment variables:
//   - EXTRACTOR_TYPE: "deepface" or "mock" (default: "deepface")
//   - DEEPFACE_URL, DEEPFACE_MODEL, DEEPFACE_DETECTOR, DEEPFACE_TIMEOUT, DEEPFACE_RETRIES
func NewExtractor(cfg *config.Config) (provider.Extractor, error) {
	switch cfg.ExtractorType {
	case config.ExtractorDeepFace, "":
		return createDeepFaceExtractor(cfg)

	case config.ExtractorMock:
		return mock.New(), nil

	default:
		return nil, fmt.Errorf("unknown extractor type: %s (supported: %s, %s)",
			cfg.ExtractorType, config.ExtractorDeepFace, config.ExtractorMock)
	}
}

// createDeepFaceExtractor fills unset fields from deepface.DefaultConfig
func createDeepFaceExtractor(cfg *config.Config) (provider.Extractor, error) {
	dc := cfg.DeepFaceConfig()
	defaults := deepface.DefaultConfig()

	if dc.BaseURL == "" {
		dc.BaseURL = defaults.BaseURL
	}
	if dc.Timeout <= 0 {
		dc.Timeout = defaults.Timeout
	}
	if dc.Model == "" {
		dc.Model = defaults.Model
	}
	if dc.Detector == "" {
		dc.Detector = defaults.Detector
	}

	ex, err := deepface.NewExtractor(dc)
	if err != nil {
		return nil, fmt.Errorf("create deepface extractor: %w", err)
	}

	return ex, nil
}

// NewRecognizer builds the extractor and matcher from cfg and binds them to source.
func NewRecognizer(cfg *config.Config, source recognition.EmployeeSource, logger *slog.Logger) (*recognition.Recognizer, error) {
	ex, err := NewExtractor(cfg)
	if err != nil {
		return nil, err
	}

	m, err := cfg.NewMatcher()
	if err != nil {
		return nil, fmt.Errorf("create matcher: %w", err)
	}

	opts, err := cfg.RecognitionOptions()
	if err != nil {
		return nil, fmt.Errorf("recognition options: %w", err)
	}

	logger.Info("recognizer configured",
		slog.String("extractor", cfg.ExtractorType),
		slog.Int("dimension", ex.Dimension()),
		slog.String("channel_order", ex.ChannelOrder().String()),
		slog.String("metric", m.Metric().Name()),
		slog.Float64("tolerance", m.Tolerance()),
		slog.Float64("confidence_floor", opts.ConfidenceFloor),
	)

	return recognition.New(ex, source, m, opts, logger)
}
