package deepface

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"math"

	"github.com/saturnino-fabrica-de-software/ponto/internal/codec"
	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/provider"
)

const (
	// minFaceArea is the minimum face area (in pixels²) for reliable detection
	minFaceArea = 2500 // 50x50 pixels
	// maxFaceArea is used for confidence scaling
	maxFaceArea = 250000 // 500x500 pixels
)

// Extractor implements provider.Extractor using the DeepFace API
type Extractor struct {
	client    *Client
	dimension int
}

// NewExtractor creates a new DeepFace extractor
func NewExtractor(config Config) (*Extractor, error) {
	dim, ok := ModelDimension(config.Model)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, config.Model)
	}

	return &Extractor{
		client:    NewClient(config),
		dimension: dim,
	}, nil
}

// ChannelOrder is RGB: the image travels as PNG and deepface's own decoder
// performs the BGR swap its models expect.
func (e *Extractor) ChannelOrder() codec.ChannelOrder {
	return codec.RGB
}

func (e *Extractor) Dimension() int {
	return e.dimension
}

// Extract sends the image to /represent and maps every returned face
func (e *Extractor) Extract(ctx context.Context, img *codec.Image) ([]provider.Detection, error) {
	dataURI, err := encodeDataURI(img)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	resp, err := e.client.Represent(ctx, dataURI)
	if err != nil {
		if isNoFaceError(err) {
			return []provider.Detection{}, nil
		}
		if errors.Is(err, ErrDeepFaceUnavailable) {
			return nil, domain.ErrExtractorUnavailable.WithError(err)
		}
		return nil, fmt.Errorf("extract: %w", err)
	}

	detections := make([]provider.Detection, 0, len(resp.Results))
	for i, result := range resp.Results {
		if len(result.Embedding) != e.dimension {
			return nil, fmt.Errorf("face %d: %w: got %d, want %d",
				i, ErrDimensionMismatch, len(result.Embedding), e.dimension)
		}

		box := provider.BoundingBox{
			X:      float64(result.FacialArea.X),
			Y:      float64(result.FacialArea.Y),
			Width:  float64(result.FacialArea.W),
			Height: float64(result.FacialArea.H),
		}

		confidence := result.FaceConfidence
		if confidence <= 0 {
			confidence = calculateConfidence(box.Area())
		}

		detections = append(detections, provider.Detection{
			BoundingBox: box,
			Confidence:  confidence,
			Embedding:   domain.Embedding(result.Embedding),
		})
	}

	return detections, nil
}

// encodeDataURI renders the pixel buffer as a PNG data URI.
func encodeDataURI(img *codec.Image) (string, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img.RGBA()); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// calculateConfidence estimates detection confidence from the face area
// for detector backends that do not report one.
func calculateConfidence(faceArea float64) float64 {
	if faceArea < minFaceArea {
		return 0.5
	}
	// Scale from 0.7 to 0.99 based on face area
	normalized := math.Min(1.0, (faceArea-minFaceArea)/(maxFaceArea-minFaceArea))
	return 0.7 + (normalized * 0.29)
}

var _ provider.Extractor = (*Extractor)(nil)
