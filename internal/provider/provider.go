package provider

import (
	"context"

	"github.com/saturnino-fabrica-de-software/ponto/internal/codec"
	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

// Extractor define a capacidade plugável de extração de embeddings faciais.
// Implementations are black boxes: they locate faces in a pixel buffer and
// return one fixed-length embedding per detected face.
type Extractor interface {
	// Extract returns every face found in img, in the order the underlying
	// detector reports them. An empty slice means no face was found.
	// img is always delivered in the order returned by ChannelOrder.
	Extract(ctx context.Context, img *codec.Image) ([]Detection, error)

	// ChannelOrder is the pixel layout the model was trained on. Callers
	// must convert before calling Extract; a mismatch does not fail, it
	// silently degrades accuracy.
	ChannelOrder() codec.ChannelOrder

	// Dimension is the length of every embedding this extractor produces.
	Dimension() int
}

// Detection represents one face located in the image
type Detection struct {
	BoundingBox BoundingBox      `json:"bounding_box"`
	Confidence  float64          `json:"confidence"`
	Embedding   domain.Embedding `json:"embedding"`
}

// BoundingBox represents the face area in the image
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the box area in square pixels.
func (b BoundingBox) Area() float64 {
	return b.Width * b.Height
}
