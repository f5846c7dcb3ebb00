package mock

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"

	"github.com/saturnino-fabrica-de-software/ponto/internal/codec"
	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/provider"
)

const embeddingDimension = 128

// Extractor implementa provider.Extractor para testes e desenvolvimento.
// Uniform images (every pixel identical) contain no face; any other image
// yields exactly one face whose embedding is derived from the pixel hash.
type Extractor struct{}

// New cria uma nova instância do mock
func New() *Extractor {
	return &Extractor{}
}

// ChannelOrder is BGR, mirroring the dlib-style models the mock stands in for.
func (e *Extractor) ChannelOrder() codec.ChannelOrder {
	return codec.BGR
}

func (e *Extractor) Dimension() int {
	return embeddingDimension
}

// Extract gera embedding determinístico baseado no hash da imagem
func (e *Extractor) Extract(ctx context.Context, img *codec.Image) ([]provider.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if img == nil || len(img.Pix) < 3 || isUniform(img.Pix) {
		return []provider.Detection{}, nil
	}

	return []provider.Detection{
		{
			BoundingBox: provider.BoundingBox{
				X:      float64(img.Width) * 0.1,
				Y:      float64(img.Height) * 0.1,
				Width:  float64(img.Width) * 0.8,
				Height: float64(img.Height) * 0.8,
			},
			Confidence: 0.99,
			Embedding:  generateEmbedding(img),
		},
	}, nil
}

func isUniform(pix []byte) bool {
	first := pix[:3]
	for i := 3; i+2 < len(pix); i += 3 {
		if !bytes.Equal(first, pix[i:i+3]) {
			return false
		}
	}
	return true
}

// generateEmbedding expands a SHA-256 of the pixels (plus dimensions and
// channel order) into a unit-length vector. Distinct images land roughly
// sqrt(2) apart, well beyond the default tolerance.
func generateEmbedding(img *codec.Image) domain.Embedding {
	h := sha256.New()
	var header [12]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(img.Width))
	binary.LittleEndian.PutUint32(header[4:8], uint32(img.Height))
	binary.LittleEndian.PutUint32(header[8:12], uint32(img.Order))
	h.Write(header[:])
	h.Write(img.Pix)
	seed := h.Sum(nil)

	embedding := make(domain.Embedding, embeddingDimension)
	block := seed
	for i := 0; i < embeddingDimension; i++ {
		idx := i % len(block)
		if idx == 0 && i > 0 {
			next := sha256.Sum256(block)
			block = next[:]
		}
		embedding[i] = (float64(block[idx])/255.0)*2 - 1
	}

	norm := 0.0
	for _, v := range embedding {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		embedding[0] = 1
		return embedding
	}

	for i := range embedding {
		embedding[i] /= norm
	}

	return embedding
}

var _ provider.Extractor = (*Extractor)(nil)
