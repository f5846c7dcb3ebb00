package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

var (
	ErrEmptyEmbedding     = errors.New("embedding is empty")
	ErrNonFiniteComponent = errors.New("embedding has a non-finite component")
	ErrNullComponent      = errors.New("embedding has a null component")
)

// SerializeEmbedding renders an embedding as a JSON array of numbers.
// Go formats float64 with the shortest representation that parses back to
// the same value, so DeserializeEmbedding(SerializeEmbedding(e)) == e.
func SerializeEmbedding(e domain.Embedding) (string, error) {
	if len(e) == 0 {
		return "", ErrEmptyEmbedding
	}

	for i, v := range e {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", fmt.Errorf("component %d: %w", i, ErrNonFiniteComponent)
		}
	}

	b, err := json.Marshal([]float64(e))
	if err != nil {
		return "", fmt.Errorf("marshal embedding: %w", err)
	}

	return string(b), nil
}

// DeserializeEmbedding parses stored JSON-array text back into an embedding.
func DeserializeEmbedding(s string) (domain.Embedding, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, domain.ErrDecode.WithError(ErrEmptyEmbedding)
	}

	// json.Unmarshal leaves a null element as 0 in a []float64.
	var values []*float64
	if err := json.Unmarshal([]byte(s), &values); err != nil {
		return nil, domain.ErrDecode.WithError(fmt.Errorf("unmarshal embedding: %w", err))
	}

	if len(values) == 0 {
		return nil, domain.ErrDecode.WithError(ErrEmptyEmbedding)
	}

	e := make(domain.Embedding, len(values))
	for i, v := range values {
		if v == nil {
			return nil, domain.ErrDecode.WithError(fmt.Errorf("component %d: %w", i, ErrNullComponent))
		}
		e[i] = *v
	}

	return e, nil
}
