package matcher

import (
	"fmt"
	"math"
	"strings"
)

// Metric measures how far apart two embeddings of equal length are.
// Lower means more similar.
type Metric interface {
	Name() string
	Distance(a, b []float64) float64
}

const (
	MetricEuclidean = "euclidean"
	MetricCosine    = "cosine"
)

// Euclidean is the L2 distance used by dlib-style embeddings.
type Euclidean struct{}

func (Euclidean) Name() string {
	return MetricEuclidean
}

func (Euclidean) Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// Cosine returns 1 - cosine similarity, in [0, 2].
type Cosine struct{}

func (Cosine) Name() string {
	return MetricCosine
}

func (Cosine) Distance(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 2.0
	}

	similarity := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// floating point can push the ratio slightly past the unit interval
	if similarity > 1 {
		similarity = 1
	}
	if similarity < -1 {
		similarity = -1
	}

	return 1 - similarity
}

// ParseMetric resolves a configured metric name.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", MetricEuclidean, "l2":
		return Euclidean{}, nil
	case MetricCosine:
		return Cosine{}, nil
	default:
		return nil, fmt.Errorf("unknown match metric: %s", name)
	}
}
